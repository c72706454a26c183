package trip_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tourship/internal/repositories"
	"tourship/internal/services"
)

var Module = fx.Provide(
	provideTripService, provideTripRepo)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideTripService(
	tripRepo repositories.TripRepository,
	attractionRepo repositories.AttractionRepository,
	userRepo repositories.UserRepository,
	mailService services.MailService,
) services.TripServiceInterface {
	return services.NewTripService(tripRepo, attractionRepo, userRepo, mailService)
}
