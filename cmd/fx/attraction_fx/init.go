package attraction_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tourship/internal/repositories"
	"tourship/internal/services"
)

var Module = fx.Provide(
	provideAttractionService, provideAttractionRepo)

func provideAttractionRepo(db *gorm.DB) repositories.AttractionRepository {
	return repositories.NewAttractionRepository(db)
}

func provideAttractionService(attractionRepo repositories.AttractionRepository, userRepo repositories.UserRepository) services.AttractionServiceInterface {
	return services.NewAttractionService(attractionRepo, userRepo)
}
