package dashboard

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tourship/internal/repositories"
	"tourship/internal/services"
)

var Module = fx.Provide(
	provideDashboardRepo, provideDashboardService,
)

func provideDashboardRepo(db *gorm.DB) repositories.DashboardRepository {
	return repositories.NewDashboardRepository(db)
}

func provideDashboardService(dashboardRepo repositories.DashboardRepository, userRepo repositories.UserRepository) services.DashboardService {
	return services.NewDashboardService(dashboardRepo, userRepo)
}
