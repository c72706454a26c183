package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tourship/internal/repositories"
	"tourship/internal/services"
	mem "tourship/pkg/memcache"
)

var Module = fx.Provide(
	provideAccountService, provideUserRepo)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideAccountService(userRepo repositories.UserRepository, memcache mem.ResetTokenStore, mailService services.MailService) services.AccountServiceInterface {
	return services.NewAccountService(userRepo, memcache, mailService)
}
