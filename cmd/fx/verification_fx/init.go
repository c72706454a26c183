package verification_fx

import (
	"go.uber.org/fx"

	"tourship/internal/repositories"
	"tourship/internal/services"
)

var Module = fx.Provide(provideVerificationService)

func provideVerificationService(userRepo repositories.UserRepository, mailService services.MailService) services.VerificationServiceInterface {
	return services.NewVerificationService(userRepo, mailService)
}
