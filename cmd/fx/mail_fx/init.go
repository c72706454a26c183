package mail_fx

import (
	"log"

	"go.uber.org/fx"

	"tourship/internal/config"
	"tourship/internal/services"
)

var Module = fx.Provide(provideMailService)

// provideMailService wires SMTP when a host is configured and a logging
// sink otherwise, so mail-sending flows keep working in dev.
func provideMailService(cfg config.Config) services.MailService {
	if cfg.SMTPHost == "" {
		log.Println("SMTP_HOST not set, mail goes to the log")
		return services.NewLogMailService()
	}

	return services.NewSMTPMailService(services.SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort, // 587 for STARTTLS
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		From:       cfg.MailFrom,
		FromName:   cfg.MailFromName,
		RequireTLS: true,

		AppName:    cfg.MailFromName,
		AppBaseURL: cfg.AppBaseURL,
	})
}
