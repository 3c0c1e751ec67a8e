package notifier

import (
	"errors"
	"log/slog"

	"github.com/SAP-F-2025/classroom-service/internal/config"
)

// NewFromConfig picks the email and WhatsApp transports. Missing
// credentials fall back to the console sender so the service still starts.
func NewFromConfig(cfg config.NotifierConfig, logger *slog.Logger) (EmailSender, WhatsAppSender) {
	console := NewConsoleSender(logger)

	var email EmailSender = console
	if cfg.EmailProvider == "sendgrid" {
		sg, err := NewSendGridSender(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName, logger)
		switch {
		case err == nil:
			email = sg
		case errors.Is(err, ErrNotConfigured):
			logger.Warn("SendGrid selected but not configured, logging emails instead")
		}
	}

	var whatsapp WhatsAppSender = console
	if tw, err := NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom, logger); err == nil {
		whatsapp = tw
	}

	return email, whatsapp
}
