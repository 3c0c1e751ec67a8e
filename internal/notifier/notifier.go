package notifier

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotConfigured = errors.New("notification transport not configured")
	ErrNoRecipient   = errors.New("notification has no recipient")
)

// Message is a single outbound notification
type Message struct {
	To      string
	Subject string
	Body    string
}

// EmailSender delivers plain text email
type EmailSender interface {
	SendEmail(ctx context.Context, msg Message) error
}

// WhatsAppSender delivers WhatsApp text messages
type WhatsAppSender interface {
	SendWhatsApp(ctx context.Context, to, body string) error
}

const whatsAppPrefix = "whatsapp:"

// WhatsAppAddress prefixes a phone number with the whatsapp: scheme
// unless it already carries it.
func WhatsAppAddress(number string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, whatsAppPrefix) {
		return number
	}
	return whatsAppPrefix + number
}
