package notifier

import (
	"context"
	"log/slog"
	"sync"
)

// ConsoleSender writes notifications to the log instead of delivering them.
// It is the default in development.
type ConsoleSender struct {
	logger *slog.Logger
}

func NewConsoleSender(logger *slog.Logger) *ConsoleSender {
	return &ConsoleSender{logger: logger}
}

func (c *ConsoleSender) SendEmail(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	c.logger.Info("Email notification", "to", msg.To, "subject", msg.Subject, "body", msg.Body)
	return nil
}

func (c *ConsoleSender) SendWhatsApp(ctx context.Context, to, body string) error {
	if to == "" {
		return ErrNoRecipient
	}
	c.logger.Info("WhatsApp notification", "to", WhatsAppAddress(to), "body", body)
	return nil
}

// RecordingSender keeps every message in memory. Err, when set, is returned
// from every send after recording the attempt.
type RecordingSender struct {
	mu       sync.Mutex
	Emails   []Message
	WhatsApp []Message
	Err      error
}

func (r *RecordingSender) SendEmail(ctx context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Emails = append(r.Emails, msg)
	return r.Err
}

func (r *RecordingSender) SendWhatsApp(ctx context.Context, to, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.WhatsApp = append(r.WhatsApp, Message{To: WhatsAppAddress(to), Body: body})
	return r.Err
}

func (r *RecordingSender) Sent() (emails, whatsapp []Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.Emails...), append([]Message(nil), r.WhatsApp...)
}
