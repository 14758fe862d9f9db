package mailer

import (
	"context"
	"log/slog"
)

// Email is a rendered message.
type Email struct {
	To      []string
	Subject string
	HTML    string
	Text    string
	From    string
	Tags    map[string]string
}

// Sender delivers a rendered Email.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// LogSender writes emails to a logger instead of delivering them. It is used when
// no email provider is configured.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(ctx context.Context, email *Email) error {
	s.Logger.InfoContext(ctx, "email not delivered, no provider configured",
		slog.Any("to", email.To),
		slog.String("subject", email.Subject),
	)
	return nil
}
