package mailer

import (
	"context"
	"errors"
)

// Config holds mailer defaults.
type Config struct {
	Layout          string `env:"MAILER_LAYOUT" envDefault:"base.html"`
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"Notification"`
}

// Mailer renders templates and sends the result.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	if cfg.Layout == "" {
		cfg.Layout = "base.html"
	}
	return &Mailer{sender: sender, renderer: renderer, config: cfg}
}

// Message is a templated email to one recipient.
type Message struct {
	To       string
	Template string
	Data     any
	Tags     map[string]string
}

func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	out, err := m.renderer.Render(m.config.Layout, msg.Template, msg.Data)
	if err != nil {
		return err
	}

	subject := out.Subject
	if subject == "" {
		subject = m.config.FallbackSubject
	}

	if err := m.sender.Send(ctx, &Email{
		To:      []string{msg.To},
		Subject: subject,
		HTML:    out.HTML,
		Text:    out.Text,
		Tags:    msg.Tags,
	}); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}
