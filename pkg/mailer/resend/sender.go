package resend

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/social/pkg/mailer"
)

// ErrNotConfigured is returned by New when the API key or sender address is empty.
var ErrNotConfigured = errors.New("resend: api key and sender email are required")

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
	config Config
}

func New(cfg Config) (*Sender, error) {
	if cfg.APIKey == "" || cfg.SenderEmail == "" {
		return nil, ErrNotConfigured
	}
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		config: cfg,
	}, nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	from := email.From
	if from == "" {
		from = s.from()
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	}
	for name, value := range email.Tags {
		req.Tags = append(req.Tags, resend.Tag{Name: name, Value: value})
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}

func (s *Sender) from() string {
	if s.config.SenderName != "" {
		return fmt.Sprintf("%s <%s>", s.config.SenderName, s.config.SenderEmail)
	}
	return s.config.SenderEmail
}
