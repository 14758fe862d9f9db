package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/social/pkg/mailer"
	"github.com/dmitrymomot/social/pkg/user"
)

const (
	SendWelcomeName = "send_welcome"
	welcomeTemplate = "welcome.md"
)

// WelcomePayload identifies the registered user and the provider used.
type WelcomePayload struct {
	UserID  string `json:"user_id"`
	Service string `json:"service"`
}

// Mailer sends templated email.
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// PseudoChecker reports whether an address was generated for a profile without email.
type PseudoChecker interface {
	IsPseudoEmail(ctx context.Context, email string) bool
}

// PseudoCheckerFunc adapts a function to PseudoChecker.
type PseudoCheckerFunc func(ctx context.Context, email string) bool

func (f PseudoCheckerFunc) IsPseudoEmail(ctx context.Context, email string) bool {
	return f(ctx, email)
}

// SendWelcome emails a newly registered user. Pseudo addresses are skipped.
type SendWelcome struct {
	mailer Mailer
	users  user.Store
	pseudo PseudoChecker
	logger *slog.Logger
}

func NewSendWelcome(m Mailer, users user.Store, pseudo PseudoChecker, logger *slog.Logger) *SendWelcome {
	return &SendWelcome{mailer: m, users: users, pseudo: pseudo, logger: logger}
}

func (t *SendWelcome) Name() string { return SendWelcomeName }

func (t *SendWelcome) Handle(ctx context.Context, p WelcomePayload) error {
	u, err := t.users.UserByID(ctx, p.UserID)
	if errors.Is(err, user.ErrNotFound) {
		t.logger.WarnContext(ctx, "welcome email skipped, user deleted", slog.String("user_id", p.UserID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	if t.pseudo.IsPseudoEmail(ctx, u.Email) {
		t.logger.DebugContext(ctx, "welcome email skipped, pseudo address", slog.String("user_id", u.ID))
		return nil
	}

	var name string
	c, err := t.users.CustomerByUserID(ctx, u.ID)
	switch {
	case err == nil:
		name = c.FirstName
	case !errors.Is(err, user.ErrNotFound):
		return fmt.Errorf("load customer: %w", err)
	}

	return t.mailer.Send(ctx, mailer.Message{
		To:       u.Email,
		Template: welcomeTemplate,
		Data: map[string]string{
			"Name":    name,
			"Service": p.Service,
		},
		Tags: map[string]string{"kind": "welcome", "service": p.Service},
	})
}
