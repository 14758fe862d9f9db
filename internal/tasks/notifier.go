package tasks

import (
	"context"
	"time"

	"github.com/dmitrymomot/social/pkg/job"
	"github.com/dmitrymomot/social/pkg/social"
	"github.com/dmitrymomot/social/pkg/user"
)

// Enqueuer inserts background jobs.
type Enqueuer interface {
	Enqueue(ctx context.Context, name string, payload any, opts ...job.EnqueueOption) error
}

// Notifier schedules the welcome email for accounts created by social login.
type Notifier struct {
	jobs Enqueuer
}

func NewNotifier(jobs Enqueuer) *Notifier {
	return &Notifier{jobs: jobs}
}

// CustomerRegistered implements social.Notifier.
func (n *Notifier) CustomerRegistered(ctx context.Context, u user.User, _ user.Customer) error {
	service, _ := social.IsSocialLogin(ctx)
	return n.jobs.Enqueue(ctx, SendWelcomeName,
		WelcomePayload{UserID: u.ID, Service: service},
		job.Unique(u.ID, 24*time.Hour),
		job.MaxAttempts(5),
	)
}
