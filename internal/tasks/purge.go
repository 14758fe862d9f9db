package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/social/pkg/user"
)

// PurgeLinks deletes provider links left behind by deleted users. Runs daily at 03:00.
type PurgeLinks struct {
	users  user.Store
	logger *slog.Logger
}

func NewPurgeLinks(users user.Store, logger *slog.Logger) *PurgeLinks {
	return &PurgeLinks{users: users, logger: logger}
}

func (t *PurgeLinks) Name() string     { return "purge_orphan_links" }
func (t *PurgeLinks) Schedule() string { return "0 3 * * *" }

func (t *PurgeLinks) Handle(ctx context.Context) error {
	n, err := t.users.DeleteOrphanLinks(ctx)
	if err != nil {
		return fmt.Errorf("purge orphan links: %w", err)
	}
	if n > 0 {
		t.logger.InfoContext(ctx, "orphan links purged", slog.Int64("count", n))
	}
	return nil
}
