//go:build integration

package job_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/social/pkg/db"
	"github.com/dmitrymomot/social/pkg/job"
)

type pingPayload struct {
	N int `json:"n"`
}

type pingTask struct{ done chan int }

func (t *pingTask) Name() string { return "ping" }
func (t *pingTask) Handle(_ context.Context, p pingPayload) error {
	t.done <- p.N
	return nil
}

func TestManager_ProcessesJobs(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, db.Config{ConnectionString: url, MaxOpenConns: 4, RetryAttempts: 1})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, db.Migrate(ctx, pool, "", slog.New(slog.DiscardHandler)))

	task := &pingTask{done: make(chan int, 1)}
	m, err := job.NewManager(pool, job.WithTask[pingPayload](task))
	require.NoError(t, err)

	require.ErrorIs(t, m.Enqueue(ctx, "missing", nil), job.ErrUnknownTask)
	require.NoError(t, m.Enqueue(ctx, "ping", pingPayload{N: 7}))

	require.NoError(t, m.Start(ctx))
	t.Cleanup(func() { _ = m.Stop(context.Background()) })
	require.NoError(t, m.Healthcheck(ctx))

	select {
	case n := <-task.done:
		require.Equal(t, 7, n)
	case <-time.After(10 * time.Second):
		t.Fatal("job was not processed")
	}
}
