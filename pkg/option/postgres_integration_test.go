//go:build integration

package option_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/social/pkg/db"
	"github.com/dmitrymomot/social/pkg/id"
	"github.com/dmitrymomot/social/pkg/option"
)

func TestPostgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, db.Config{ConnectionString: url, MaxOpenConns: 4, RetryAttempts: 1})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, db.Migrate(ctx, pool, "", slog.New(slog.DiscardHandler)))

	s := option.NewPostgres(pool)
	key := "test_" + id.NewULID()

	_, err = s.Get(ctx, key)
	require.ErrorIs(t, err, option.ErrNotFound)

	require.NoError(t, s.Set(ctx, key, "one"))
	require.NoError(t, s.Set(ctx, key, "two"))

	v, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "two", v)

	added := "test_" + id.NewULID()
	v, err = s.Add(ctx, added, "first")
	require.NoError(t, err)
	assert.Equal(t, "first", v)
	v, err = s.Add(ctx, added, "second")
	require.NoError(t, err)
	assert.Equal(t, "first", v, "add never overwrites")
}
