package option_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/social/pkg/cache"
	"github.com/dmitrymomot/social/pkg/option"
)

// countingStore records how often the backing store is read.
type countingStore struct {
	option.Store
	gets atomic.Int32
}

func (c *countingStore) Get(ctx context.Context, key string) (string, error) {
	c.gets.Add(1)
	return c.Store.Get(ctx, key)
}

// lateStore misses every read, like an instance that looked up a key just before
// another instance stored it.
type lateStore struct {
	*option.Memory
}

func (lateStore) Get(context.Context, string) (string, error) { return "", option.ErrNotFound }

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, error) { return "", option.ErrStore }
func (brokenStore) Set(context.Context, string, string) error   { return option.ErrStore }

func TestMemory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := option.NewMemory(map[string]string{"social_google_scope": "email"})

	v, err := s.Get(ctx, "social_google_scope")
	require.NoError(t, err)
	assert.Equal(t, "email", v)

	_, err = s.Get(ctx, "missing")
	require.ErrorIs(t, err, option.ErrNotFound)

	require.NoError(t, s.Set(ctx, "missing", "now"))
	assert.Equal(t, "now", option.Lookup(ctx, s, "missing", "def"))
	assert.Equal(t, "def", option.Lookup(ctx, s, "other", "def"))
}

func TestGetOrCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates once", func(t *testing.T) {
		t.Parallel()
		s := option.NewMemory(nil)
		var calls int
		gen := func() string { calls++; return "secret" }

		v1, err := option.GetOrCreate(ctx, s, "hash_source_google", gen)
		require.NoError(t, err)
		v2, err := option.GetOrCreate(ctx, s, "hash_source_google", gen)
		require.NoError(t, err)

		assert.Equal(t, "secret", v1)
		assert.Equal(t, v1, v2)
		assert.Equal(t, 1, calls)
	})

	t.Run("first write wins", func(t *testing.T) {
		t.Parallel()
		s := lateStore{option.NewMemory(map[string]string{"hash_source_google": "first"})}

		v, err := option.GetOrCreate(ctx, s, "hash_source_google", func() string { return "second" })
		require.NoError(t, err)
		assert.Equal(t, "first", v)
	})

	t.Run("cached store keeps the stored value", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()
		t.Cleanup(func() { _ = c.Close() })
		s := option.NewCached(lateStore{option.NewMemory(map[string]string{"hash_source_line": "first"})}, c, time.Minute)

		v, err := option.GetOrCreate(ctx, s, "hash_source_line", func() string { return "second" })
		require.NoError(t, err)
		assert.Equal(t, "first", v)

		cached, err := c.Get(ctx, "hash_source_line")
		require.NoError(t, err)
		assert.Equal(t, "first", cached)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		_, err := option.GetOrCreate(ctx, brokenStore{}, "k", func() string { return "x" })
		require.ErrorIs(t, err, option.ErrStore)
	})
}

func TestCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	backing := &countingStore{Store: option.NewMemory(map[string]string{"a": "1"})}
	s := option.NewCached(backing, cache.NewRedis[string](client, nil, cache.WithPrefix("opt")), time.Minute)

	for range 3 {
		v, err := s.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "1", v)
	}
	assert.Equal(t, int32(1), backing.gets.Load())

	require.NoError(t, s.Set(ctx, "a", "2"))
	v, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
	assert.Equal(t, int32(1), backing.gets.Load(), "Set refreshes the cache")

	_, err = s.Get(ctx, "missing")
	require.True(t, errors.Is(err, option.ErrNotFound))
}

func TestCached_SetFailure(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string]()
	t.Cleanup(func() { _ = c.Close() })

	s := option.NewCached(brokenStore{}, c, 0)
	require.ErrorIs(t, s.Set(context.Background(), "k", "v"), option.ErrStore)

	_, err := c.Get(context.Background(), "k")
	require.ErrorIs(t, err, cache.ErrNotFound)
}
