package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/social/pkg/cache"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newRedisCache(t *testing.T, opts ...cache.RedisOption) (*cache.Redis[record], *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedis[record](client, nil, opts...), mr
}

// backends runs fn against both implementations.
func backends(t *testing.T, fn func(t *testing.T, c cache.Cache[record])) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[record]()
		t.Cleanup(func() { _ = c.Close() })
		fn(t, c)
	})

	t.Run("redis", func(t *testing.T) {
		t.Parallel()
		c, _ := newRedisCache(t, cache.WithPrefix("test"))
		fn(t, c)
	})
}

func TestCache_SetGet(t *testing.T) {
	t.Parallel()

	backends(t, func(t *testing.T, c cache.Cache[record]) {
		ctx := context.Background()

		_, err := c.Get(ctx, "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)

		require.NoError(t, c.Set(ctx, "k", record{Name: "a", Count: 1}, time.Minute))
		got, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, record{Name: "a", Count: 1}, got)

		has, err := c.Has(ctx, "k")
		require.NoError(t, err)
		assert.True(t, has)

		require.NoError(t, c.Delete(ctx, "k"))
		has, err = c.Has(ctx, "k")
		require.NoError(t, err)
		assert.False(t, has)
	})
}

func TestCache_Take(t *testing.T) {
	t.Parallel()

	backends(t, func(t *testing.T, c cache.Cache[record]) {
		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "once", record{Name: "nonce"}, time.Minute))

		got, err := c.Take(ctx, "once")
		require.NoError(t, err)
		assert.Equal(t, "nonce", got.Name)

		_, err = c.Take(ctx, "once")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})
}

func TestCache_Clear(t *testing.T) {
	t.Parallel()

	backends(t, func(t *testing.T, c cache.Cache[record]) {
		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "a", record{}, time.Minute))
		require.NoError(t, c.Set(ctx, "b", record{}, time.Minute))

		require.NoError(t, c.Clear(ctx))

		for _, k := range []string{"a", "b"} {
			has, err := c.Has(ctx, k)
			require.NoError(t, err)
			assert.False(t, has, k)
		}
	})
}

func TestMemory_Expiry(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string](cache.WithCleanupInterval(0))
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "short", "v", time.Millisecond))
	require.NoError(t, c.Set(ctx, "forever", "v", -1))

	time.Sleep(5 * time.Millisecond)

	_, err := c.Get(ctx, "short")
	require.ErrorIs(t, err, cache.ErrNotFound)
	_, err = c.Take(ctx, "short")
	require.ErrorIs(t, err, cache.ErrNotFound)

	v, err := c.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestMemory_LRU(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[int](cache.WithMaxEntries(2))
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))

	_, err := c.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "c", 3, time.Minute))

	has, _ := c.Has(ctx, "a")
	assert.True(t, has)
	has, _ = c.Has(ctx, "b")
	assert.False(t, has, "least recently used entry is evicted")
	assert.Equal(t, 2, c.Len())
}

func TestMemory_Closed(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string]()
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	ctx := context.Background()
	require.ErrorIs(t, c.Set(ctx, "k", "v", 0), cache.ErrClosed)
	require.ErrorIs(t, c.Delete(ctx, "k"), cache.ErrClosed)
	_, err := c.Take(ctx, "k")
	require.ErrorIs(t, err, cache.ErrClosed)
}

func TestRedis_TTLAndPrefix(t *testing.T) {
	t.Parallel()

	c, mr := newRedisCache(t, cache.WithPrefix("sess"), cache.WithRedisDefaultTTL(time.Hour))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "default", record{}, 0))
	require.NoError(t, c.Set(ctx, "forever", record{}, -1))

	assert.True(t, mr.Exists("sess:default"))
	assert.Equal(t, time.Hour, mr.TTL("sess:default"))
	assert.Equal(t, time.Duration(0), mr.TTL("sess:forever"))

	mr.FastForward(2 * time.Hour)
	_, err := c.Get(ctx, "default")
	require.ErrorIs(t, err, cache.ErrNotFound)
}

func TestRedis_UnmarshalError(t *testing.T) {
	t.Parallel()

	c, mr := newRedisCache(t)
	require.NoError(t, mr.Set("broken", "{not json"))

	_, err := c.Get(context.Background(), "broken")
	require.ErrorIs(t, err, cache.ErrUnmarshal)
}

func TestGetOrSet(t *testing.T) {
	t.Parallel()

	t.Run("loads once for concurrent misses", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		var calls atomic.Int32
		load := func(context.Context) (string, time.Duration, error) {
			calls.Add(1)
			time.Sleep(10 * time.Millisecond)
			return "secret", time.Minute, nil
		}

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := cache.GetOrSet(context.Background(), c, "hash_source_google", load)
				assert.NoError(t, err)
				assert.Equal(t, "secret", v)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("does not cache errors", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		boom := errors.New("boom")
		_, err := cache.GetOrSet(context.Background(), c, "err-key", func(context.Context) (string, time.Duration, error) {
			return "", 0, boom
		})
		require.ErrorIs(t, err, boom)

		has, _ := c.Has(context.Background(), "err-key")
		assert.False(t, has)
	})
}
