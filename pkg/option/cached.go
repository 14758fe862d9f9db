package option

import (
	"context"
	"time"

	"github.com/dmitrymomot/social/pkg/cache"
)

const defaultCacheTTL = 5 * time.Minute

// Cached is a read-through cache in front of another Store. Writes go to the
// backing store first and then refresh the cache.
type Cached struct {
	next  Store
	cache cache.Cache[string]
	ttl   time.Duration
}

// NewCached wraps next. A non-positive ttl selects five minutes.
func NewCached(next Store, c cache.Cache[string], ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cached{next: next, cache: c, ttl: ttl}
}

func (c *Cached) Get(ctx context.Context, key string) (string, error) {
	return cache.GetOrSet(ctx, c.cache, key, func(ctx context.Context) (string, time.Duration, error) {
		v, err := c.next.Get(ctx, key)
		return v, c.ttl, err
	})
}

func (c *Cached) Set(ctx context.Context, key, value string) error {
	if err := c.next.Set(ctx, key, value); err != nil {
		return err
	}
	// A failed refresh only means a stale read until the entry expires.
	_ = c.cache.Set(ctx, key, value, c.ttl)
	return nil
}

// Add inserts through the backing store and caches the value it reports, so a
// losing writer never caches its own candidate.
func (c *Cached) Add(ctx context.Context, key, value string) (string, error) {
	v, err := GetOrCreate(ctx, c.next, key, func() string { return value })
	if err != nil {
		return "", err
	}
	_ = c.cache.Set(ctx, key, v, c.ttl)
	return v, nil
}

var (
	_ Store = (*Cached)(nil)
	_ Adder = (*Cached)(nil)
)
