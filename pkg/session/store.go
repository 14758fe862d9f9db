package session

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/social/pkg/cache"
)

// Store persists sessions by token.
type Store interface {
	// Save creates or replaces the session stored under s.Token.
	Save(ctx context.Context, s *Session) error
	// Get returns ErrNotFound or ErrExpired when the token does not resolve.
	Get(ctx context.Context, token string) (*Session, error)
	// Take removes and returns the session stored under token.
	Take(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

// CacheStore keeps sessions in a cache.Cache (memory or Redis). Entries expire with
// the session.
type CacheStore struct {
	cache cache.Cache[*Session]
}

// NewCacheStore wraps c.
//
//	store := session.NewCacheStore(cache.NewRedis[*session.Session](client, nil, cache.WithPrefix("sess")))
func NewCacheStore(c cache.Cache[*Session]) *CacheStore {
	return &CacheStore{cache: c}
}

func (s *CacheStore) Save(ctx context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrExpired
	}
	// Memory caches hold pointers; store a copy so later request mutations stay local.
	return s.cache.Set(ctx, sess.Token, sess.Clone(), ttl)
}

func (s *CacheStore) Get(ctx context.Context, token string) (*Session, error) {
	sess, err := s.cache.Get(ctx, token)
	return s.resolve(sess, err)
}

func (s *CacheStore) Take(ctx context.Context, token string) (*Session, error) {
	sess, err := s.cache.Take(ctx, token)
	return s.resolve(sess, err)
}

func (s *CacheStore) Delete(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, token)
}

func (s *CacheStore) resolve(sess *Session, err error) (*Session, error) {
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrStore, err)
	}
	if sess == nil {
		return nil, ErrNotFound
	}
	if sess.IsExpired() {
		return nil, ErrExpired
	}
	return sess.Clone(), nil
}

var _ Store = (*CacheStore)(nil)
