// Package option stores process-wide settings such as per-provider endpoints and the
// lazily generated nonce secrets.
package option

import (
	"context"
	"errors"
	"maps"
	"sync"
)

var (
	ErrNotFound = errors.New("option: not found")
	ErrStore    = errors.New("option: store failure")
)

// Store is a persisted key/value store.
type Store interface {
	// Get returns ErrNotFound when key is unset.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Adder is implemented by stores that can insert a key only when it is absent.
type Adder interface {
	// Add stores value unless key is already set and returns the stored value, so
	// concurrent callers all observe the first write.
	Add(ctx context.Context, key, value string) (string, error)
}

// Memory is an in-process Store for tests and database-less deployments.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns a Memory seeded with initial.
func NewMemory(initial map[string]string) *Memory {
	m := &Memory{values: make(map[string]string, len(initial))}
	maps.Copy(m.values, initial)
	return m
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Add(_ context.Context, key, value string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	m.values[key] = value
	return value, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Lookup returns the value of key or def when it is unset or unreadable.
func Lookup(ctx context.Context, s Store, key, def string) string {
	v, err := s.Get(ctx, key)
	if err != nil {
		return def
	}
	return v
}

// GetOrCreate returns the value of key, storing the result of gen when it is unset.
// With an Adder the first write wins and every caller gets the stored value;
// plain stores fall back to Set, where concurrent first calls may race.
func GetOrCreate(ctx context.Context, s Store, key string, gen func() string) (string, error) {
	v, err := s.Get(ctx, key)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	if a, ok := s.(Adder); ok {
		return a.Add(ctx, key, gen())
	}

	v = gen()
	if err := s.Set(ctx, key, v); err != nil {
		return "", err
	}
	return v, nil
}

var (
	_ Store = (*Memory)(nil)
	_ Adder = (*Memory)(nil)
)
