// Package hook provides named extension points. A filter receives the current value
// of a named point and returns a replacement; filters for the same name run in the
// order they were added.
//
//	hooks := hook.New()
//	hooks.Add("google_oauth_client_id", hook.Value("1234.apps.googleusercontent.com"))
//	id := hooks.Apply(ctx, "google_oauth_client_id", "")
package hook

import (
	"context"
	"sync"
)

// Filter transforms the value of an extension point.
type Filter func(ctx context.Context, value any) any

// Registry holds filters by name. The zero value is not usable; call New.
type Registry struct {
	mu      sync.RWMutex
	filters map[string][]Filter
}

func New() *Registry {
	return &Registry{filters: make(map[string][]Filter)}
}

// Add appends f to the chain for name. Nil filters are ignored.
func (r *Registry) Add(name string, f Filter) {
	if f == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters[name] = append(r.filters[name], f)
}

// Has reports whether at least one filter is registered for name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.filters[name]) > 0
}

// Apply runs the chain for name over value. A nil Registry returns value unchanged.
func (r *Registry) Apply(ctx context.Context, name string, value any) any {
	if r == nil {
		return value
	}
	r.mu.RLock()
	chain := r.filters[name]
	r.mu.RUnlock()

	for _, f := range chain {
		value = f(ctx, value)
	}
	return value
}

// String runs Apply and returns the result when it is a string, otherwise def.
func (r *Registry) String(ctx context.Context, name, def string) string {
	if s, ok := r.Apply(ctx, name, def).(string); ok {
		return s
	}
	return def
}

// Value returns a filter that replaces the value with v. Empty strings leave the
// value untouched so unset configuration does not clobber defaults.
func Value(v string) Filter {
	return func(_ context.Context, value any) any {
		if v == "" {
			return value
		}
		return v
	}
}

// Apply is a typed wrapper around Registry.Apply. Results of the wrong type fall
// back to value.
func Apply[T any](ctx context.Context, r *Registry, name string, value T) T {
	if out, ok := r.Apply(ctx, name, value).(T); ok {
		return out
	}
	return value
}
