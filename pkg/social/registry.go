package social

import (
	"context"
	"sync"
)

// LinkSetting describes the login button of one configured provider.
type LinkSetting struct {
	URL      string            `json:"url"`
	Args     map[string]string `json:"args"`
	Contents string            `json:"contents"`
}

// Registry resolves adapters by service name.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
	order    []string
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds a, replacing any adapter with the same service name.
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := a.ServiceName()
	if _, ok := r.adapters[name]; !ok {
		r.order = append(r.order, name)
	}
	r.adapters[name] = a
}

func (r *Registry) Get(service string) (Adapter, bool) {
	if service == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[service]
	return a, ok
}

// Adapters returns the registered adapters in registration order.
func (r *Registry) Adapters() []Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Adapter, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.adapters[name])
	}
	return out
}

// Settings returns the login link of every configured provider. Building a link
// stores a fresh nonce in the visitor session.
func (r *Registry) Settings(ctx context.Context, currentPath string) map[string]LinkSetting {
	settings := make(map[string]LinkSetting)
	for _, a := range r.Adapters() {
		link, ok := a.OAuthLink(ctx, currentPath)
		if !ok {
			continue
		}
		settings[a.ServiceName()] = LinkSetting{
			URL:      link,
			Args:     a.LinkArgs(),
			Contents: a.LinkContents(),
		}
	}
	return settings
}
