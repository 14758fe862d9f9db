package job

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"slices"
	"sync"
)

// executor runs a task from its raw JSON payload.
type executor interface {
	Execute(ctx context.Context, payload json.RawMessage) error
}

type registry struct {
	mu    sync.RWMutex
	tasks map[string]executor
}

func newRegistry() *registry {
	return &registry{tasks: make(map[string]executor)}
}

func (r *registry) add(name string, e executor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[name] = e
}

func (r *registry) get(name string) (executor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.tasks[name]
	return e, ok
}

func (r *registry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.tasks))
}

// typedTask is satisfied by any task with a JSON-decodable payload P.
type typedTask[P any] interface {
	Name() string
	Handle(context.Context, P) error
}

type typedExecutor[P any] struct {
	task typedTask[P]
}

func (e typedExecutor[P]) Execute(ctx context.Context, raw json.RawMessage) error {
	var payload P
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return errors.Join(ErrInvalidPayload, err)
		}
	}
	return e.task.Handle(ctx, payload)
}

// scheduledExecutor runs payload-less periodic tasks.
type scheduledExecutor func(ctx context.Context) error

func (f scheduledExecutor) Execute(ctx context.Context, _ json.RawMessage) error {
	return f(ctx)
}
