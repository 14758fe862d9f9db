package job

import (
	"context"
	"log/slog"
)

type schedule struct {
	name string
	cron string
	run  scheduledExecutor
}

type config struct {
	registry   *registry
	queues     map[string]int
	schedules  []schedule
	logger     *slog.Logger
	maxWorkers int
}

// Option configures the Manager.
type Option func(*config)

// WithTask registers a task. The payload type is inferred from Handle.
func WithTask[P any, T typedTask[P]](task T) Option {
	return func(c *config) {
		c.registry.add(task.Name(), typedExecutor[P]{task: task})
	}
}

// WithScheduledTask registers a periodic task. Schedule returns a cron expression
// with five fields: minute, hour, day of month, month, day of week.
func WithScheduledTask[T interface {
	Name() string
	Schedule() string
	Handle(context.Context) error
}](task T) Option {
	return func(c *config) {
		c.schedules = append(c.schedules, schedule{name: task.Name(), cron: task.Schedule(), run: task.Handle})
	}
}

// WithQueue adds a named queue with its own worker limit.
func WithQueue(name string, workers int) Option {
	return func(c *config) {
		if name != "" && workers > 0 {
			c.queues[name] = workers
		}
	}
}

// WithMaxWorkers sets the worker limit of the default queue. Default: 100.
func WithMaxWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
