package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/social/middlewares"
	"github.com/dmitrymomot/social/pkg/health"
)

type middleware interface {
	Middleware(http.Handler) http.Handler
}

type routerConfig struct {
	handlers       *handlers
	dispatcher     middleware
	checks         health.Checks
	logger         *slog.Logger
	requestTimeout time.Duration
	corsOrigins    []string
}

// newRouter builds the HTTP surface. The session and dispatcher middlewares wrap
// every route, including 404s, so a provider callback is handled on any path.
func newRouter(cfg routerConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middlewares.RequestID(),
		middlewares.Recover(
			middlewares.WithRecoverLogger(cfg.logger),
			middlewares.WithRecoverHandler(func(w http.ResponseWriter, r *http.Request, _ *middlewares.PanicError) {
				writeError(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			}),
		),
		middlewares.Timeout(cfg.requestTimeout, cfg.logger),
	)
	if len(cfg.corsOrigins) > 0 {
		r.Use(middlewares.CORS(
			middlewares.WithAllowOrigins(cfg.corsOrigins...),
			middlewares.WithAllowCredentials(),
		))
	}

	r.Use(cfg.handlers.sessions.Middleware, cfg.dispatcher.Middleware)

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(cfg.checks, health.WithLogger(cfg.logger)))

	r.Get("/", cfg.handlers.home)
	r.Get("/auth/providers", cfg.handlers.providers)
	r.Get("/auth/providers/{service}", cfg.handlers.provider)
	r.Post("/auth/logout", cfg.handlers.logout)
	r.Get("/me", cfg.handlers.me)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})

	return r
}
