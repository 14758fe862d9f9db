package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout bounds the request context by d. When the handler returns after the
// deadline, the timeout is logged and 504 is written; handlers that already wrote
// a response keep it.
func Timeout(d time.Duration, log *slog.Logger) func(http.Handler) http.Handler {
	if d <= 0 {
		d = DefaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer func() {
				defer cancel()
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					err := &TimeoutError{Duration: d}
					log.WarnContext(ctx, "request timeout", slog.String("error", err.Error()))
					w.WriteHeader(http.StatusGatewayTimeout)
				}
			}()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
