package social

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/social/pkg/logger"
)

// Dispatcher detects OAuth callbacks on any request and completes the login.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

func WithDispatcherLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

func NewDispatcher(r *Registry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{registry: r, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Middleware handles requests carrying "state" together with "code" or "error".
// Callbacks that do not belong to this server fall through to next. Every handled
// callback ends in a redirect to the path stored in the state when that path is
// safe; otherwise the request continues to next.
func (d *Dispatcher) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		code, errParam, rawState := q.Get("code"), q.Get("error"), q.Get("state")
		if rawState == "" || (code == "" && errParam == "") {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()

		state, ok := DecodeState(rawState)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		adapter, ok := d.registry.Get(state.Service)
		if !ok || !adapter.CheckStateParams(ctx, state) {
			next.ServeHTTP(w, r)
			return
		}

		redirect := func() {
			if IsSafeRedirect(state.Redirect) {
				http.Redirect(w, r, state.Redirect, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		}

		if errParam != "" {
			d.logger.WarnContext(ctx, "social error",
				slog.String("service", state.Service),
				slog.String("query", r.URL.RawQuery),
			)
			redirect()
			return
		}

		clientID, clientSecret := adapter.OAuthSettings(ctx)
		if clientID == "" || clientSecret == "" {
			redirect()
			return
		}

		token, ok := adapter.AccessToken(ctx, code, clientID, clientSecret)
		if !ok {
			redirect()
			return
		}

		profile, ok := adapter.UserInfo(ctx, token)
		if !ok || profile.ID() == "" {
			d.logger.WarnContext(ctx, "get user info error",
				slog.String("service", state.Service),
				slog.Any("profile", profile),
			)
			redirect()
			return
		}

		adapter.RegisterOrLoginCustomer(ctx, profile)
		redirect()
	})
}
