package social

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/social/pkg/hook"
	"github.com/dmitrymomot/social/pkg/logger"
	"github.com/dmitrymomot/social/pkg/option"
	"github.com/dmitrymomot/social/pkg/user"
)

const (
	defaultSlug      = "social"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/70.0.3538.77 Safari/537.36"
	fetchTimeout     = 30 * time.Second
)

// SessionStore is the per-visitor key/value store holding OAuth nonces.
type SessionStore interface {
	Set(key, value string)
	Get(key string) (string, bool)
	Exists(key string) bool
	Delete(key string)
	// Consume reads and removes key in one step.
	Consume(key string) (string, bool)
}

// Sessions resolves the visitor session of a request.
type Sessions func(ctx context.Context) (SessionStore, bool)

// Authenticator establishes the local login for a user on the current request.
type Authenticator interface {
	SignIn(ctx context.Context, userID string) error
}

// Notifier is told about accounts created through social login.
type Notifier interface {
	CustomerRegistered(ctx context.Context, u user.User, c user.Customer) error
}

// Host bundles the collaborators shared by every adapter.
type Host struct {
	users    user.Store
	sessions Sessions
	auth     Authenticator
	hooks    *hook.Registry
	options  option.Store
	notifier Notifier
	logger   *slog.Logger
	client   *http.Client
	slug     string
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHooks sets the filter registry. Default: empty registry.
func WithHooks(r *hook.Registry) HostOption {
	return func(h *Host) {
		if r != nil {
			h.hooks = r
		}
	}
}

// WithOptions sets the option store for nonce secrets and provider settings.
// Default: in-memory store.
func WithOptions(s option.Store) HostOption {
	return func(h *Host) {
		if s != nil {
			h.options = s
		}
	}
}

// WithNotifier sets the receiver of registration events.
func WithNotifier(n Notifier) HostOption {
	return func(h *Host) { h.notifier = n }
}

func WithLogger(l *slog.Logger) HostOption {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithHTTPClient replaces the client used for token and profile requests.
func WithHTTPClient(c *http.Client) HostOption {
	return func(h *Host) {
		if c != nil {
			h.client = c
		}
	}
}

// WithSlug sets the application slug used for the default pseudo email domain.
func WithSlug(slug string) HostOption {
	return func(h *Host) {
		if slug != "" {
			h.slug = slug
		}
	}
}

// NewHost creates a Host. The default HTTP client skips TLS certificate
// verification, matching the behavior providers were integrated against.
func NewHost(users user.Store, sessions Sessions, auth Authenticator, opts ...HostOption) *Host {
	h := &Host{
		users:    users,
		sessions: sessions,
		auth:     auth,
		hooks:    hook.New(),
		options:  option.NewMemory(nil),
		logger:   logger.NewNope(),
		client:   insecureClient(),
		slug:     defaultSlug,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hooks returns the filter registry.
func (h *Host) Hooks() *hook.Registry { return h.hooks }

func (h *Host) session(ctx context.Context) (SessionStore, bool) {
	if h.sessions == nil {
		return nil, false
	}
	return h.sessions(ctx)
}

func (h *Host) userAgent(ctx context.Context) string {
	return h.hooks.String(ctx, "user_agent", defaultUserAgent)
}

func insecureClient() *http.Client {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // providers are reached without peer verification
	return &http.Client{Transport: t, Timeout: fetchTimeout}
}
