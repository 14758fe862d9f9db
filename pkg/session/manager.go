package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/social/pkg/cookie"
	"github.com/dmitrymomot/social/pkg/id"
	"github.com/dmitrymomot/social/pkg/logger"
)

const (
	defaultCookieName = "__sid"
	defaultMaxAge     = 86400 * 30 // 30 days
	tokenBytes        = 32
)

type ctxKey struct{}

// Manager loads the visitor session for every request and persists it before the
// response is written.
type Manager struct {
	store      Store
	cookies    *cookie.Manager
	logger     *slog.Logger
	cookieName string
	maxAge     int
}

// Option configures the Manager.
type Option func(*Manager)

// WithCookieName sets the session cookie name. Default: "__sid".
func WithCookieName(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.cookieName = name
		}
	}
}

// WithMaxAge sets the session lifetime. Default: 30 days.
func WithMaxAge(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.maxAge = int(d.Seconds())
		}
	}
}

// WithLogger sets the logger for store failures.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a Manager. The cookie manager must have a signing secret.
func NewManager(store Store, cookies *cookie.Manager, opts ...Option) *Manager {
	m := &Manager{
		store:      store,
		cookies:    cookies,
		logger:     logger.NewNope(),
		cookieName: defaultCookieName,
		maxAge:     defaultMaxAge,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Middleware binds a session to the request context. Sessions are created lazily:
// an anonymous visitor gets a cookie only once something is stored in the session.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess, err := m.load(ctx, r)
		if err != nil {
			sess, err = m.create(r)
			if err != nil {
				m.logger.ErrorContext(ctx, "failed to create session", slog.String("error", err.Error()))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}

		rw := newResponseWriter(w)
		rw.onBeforeWrite(func() { m.persist(ctx, rw, sess) })

		next.ServeHTTP(rw, r.WithContext(context.WithValue(ctx, ctxKey{}, sess)))

		// Nothing written yet: net/http sends the headers after we return.
		rw.commit()
	})
}

// FromContext returns the session bound by Middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// SignIn authenticates userID on the request's session. Any previous user is
// replaced and the token is rotated to prevent session fixation.
func (m *Manager) SignIn(ctx context.Context, userID string) error {
	sess, ok := FromContext(ctx)
	if !ok {
		return ErrNotConfigured
	}

	// A different account signing in on the same browser replaces the previous one.
	sess.UserID = userID
	sess.dirty = true

	return m.rotate(ctx, sess)
}

// SignOut drops the session from the store and clears the cookie.
func (m *Manager) SignOut(ctx context.Context) error {
	sess, ok := FromContext(ctx)
	if !ok {
		return ErrNotConfigured
	}

	if !sess.isNew {
		if err := m.store.Delete(ctx, sess.Token); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}

	sess.UserID = ""
	clear(sess.Values)
	sess.destroyed = true
	sess.dirty = false

	return nil
}

func (m *Manager) rotate(ctx context.Context, sess *Session) error {
	token, err := id.NewToken(tokenBytes)
	if err != nil {
		return fmt.Errorf("generate session token: %w", err)
	}

	if !sess.isNew {
		if _, err := m.store.Take(ctx, sess.Token); err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrExpired) {
			return fmt.Errorf("rotate session: %w", err)
		}
	}

	sess.Token = token
	sess.LastActiveAt = time.Now()
	if err := m.store.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	sess.isNew = false
	sess.dirty = false
	sess.cookieDirty = true

	return nil
}

func (m *Manager) load(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.cookies.GetSigned(r, m.cookieName)
	if err != nil {
		return nil, err
	}
	return m.store.Get(ctx, token)
}

func (m *Manager) create(r *http.Request) (*Session, error) {
	token, err := id.NewToken(tokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	sess := New(id.NewULID(), token, time.Now().Add(time.Duration(m.maxAge)*time.Second))
	sess.UserAgent = r.UserAgent()

	return sess, nil
}

// persist saves a dirty session and writes or clears the cookie as needed.
func (m *Manager) persist(ctx context.Context, w http.ResponseWriter, sess *Session) {
	if sess.destroyed {
		m.cookies.Delete(w, m.cookieName)
		return
	}

	if sess.dirty {
		sess.LastActiveAt = time.Now()
		if err := m.store.Save(ctx, sess); err != nil {
			m.logger.ErrorContext(ctx, "failed to save session",
				slog.String("session_id", sess.ID),
				slog.String("error", err.Error()),
			)
			return
		}
		sess.dirty = false
		if sess.isNew {
			sess.isNew = false
			sess.cookieDirty = true
		}
	}

	if sess.cookieDirty && !sess.isNew {
		if err := m.cookies.SetSigned(w, m.cookieName, sess.Token, m.maxAge); err != nil {
			m.logger.ErrorContext(ctx, "failed to write session cookie", slog.String("error", err.Error()))
			return
		}
		sess.cookieDirty = false
	}
}

// IDExtractor logs the session id of the request.
func IDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if s, ok := FromContext(ctx); ok {
			return slog.String("session_id", s.ID), true
		}
		return slog.Attr{}, false
	}
}
