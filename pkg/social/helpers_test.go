package social_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/social/pkg/hook"
	"github.com/dmitrymomot/social/pkg/option"
	"github.com/dmitrymomot/social/pkg/social"
	"github.com/dmitrymomot/social/pkg/user"
)

// memSession is a map-backed visitor session.
type memSession struct {
	values map[string]string
}

func newMemSession() *memSession { return &memSession{values: map[string]string{}} }

func (s *memSession) Set(k, v string) { s.values[k] = v }
func (s *memSession) Get(k string) (string, bool) {
	v, ok := s.values[k]
	return v, ok
}
func (s *memSession) Exists(k string) bool { _, ok := s.values[k]; return ok }
func (s *memSession) Delete(k string)      { delete(s.values, k) }
func (s *memSession) Consume(k string) (string, bool) {
	v, ok := s.values[k]
	delete(s.values, k)
	return v, ok
}

type recordingAuth struct {
	mu      sync.Mutex
	userIDs []string
	err     error
}

func (a *recordingAuth) SignIn(_ context.Context, userID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.userIDs = append(a.userIDs, userID)
	return nil
}

func (a *recordingAuth) last() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.userIDs) == 0 {
		return ""
	}
	return a.userIDs[len(a.userIDs)-1]
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// request is what the fake provider received.
type request struct {
	Method string
	Path   string
	Form   url.Values
	Header http.Header
}

// fakeProvider serves token, profile and email endpoints with canned bodies.
type fakeProvider struct {
	*httptest.Server

	mu       sync.Mutex
	token    string
	profile  string
	emails   string
	requests []request
}

func newFakeProvider(t *testing.T, tls bool) *fakeProvider {
	t.Helper()

	p := &fakeProvider{
		token:   `{"access_token":"at-123","token_type":"bearer"}`,
		profile: `{"id":"42","name":"Jane Doe","email":"jane@example.com"}`,
		emails:  `[]`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", p.serve(func() string { return p.token }))
	mux.HandleFunc("/userinfo", p.serve(func() string { return p.profile }))
	mux.HandleFunc("/emails", p.serve(func() string { return p.emails }))

	if tls {
		p.Server = httptest.NewTLSServer(mux)
	} else {
		p.Server = httptest.NewServer(mux)
	}
	t.Cleanup(p.Close)

	return p
}

func (p *fakeProvider) serve(body func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		p.mu.Lock()
		p.requests = append(p.requests, request{Method: r.Method, Path: r.URL.Path, Form: r.Form, Header: r.Header.Clone()})
		b := body()
		p.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(b))
	}
}

func (p *fakeProvider) set(token, profile string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if token != "" {
		p.token = token
	}
	if profile != "" {
		p.profile = profile
	}
}

func (p *fakeProvider) received(path string) []request {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []request
	for _, r := range p.requests {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

type env struct {
	host     *social.Host
	hooks    *hook.Registry
	options  *option.Memory
	users    *user.Memory
	session  *memSession
	auth     *recordingAuth
	provider *fakeProvider
	logs     *syncBuffer
	logger   *slog.Logger
	registry *social.Registry
	adapter  social.Adapter
}

type envConfig struct {
	newAdapter func(*social.Host) social.Adapter
	service    string
	tls        bool
	noSession  bool
	configured bool
	extra      []social.HostOption
}

type envOption func(*envConfig)

func withAdapter(service string, fn func(*social.Host) social.Adapter) envOption {
	return func(c *envConfig) { c.service, c.newAdapter = service, fn }
}

func withTLS() envOption        { return func(c *envConfig) { c.tls = true } }
func withoutSession() envOption { return func(c *envConfig) { c.noSession = true } }
func unconfigured() envOption   { return func(c *envConfig) { c.configured = false } }
func withHostOption(o social.HostOption) envOption {
	return func(c *envConfig) { c.extra = append(c.extra, o) }
}

// newEnv wires one adapter against a fake provider. The default adapter is Google
// with its endpoints pointed at the fake server.
func newEnv(t *testing.T, opts ...envOption) *env {
	t.Helper()

	cfg := &envConfig{
		service:    social.Google,
		newAdapter: func(h *social.Host) social.Adapter { return social.NewGoogle(h) },
		configured: true,
	}
	for _, o := range opts {
		o(cfg)
	}

	e := &env{
		hooks:    hook.New(),
		options:  option.NewMemory(nil),
		users:    user.NewMemory(),
		session:  newMemSession(),
		auth:     &recordingAuth{},
		provider: newFakeProvider(t, cfg.tls),
		logs:     &syncBuffer{},
	}

	svc := cfg.service
	for key, path := range map[string]string{"token_url": "/token", "user_info_url": "/userinfo", "emails_url": "/emails"} {
		require.NoError(t, e.options.Set(context.Background(), "social_"+svc+"_"+key, e.provider.URL+path))
	}
	require.NoError(t, e.options.Set(context.Background(), "social_"+svc+"_auth_url", "https://provider.example.com/authorize"))

	if cfg.configured {
		e.hooks.Add(svc+"_oauth_client_id", hook.Value("client-id"))
		e.hooks.Add(svc+"_oauth_client_secret", hook.Value("client-secret"))
		e.hooks.Add(svc+"_oauth_redirect_uri", hook.Value("https://app.example.com/callback"))
	}

	sessions := func(context.Context) (social.SessionStore, bool) {
		if cfg.noSession {
			return nil, false
		}
		return e.session, true
	}

	e.logger = slog.New(slog.NewJSONHandler(e.logs, nil))
	hostOpts := append([]social.HostOption{
		social.WithHooks(e.hooks),
		social.WithOptions(e.options),
		social.WithLogger(e.logger),
		social.WithSlug("my_app"),
	}, cfg.extra...)

	e.host = social.NewHost(e.users, sessions, e.auth, hostOpts...)
	e.adapter = cfg.newAdapter(e.host)
	e.registry = social.NewRegistry(e.adapter)

	return e
}

// startLogin builds the authorization link and returns the state it carries.
func (e *env) startLogin(t *testing.T, redirect string) string {
	t.Helper()

	link, ok := e.adapter.OAuthLink(context.Background(), redirect)
	require.True(t, ok)

	u, err := url.Parse(link)
	require.NoError(t, err)
	state := u.Query().Get("state")
	require.NotEmpty(t, state)
	return state
}
