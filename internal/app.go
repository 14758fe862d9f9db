package internal

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/social/internal/config"
	"github.com/dmitrymomot/social/internal/tasks"
	"github.com/dmitrymomot/social/pkg/cache"
	"github.com/dmitrymomot/social/pkg/cookie"
	"github.com/dmitrymomot/social/pkg/db"
	"github.com/dmitrymomot/social/pkg/health"
	"github.com/dmitrymomot/social/pkg/hook"
	"github.com/dmitrymomot/social/pkg/job"
	"github.com/dmitrymomot/social/pkg/mailer"
	"github.com/dmitrymomot/social/pkg/mailer/resend"
	"github.com/dmitrymomot/social/pkg/option"
	"github.com/dmitrymomot/social/pkg/redis"
	"github.com/dmitrymomot/social/pkg/session"
	"github.com/dmitrymomot/social/pkg/social"
	"github.com/dmitrymomot/social/pkg/user"
)

const optionCacheTTL = 5 * time.Minute

// App is the assembled service.
type App struct {
	cfg      config.Config
	logger   *slog.Logger
	handler  http.Handler
	jobs     *job.Manager
	registry *social.Registry
	pool     *pgxpool.Pool
	checks   health.Checks

	startHooks    []func(context.Context) error
	shutdownHooks []func(context.Context) error
}

// New connects the backing services and wires the HTTP surface. Postgres and
// Redis are optional: without them users, options and sessions live in memory and
// background jobs are disabled.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: log, checks: health.Checks{}}

	users, options, err := a.openStores(ctx)
	if err != nil {
		return nil, a.abort(err)
	}

	sessionCache, optionCache, err := a.openCaches(ctx)
	if err != nil {
		return nil, a.abort(err)
	}
	options = option.NewCached(options, optionCache, optionCacheTTL)

	cookies := cookie.New(
		cookie.WithSecret(cfg.Session.CookieSecret),
		cookie.WithDomain(cfg.Session.CookieDomain),
		cookie.WithSecure(cfg.Session.Secure),
		cookie.WithSameSite(http.SameSiteLaxMode),
	)
	sessions := session.NewManager(session.NewCacheStore(sessionCache), cookies,
		session.WithCookieName(cfg.Session.CookieName),
		session.WithMaxAge(cfg.Session.TTL),
		session.WithLogger(log),
	)

	hooks := hook.New()
	cfg.Social.Register(hooks)

	hostOpts := []social.HostOption{
		social.WithHooks(hooks),
		social.WithOptions(options),
		social.WithLogger(log),
		social.WithSlug(cfg.Social.Slug),
	}

	// The welcome task needs the host for pseudo email checks and the host needs the
	// job manager for its notifier.
	var host *social.Host
	if a.jobs, err = a.openJobs(users, tasks.PseudoCheckerFunc(func(ctx context.Context, email string) bool {
		return host.IsPseudoEmail(ctx, email)
	})); err != nil {
		return nil, a.abort(err)
	}
	if a.jobs != nil {
		hostOpts = append(hostOpts, social.WithNotifier(tasks.NewNotifier(a.jobs)))
	}

	host = social.NewHost(users, sessionsOf, sessions, hostOpts...)
	a.registry = social.NewRegistry(social.NewAdapters(host)...)

	a.handler = newRouter(routerConfig{
		handlers: &handlers{
			defaultReturn: cfg.HTTP.DefaultReturn,
			registry:      a.registry,
			host:          host,
			sessions:      sessions,
			users:         users,
			logger:        log,
		},
		dispatcher:     social.NewDispatcher(a.registry, social.WithDispatcherLogger(log)),
		checks:         a.checks,
		logger:         log,
		requestTimeout: cfg.HTTP.RequestTimeout,
		corsOrigins:    cfg.HTTP.CORSOrigins,
	})

	return a, nil
}

// sessionsOf exposes the request session to the social flow.
func sessionsOf(ctx context.Context) (social.SessionStore, bool) {
	s, ok := session.FromContext(ctx)
	if !ok {
		return nil, false
	}
	return s, true
}

func (a *App) openStores(ctx context.Context) (user.Store, option.Store, error) {
	if !a.cfg.Database.Enabled() {
		a.logger.Warn("DATABASE_URL not set, using in-memory stores")
		return user.NewMemory(), option.NewMemory(nil), nil
	}

	pool, err := db.Connect(ctx, a.cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	a.onShutdown(db.Shutdown(pool))
	a.pool = pool

	if err := db.Migrate(ctx, pool, a.cfg.Database.MigrationsTable, a.logger); err != nil {
		return nil, nil, err
	}

	a.addCheck("postgres", db.Healthcheck(pool))
	return user.NewPostgres(pool), option.NewPostgres(pool), nil
}

func (a *App) openCaches(ctx context.Context) (cache.Cache[*session.Session], cache.Cache[string], error) {
	if !a.cfg.Redis.Enabled() {
		a.logger.Warn("REDIS_URL not set, using in-memory caches")
		sessions := cache.NewMemory[*session.Session](cache.WithDefaultTTL(a.cfg.Session.TTL))
		options := cache.NewMemory[string](cache.WithDefaultTTL(optionCacheTTL))
		a.onShutdown(closer(sessions.Close), closer(options.Close))
		return sessions, options, nil
	}

	client, err := redis.Open(ctx, a.cfg.Redis.URL, redis.FromConfig(a.cfg.Redis)...)
	if err != nil {
		return nil, nil, err
	}
	a.addCheck("redis", redis.Healthcheck(client))
	a.onShutdown(redis.Shutdown(client))

	sessions, options := newRedisCaches(client, a.cfg.Session.TTL)
	return sessions, options, nil
}

func newRedisCaches(client goredis.UniversalClient, ttl time.Duration) (cache.Cache[*session.Session], cache.Cache[string]) {
	sessions := cache.NewRedis[*session.Session](client, nil,
		cache.WithPrefix("sess"),
		cache.WithRedisDefaultTTL(ttl),
	)
	options := cache.NewRedis[string](client, nil,
		cache.WithPrefix("opt"),
		cache.WithRedisDefaultTTL(optionCacheTTL),
	)
	return sessions, options
}

func (a *App) openJobs(users user.Store, pseudo tasks.PseudoChecker) (*job.Manager, error) {
	if a.pool == nil {
		a.logger.Warn("background jobs disabled, no database")
		return nil, nil
	}

	m, err := job.NewManager(a.pool,
		job.WithTask[tasks.WelcomePayload](tasks.NewSendWelcome(a.newMailer(), users, pseudo, a.logger)),
		job.WithScheduledTask(tasks.NewPurgeLinks(users, a.logger)),
		job.WithMaxWorkers(a.cfg.Jobs.MaxWorkers),
		job.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}

	a.startHooks = append(a.startHooks, m.Start)
	// Workers stop before the pool closes.
	a.shutdownHooks = append([]func(context.Context) error{m.Stop}, a.shutdownHooks...)
	a.addCheck("jobs", m.Healthcheck)
	return m, nil
}

func (a *App) newMailer() *mailer.Mailer {
	var sender mailer.Sender = mailer.LogSender{Logger: a.logger}
	if s, err := resend.New(a.cfg.Resend); err == nil {
		sender = s
	} else {
		a.logger.Warn("resend not configured, emails are logged only")
	}
	return mailer.New(sender, mailer.NewRenderer(mailer.Templates()), a.cfg.Mailer)
}

// Handler returns the HTTP handler.
func (a *App) Handler() http.Handler { return a.handler }

// Run serves HTTP until ctx ends or the process receives SIGINT or SIGTERM, then
// shuts everything down.
func (a *App) Run(ctx context.Context) error {
	return a.serve(ctx, nil)
}

func (a *App) serve(ctx context.Context, ln net.Listener) error {
	return runServer(ctx, runtimeConfig{
		handler:         a.handler,
		listener:        ln,
		address:         a.cfg.HTTP.Address,
		logger:          a.logger,
		shutdownTimeout: a.cfg.HTTP.ShutdownTimeout,
		startHooks:      a.startHooks,
		shutdownHooks:   a.shutdownHooks,
	})
}

func (a *App) onShutdown(hooks ...func(context.Context) error) {
	a.shutdownHooks = append(a.shutdownHooks, hooks...)
}

func (a *App) addCheck(name string, fn health.CheckFunc) {
	a.checks = a.checks.Add(name, fn)
}

// abort releases whatever New opened before failing.
func (a *App) abort(err error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, hook := range a.shutdownHooks {
		if herr := hook(ctx); herr != nil {
			a.logger.Error("cleanup failed", slog.String("error", herr.Error()))
		}
	}
	return fmt.Errorf("app: %w", err)
}

func closer(fn func() error) func(context.Context) error {
	return func(context.Context) error { return fn() }
}
