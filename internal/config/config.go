// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/social/pkg/cookie"
	"github.com/dmitrymomot/social/pkg/db"
	"github.com/dmitrymomot/social/pkg/logger"
	"github.com/dmitrymomot/social/pkg/mailer"
	"github.com/dmitrymomot/social/pkg/mailer/resend"
	"github.com/dmitrymomot/social/pkg/redis"
	"github.com/dmitrymomot/social/pkg/social"
)

var ErrInvalid = errors.New("config: invalid")

// HTTP holds the server settings.
type HTTP struct {
	Address         string        `env:"HTTP_ADDRESS" envDefault:":8080"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	CORSOrigins     []string      `env:"HTTP_CORS_ORIGINS" envSeparator:","`
	// DefaultReturn is where a login lands when the request carries no usable
	// redirect parameter. It must pass social.IsSafeRedirect.
	DefaultReturn string `env:"HTTP_DEFAULT_RETURN" envDefault:"/me"`
}

// Session holds the visitor session settings.
type Session struct {
	CookieSecret string        `env:"SESSION_COOKIE_SECRET,required"`
	CookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"__sid"`
	CookieDomain string        `env:"SESSION_COOKIE_DOMAIN"`
	Secure       bool          `env:"SESSION_COOKIE_SECURE" envDefault:"true"`
	TTL          time.Duration `env:"SESSION_TTL" envDefault:"720h"`
}

// Jobs holds the background worker settings.
type Jobs struct {
	MaxWorkers int `env:"JOBS_MAX_WORKERS" envDefault:"10"`
}

type Config struct {
	HTTP     HTTP
	Session  Session
	Jobs     Jobs
	Log      logger.Config
	Database db.Config
	Redis    redis.Config
	Social   social.Config
	Mailer   mailer.Config
	Resend   resend.Config
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Join(ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := cookie.ValidateSecret(c.Session.CookieSecret); err != nil {
		return errors.Join(ErrInvalid, fmt.Errorf("SESSION_COOKIE_SECRET: %w", err))
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("%w: SESSION_TTL must be positive", ErrInvalid)
	}
	if !social.IsSafeRedirect(c.HTTP.DefaultReturn) {
		return fmt.Errorf("%w: HTTP_DEFAULT_RETURN must be a single-segment local path", ErrInvalid)
	}
	if !c.anyProvider() {
		return fmt.Errorf("%w: no social provider configured", ErrInvalid)
	}
	return nil
}

func (c Config) anyProvider() bool {
	for _, p := range c.Social.Providers() {
		if p.Enabled() {
			return true
		}
	}
	return false
}
