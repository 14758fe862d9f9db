package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/social/internal/config"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestLoad(t *testing.T) {
	t.Setenv("SESSION_COOKIE_SECRET", secret)
	t.Setenv("GITHUB_OAUTH_CLIENT_ID", "gh-id")
	t.Setenv("GITHUB_OAUTH_CLIENT_SECRET", "gh-secret")
	t.Setenv("HTTP_CORS_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("SOCIAL_SLUG", "my_app")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, 30*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "/me", cfg.HTTP.DefaultReturn)
	assert.Equal(t, 720*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.Session.Secure)
	assert.Equal(t, "my_app", cfg.Social.Slug)
	assert.True(t, cfg.Social.GitHub.Enabled())
	assert.False(t, cfg.Social.Google.Enabled())
	assert.False(t, cfg.Database.Enabled())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("GOOGLE_OAUTH_CLIENT_ID", "id")
		t.Setenv("GOOGLE_OAUTH_CLIENT_SECRET", "secret")
		_, err := config.Load()
		require.ErrorIs(t, err, config.ErrInvalid)
	})

	t.Run("short secret", func(t *testing.T) {
		t.Setenv("SESSION_COOKIE_SECRET", "short")
		t.Setenv("GOOGLE_OAUTH_CLIENT_ID", "id")
		t.Setenv("GOOGLE_OAUTH_CLIENT_SECRET", "secret")
		_, err := config.Load()
		require.ErrorIs(t, err, config.ErrInvalid)
	})

	t.Run("unsafe default return", func(t *testing.T) {
		for _, path := range []string{"/", "//evil.example.com", "/a/b"} {
			t.Setenv("SESSION_COOKIE_SECRET", secret)
			t.Setenv("GOOGLE_OAUTH_CLIENT_ID", "id")
			t.Setenv("GOOGLE_OAUTH_CLIENT_SECRET", "secret")
			t.Setenv("HTTP_DEFAULT_RETURN", path)
			_, err := config.Load()
			require.ErrorIs(t, err, config.ErrInvalid, path)
		}
	})

	t.Run("no provider", func(t *testing.T) {
		t.Setenv("SESSION_COOKIE_SECRET", secret)
		_, err := config.Load()
		require.ErrorIs(t, err, config.ErrInvalid)
	})
}
