package social_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/social/pkg/hook"
	"github.com/dmitrymomot/social/pkg/social"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.registry.Register(social.NewGitHub(e.host))
	e.registry.Register(social.NewGoogle(e.host))

	names := make([]string, 0, 2)
	for _, a := range e.registry.Adapters() {
		names = append(names, a.ServiceName())
	}
	assert.Equal(t, []string{social.Google, social.GitHub}, names)

	_, ok := e.registry.Get("")
	assert.False(t, ok)
	_, ok = e.registry.Get("myspace")
	assert.False(t, ok)
}

func TestRegistry_Settings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e := newEnv(t)
	e.registry.Register(social.NewGitHub(e.host)) // no credentials

	settings := e.registry.Settings(ctx, "/login")
	require.Len(t, settings, 1)

	g, ok := settings[social.Google]
	require.True(t, ok)
	assert.Contains(t, g.URL, "https://provider.example.com/authorize?")
	assert.Equal(t, "Sign in with Google", g.Contents)
	assert.Equal(t, "nofollow", g.Args["rel"])
	assert.True(t, e.session.Exists("google_auth_session"))
	assert.False(t, e.session.Exists("github_auth_session"))
}

func TestConfig_Register(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	hooks := hook.New()
	social.Config{
		Slug:      "social",
		UserAgent: "custom-agent",
		GitHub:    social.ProviderConfig{ClientID: "gh-id", ClientSecret: "gh-secret"},
	}.Register(hooks)

	assert.Equal(t, "gh-id", hooks.String(ctx, "github_oauth_client_id", ""))
	assert.Equal(t, "gh-secret", hooks.String(ctx, "github_oauth_client_secret", ""))
	assert.Empty(t, hooks.String(ctx, "google_oauth_client_id", ""))
	assert.Equal(t, "custom-agent", hooks.String(ctx, "user_agent", "default"))
	assert.Equal(t, "default.example.com", hooks.String(ctx, "pseudo_email_domain", "default.example.com"))

	assert.True(t, social.ProviderConfig{ClientID: "a", ClientSecret: "b"}.Enabled())
	assert.False(t, social.ProviderConfig{ClientID: "a"}.Enabled())
}
