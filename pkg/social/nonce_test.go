package social_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/social/pkg/social"
)

func TestCheckStateParams(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("accepted once", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)

		state, ok := social.DecodeState(e.startLogin(t, "/home"))
		require.True(t, ok)
		assert.Equal(t, social.Google, state.Service)
		assert.Equal(t, "/home", state.Redirect)
		assert.True(t, e.session.Exists("google_auth_session"))

		assert.True(t, e.adapter.CheckStateParams(ctx, state))
		assert.False(t, e.adapter.CheckStateParams(ctx, state), "replayed state")
		assert.False(t, e.session.Exists("google_auth_session"))
	})

	t.Run("forged uuid consumes the nonce", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)

		state, _ := social.DecodeState(e.startLogin(t, "/home"))
		forged := state
		forged.UUID = "00000000-0000-0000-0000-000000000000"

		assert.False(t, e.adapter.CheckStateParams(ctx, forged))
		assert.False(t, e.adapter.CheckStateParams(ctx, state), "nonce is gone after a failed check")
	})

	t.Run("unsafe redirect", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)

		state, _ := social.DecodeState(e.startLogin(t, "/secure/path"))
		assert.False(t, e.adapter.CheckStateParams(ctx, state))
		assert.True(t, e.session.Exists("google_auth_session"), "rejected before the session is touched")
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		e.startLogin(t, "/home")

		assert.False(t, e.adapter.CheckStateParams(ctx, social.State{Service: social.Google, Redirect: "/home"}))
		assert.False(t, e.adapter.CheckStateParams(ctx, social.State{Service: social.Google, UUID: "x"}))
	})

	t.Run("no session record", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		assert.False(t, e.adapter.CheckStateParams(ctx, social.State{Service: social.Google, UUID: "x", Redirect: "/home"}))
	})

	t.Run("nonce bound to the secret", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)

		state, _ := social.DecodeState(e.startLogin(t, "/home"))
		require.NoError(t, e.options.Set(ctx, "hash_source_google", "rotated"))
		assert.False(t, e.adapter.CheckStateParams(ctx, state))
	})
}

func TestNonceSecret_CreatedLazily(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e := newEnv(t)

	_, err := e.options.Get(ctx, "hash_source_google")
	require.Error(t, err)

	e.startLogin(t, "/home")
	first, err := e.options.Get(ctx, "hash_source_google")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	e.startLogin(t, "/home")
	second, err := e.options.Get(ctx, "hash_source_google")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOAuthLink_NoSession(t *testing.T) {
	t.Parallel()

	e := newEnv(t, withoutSession())
	_, ok := e.adapter.OAuthLink(context.Background(), "/home")
	assert.False(t, ok)
	assert.Contains(t, e.logs.String(), "failed to create oauth state")
}
