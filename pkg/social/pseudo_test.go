package social_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/social/pkg/hook"
	"github.com/dmitrymomot/social/pkg/social"
	"github.com/dmitrymomot/social/pkg/user"
)

func TestPseudoEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := social.NewHost(user.NewMemory(), nil, nil, social.WithSlug("my_shop_app"))

	email := h.PseudoEmail(ctx, "42")
	assert.Equal(t, "42@my-shop-app-pseudo.example.com", email)
	assert.True(t, h.IsPseudoEmail(ctx, email))
	assert.True(t, h.IsPseudoEmail(ctx, "  "+email+"\n"))
	assert.False(t, h.IsPseudoEmail(ctx, "jane@example.com"))
	assert.False(t, h.IsPseudoEmail(ctx, "42@my-shop-app-pseudo.example.com.evil.com"))

	assert.Empty(t, h.FilterPseudoEmail(ctx, email))
	assert.Equal(t, "jane@example.com", h.FilterPseudoEmail(ctx, "jane@example.com"))
}

func TestPseudoEmail_DomainFilter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	hooks := hook.New()
	hooks.Add("pseudo_email_domain", hook.Value("users.invalid"))
	h := social.NewHost(user.NewMemory(), nil, nil, social.WithHooks(hooks))

	assert.Equal(t, "7@users.invalid", h.PseudoEmail(ctx, "7"))
	assert.False(t, h.IsPseudoEmail(ctx, "7@social-pseudo.example.com"))
}
