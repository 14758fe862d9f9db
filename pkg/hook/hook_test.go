package hook_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/social/pkg/hook"
)

func TestRegistry_Apply(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("no filters returns value", func(t *testing.T) {
		t.Parallel()
		r := hook.New()
		assert.Equal(t, "x", r.Apply(ctx, "missing", "x"))
		assert.False(t, r.Has("missing"))
	})

	t.Run("nil registry", func(t *testing.T) {
		t.Parallel()
		var r *hook.Registry
		assert.Equal(t, "x", r.Apply(ctx, "any", "x"))
	})

	t.Run("chain runs in order", func(t *testing.T) {
		t.Parallel()
		r := hook.New()
		r.Add("name", func(_ context.Context, v any) any { return v.(string) + "a" })
		r.Add("name", func(_ context.Context, v any) any { return v.(string) + "b" })
		r.Add("name", nil)

		require.True(t, r.Has("name"))
		assert.Equal(t, "-ab", r.String(ctx, "name", "-"))
	})

	t.Run("wrong type falls back", func(t *testing.T) {
		t.Parallel()
		r := hook.New()
		r.Add("n", func(context.Context, any) any { return 42 })
		assert.Equal(t, "def", r.String(ctx, "n", "def"))
	})
}

func TestValue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := hook.New()
	r.Add("user_agent", hook.Value(""))
	assert.Equal(t, "default", r.String(ctx, "user_agent", "default"))

	r.Add("user_agent", hook.Value("custom"))
	assert.Equal(t, "custom", r.String(ctx, "user_agent", "default"))
}

func TestApplyTyped(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := hook.New()
	r.Add("query", func(_ context.Context, v any) any {
		q := v.(map[string]string)
		q["prompt"] = "consent"
		return q
	})

	q := hook.Apply(ctx, r, "query", map[string]string{"scope": "email"})
	assert.Equal(t, "consent", q["prompt"])
	assert.Equal(t, "email", q["scope"])

	r.Add("upper", func(_ context.Context, v any) any { return strings.ToUpper(v.(string)) })
	assert.Equal(t, "ABC", hook.Apply(ctx, r, "upper", "abc"))
}
