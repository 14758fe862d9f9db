package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("json output carries extracted attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := newLogger(&buf, Config{Level: "info", Format: "json"}, FromContext(ctxKey{}, "request_id"))

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
		log.InfoContext(ctx, "social login", slog.String("service", "google"))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "social login", rec["msg"])
		assert.Equal(t, "google", rec["service"])
		assert.Equal(t, "req-1", rec["request_id"])
	})

	t.Run("empty context value is skipped", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := newLogger(&buf, Config{Format: "json"}, FromContext(ctxKey{}, "request_id"), nil)
		log.InfoContext(context.Background(), "no request")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.NotContains(t, rec, "request_id")
	})

	t.Run("level filters debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := newLogger(&buf, Config{Level: "warn", Format: "text"})
		log.Info("hidden")
		log.Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestWith(t *testing.T) {
	t.Parallel()

	require.NotNil(t, With(nil))
	l := NewNope()
	assert.Same(t, l, With(l))
}
