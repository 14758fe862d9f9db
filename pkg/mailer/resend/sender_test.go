package resend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New(Config{SenderEmail: "noreply@example.com"})
	require.ErrorIs(t, err, ErrNotConfigured)

	_, err = New(Config{APIKey: "re_123"})
	require.ErrorIs(t, err, ErrNotConfigured)

	s, err := New(Config{APIKey: "re_123", SenderEmail: "noreply@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "noreply@example.com", s.from())

	s, err = New(Config{APIKey: "re_123", SenderEmail: "noreply@example.com", SenderName: "Social"})
	require.NoError(t, err)
	assert.Equal(t, "Social <noreply@example.com>", s.from())
}
