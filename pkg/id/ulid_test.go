package id_test

import (
	"encoding/base64"
	"regexp"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/social/pkg/id"
)

func TestNewULID(t *testing.T) {
	t.Parallel()

	t.Run("length and alphabet", func(t *testing.T) {
		t.Parallel()

		ulid := id.NewULID()
		assert.Len(t, ulid, 26)
		require.Regexp(t, regexp.MustCompile(`^[0-9A-HJ-NP-TV-Z]+$`), ulid)
	})

	t.Run("unique", func(t *testing.T) {
		t.Parallel()

		seen := make(map[string]struct{}, 1000)
		for range 1000 {
			v := id.NewULID()
			_, dup := seen[v]
			require.False(t, dup, "duplicate ULID %s", v)
			seen[v] = struct{}{}
		}
	})

	t.Run("sortable by time", func(t *testing.T) {
		t.Parallel()

		ids := make([]string, 0, 5)
		for range 5 {
			ids = append(ids, id.NewULID())
			time.Sleep(2 * time.Millisecond)
		}
		assert.True(t, sort.StringsAreSorted(ids))
	})

	t.Run("leading char bounded by 48-bit timestamp", func(t *testing.T) {
		t.Parallel()

		// 48 bits in 50 encoded bits leaves the first character below '8'.
		assert.LessOrEqual(t, id.NewULID()[0], byte('7'))
	})
}

func TestNewToken(t *testing.T) {
	t.Parallel()

	tok, err := id.NewToken(32)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(tok)
	require.NoError(t, err)
	assert.Len(t, raw, 32)

	other, err := id.NewToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}
