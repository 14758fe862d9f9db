package social

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"

	"github.com/dmitrymomot/social/pkg/option"
)

func (b *Base) sessionKey() string { return b.name + "_auth_session" }

// State creates a login attempt: it stores a nonce for a fresh uuid in the visitor
// session and returns the encoded state pointing back to currentPath.
func (b *Base) State(ctx context.Context, currentPath string) (string, error) {
	sess, ok := b.host.session(ctx)
	if !ok {
		return "", ErrNoSession
	}

	id := uuid.NewString()
	nonce, err := b.nonce(ctx, id)
	if err != nil {
		return "", err
	}
	sess.Set(b.sessionKey(), nonce)

	return EncodeState(State{Service: b.name, UUID: id, Redirect: currentPath}), nil
}

// CheckStateParams verifies s against the nonce stored by State. The stored nonce is
// removed whether or not it matches, so a state is accepted at most once.
func (b *Base) CheckStateParams(ctx context.Context, s State) bool {
	if s.UUID == "" || s.Redirect == "" || !IsSafeRedirect(s.Redirect) {
		return false
	}

	sess, ok := b.host.session(ctx)
	if !ok || !sess.Exists(b.sessionKey()) {
		return false
	}
	stored, _ := sess.Consume(b.sessionKey())

	expected, err := b.nonce(ctx, s.UUID)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(stored), []byte(expected))
}

// nonce is HMAC-SHA256 of the uuid keyed with the per-service secret.
func (b *Base) nonce(ctx context.Context, id string) (string, error) {
	secret, err := option.GetOrCreate(ctx, b.host.options, "hash_source_"+b.name, uuid.NewString)
	if err != nil {
		return "", errors.Join(ErrSecret, err)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil)), nil
}
