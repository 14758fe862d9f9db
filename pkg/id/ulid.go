// Package id generates identifiers used across the service: sortable ULIDs for
// request and session ids, and opaque random tokens for cookies.
package id

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"time"
)

// Crockford's Base32 alphabet (excludes I, L, O, U).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewULID generates a 26-character ULID: 48-bit millisecond timestamp followed by
// 80 random bits. ULIDs sort lexicographically by creation time.
func NewULID() string {
	var raw [16]byte

	ms := uint64(time.Now().UnixMilli())
	for i := 5; i >= 0; i-- {
		raw[i] = byte(ms)
		ms >>= 8
	}
	if _, err := rand.Read(raw[6:]); err != nil {
		// Degraded entropy, still unique enough for request ids.
		binary.BigEndian.PutUint64(raw[8:], uint64(time.Now().UnixNano()))
	}

	return encodeBase32(raw)
}

// encodeBase32 writes 128 bits as 26 Crockford characters, two leading pad bits first.
func encodeBase32(raw [16]byte) string {
	var out [26]byte
	hi := binary.BigEndian.Uint64(raw[:8])
	lo := binary.BigEndian.Uint64(raw[8:])

	for i := 25; i >= 0; i-- {
		out[i] = crockfordBase32[lo&0x1F]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}

	return string(out[:])
}

// NewToken returns n random bytes encoded as URL-safe base64.
func NewToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
