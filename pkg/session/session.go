package session

import (
	"maps"
	"time"
)

// Session is the per-visitor state carried by the session cookie. It holds the
// one-time OAuth nonces and, after sign-in, the local user id.
//
// A Session is owned by a single request and is not safe for concurrent use.
type Session struct {
	CreatedAt    time.Time         `json:"created_at"`
	LastActiveAt time.Time         `json:"last_active_at"`
	ExpiresAt    time.Time         `json:"expires_at"`
	Values       map[string]string `json:"values,omitempty"`
	ID           string            `json:"id"`
	Token        string            `json:"token"`
	UserID       string            `json:"user_id,omitempty"`
	UserAgent    string            `json:"user_agent,omitempty"`

	dirty       bool // values or user changed since load
	isNew       bool // never persisted
	cookieDirty bool // token changed, cookie must be rewritten
	destroyed   bool // signed out, cookie must be cleared
}

// New creates an unsaved session.
func New(id, token string, expiresAt time.Time) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		Token:        token,
		Values:       make(map[string]string),
		CreatedAt:    now,
		LastActiveAt: now,
		ExpiresAt:    expiresAt,
		isNew:        true,
		cookieDirty:  true,
	}
}

// Set stores a value and marks the session dirty.
func (s *Session) Set(key, value string) {
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	s.Values[key] = value
	s.dirty = true
}

func (s *Session) Get(key string) (string, bool) {
	v, ok := s.Values[key]
	return v, ok
}

func (s *Session) Exists(key string) bool {
	_, ok := s.Values[key]
	return ok
}

// Delete removes key; the session only becomes dirty when the key existed.
func (s *Session) Delete(key string) {
	if _, ok := s.Values[key]; ok {
		delete(s.Values, key)
		s.dirty = true
	}
}

// Consume returns the value stored under key and removes it, so a second call
// for the same key reports false.
func (s *Session) Consume(key string) (string, bool) {
	v, ok := s.Values[key]
	if ok {
		delete(s.Values, key)
		s.dirty = true
	}
	return v, ok
}

// IsAuthenticated reports whether a user is signed in on this session.
func (s *Session) IsAuthenticated() bool {
	return s.UserID != ""
}

func (s *Session) IsDirty() bool { return s.dirty }
func (s *Session) MarkDirty()    { s.dirty = true }
func (s *Session) IsNew() bool   { return s.isNew }

// IsExpired reports whether ExpiresAt has passed.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Clone returns a deep copy with the tracking flags reset.
func (s *Session) Clone() *Session {
	c := &Session{
		CreatedAt:    s.CreatedAt,
		LastActiveAt: s.LastActiveAt,
		ExpiresAt:    s.ExpiresAt,
		ID:           s.ID,
		Token:        s.Token,
		UserID:       s.UserID,
		UserAgent:    s.UserAgent,
		Values:       make(map[string]string, len(s.Values)),
	}
	maps.Copy(c.Values, s.Values)
	return c
}
