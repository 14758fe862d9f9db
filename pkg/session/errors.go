package session

import "errors"

var (
	// ErrNotConfigured is returned when the request did not pass through Manager.Middleware.
	ErrNotConfigured = errors.New("session: not configured")

	ErrNotFound = errors.New("session: not found")
	ErrExpired  = errors.New("session: expired")
	ErrStore    = errors.New("session: store failure")
)
