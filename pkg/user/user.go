// Package user persists local accounts, their customer profiles and the links that
// map a social provider id to an account.
package user

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound   = errors.New("user: not found")
	ErrEmailTaken = errors.New("user: email already registered")
	ErrInvalid    = errors.New("user: invalid input")
	ErrStore      = errors.New("user: store failure")
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Customer is the profile attached to a User.
type Customer struct {
	UserID    string    `json:"user_id"`
	LastName  string    `json:"last_name"`
	FirstName string    `json:"first_name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Link maps (Key, ProviderID) to a user. Key is "social_login_<service>".
type Link struct {
	Key        string
	ProviderID string
	UserID     string
}

// Store is the account storage used by the social login flow.
type Store interface {
	UserByEmail(ctx context.Context, email string) (User, error)
	UserByID(ctx context.Context, id string) (User, error)
	// CreateUser returns ErrEmailTaken when the address is already registered.
	CreateUser(ctx context.Context, email string) (User, error)

	CustomerByUserID(ctx context.Context, userID string) (Customer, error)
	CreateCustomer(ctx context.Context, c Customer) error
	UpdateCustomer(ctx context.Context, c Customer) error

	// FindLinked resolves the user most recently linked to (key, providerID).
	FindLinked(ctx context.Context, key, providerID string) (User, error)
	// ReplaceLink drops every link for (key, providerID) and links it to userID.
	ReplaceLink(ctx context.Context, key, providerID, userID string) error
	// DeleteOrphanLinks removes links whose user no longer exists.
	DeleteOrphanLinks(ctx context.Context) (int64, error)
}

// NormalizeEmail lower-cases and trims an address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
