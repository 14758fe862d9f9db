package social

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/social/pkg/sanitizer"
	"github.com/dmitrymomot/social/pkg/user"
)

// SessionServiceKey holds the service of the last social login in the visitor session.
const SessionServiceKey = "social_login_service"

type socialLoginKey struct{}

// IsSocialLogin returns the service when ctx belongs to a social login in progress.
// Customer hooks use it to tell social registrations from other sign-ups.
func IsSocialLogin(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(socialLoginKey{}).(string)
	return s, ok
}

// LinkKey is the link key for a service, e.g. "social_login_google".
func LinkKey(service string) string {
	return "social_login_" + service
}

// userData normalizes the name fields of p. When neither "last_name" nor
// "family_name" is present, "name" is split on spaces: the first token becomes the
// last name and the second the first name.
func userData(p Profile) UserData {
	last, first := p.String("last_name"), p.String("first_name")
	if !p.Has("last_name") {
		last = p.String("family_name")
	}
	if !p.Has("first_name") {
		first = p.String("given_name")
	}

	if !p.Has("last_name") && !p.Has("family_name") {
		if parts := strings.Fields(p.String("name")); len(parts) > 0 {
			last = parts[0]
			if len(parts) > 1 {
				first = parts[1]
			}
		}
	}

	return UserData{
		LastName:  sanitizer.Name(last),
		FirstName: sanitizer.Name(first),
		Email:     p.Email(),
		AvatarURL: sanitizer.URL(p.String("picture")),
	}
}

// link maps p to a local account and signs it in.
func (b *Base) link(ctx context.Context, p Profile) bool {
	h := b.host
	ctx = context.WithValue(ctx, socialLoginKey{}, b.name)

	data := userData(p)
	verified := true
	if data.Email == "" {
		data.Email = h.PseudoEmail(ctx, p.ID())
		verified = false
	}

	key := LinkKey(b.name)
	u, found := b.lookup(ctx, data.Email, key, p.ID())

	var registered bool
	if found {
		if _, ok := b.self.FindExistingCustomer(ctx, u.ID); !ok {
			if !b.self.RegisterCustomer(ctx, data, &u, verified) {
				return false
			}
			registered = true
		}
	} else {
		if !b.self.RegisterCustomer(ctx, data, nil, verified) {
			return false
		}
		registered = true
	}

	if registered {
		var err error
		u, err = h.users.UserByEmail(ctx, data.Email)
		if err != nil {
			h.logger.ErrorContext(ctx, "register customer error",
				slog.String("service", b.name),
				slog.String("provider_id", p.ID()),
				slog.String("email", data.Email),
			)
			return false
		}
	} else if !b.self.LoggedInCustomer(ctx, p, u) {
		return false
	}

	if err := h.users.ReplaceLink(ctx, key, p.ID(), u.ID); err != nil {
		h.logger.ErrorContext(ctx, "failed to link social account",
			slog.String("service", b.name),
			slog.String("error", err.Error()),
		)
		return false
	}

	if sess, ok := h.session(ctx); ok {
		sess.Set(SessionServiceKey, b.name)
	}
	if err := h.auth.SignIn(ctx, u.ID); err != nil {
		h.logger.ErrorContext(ctx, "failed to sign in",
			slog.String("service", b.name),
			slog.String("user_id", u.ID),
			slog.String("error", err.Error()),
		)
		return false
	}

	return true
}

// lookup resolves the local user by email, then by a previous link.
func (b *Base) lookup(ctx context.Context, email, key, providerID string) (user.User, bool) {
	u, err := b.host.users.UserByEmail(ctx, email)
	if err == nil {
		return u, true
	}
	if !errors.Is(err, user.ErrNotFound) {
		b.storeError(ctx, "user lookup failed", err)
	}

	u, err = b.host.users.FindLinked(ctx, key, providerID)
	if err == nil {
		return u, true
	}
	if !errors.Is(err, user.ErrNotFound) {
		b.storeError(ctx, "link lookup failed", err)
	}
	return user.User{}, false
}

// Default customer hooks.

func (b *Base) FindExistingCustomer(ctx context.Context, userID string) (user.Customer, bool) {
	c, err := b.host.users.CustomerByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			b.storeError(ctx, "customer lookup failed", err)
		}
		return user.Customer{}, false
	}
	return c, true
}

func (b *Base) RegisterCustomer(ctx context.Context, data UserData, existing *user.User, verified bool) bool {
	h := b.host

	var u user.User
	if existing != nil {
		u = *existing
	} else {
		var err error
		u, err = h.users.CreateUser(ctx, data.Email)
		if errors.Is(err, user.ErrEmailTaken) {
			u, err = h.users.UserByEmail(ctx, data.Email)
		}
		if err != nil {
			b.storeError(ctx, "failed to create user", err)
			return false
		}
	}

	c := user.Customer{
		UserID:    u.ID,
		LastName:  data.LastName,
		FirstName: data.FirstName,
		AvatarURL: data.AvatarURL,
		Verified:  verified,
	}
	if err := h.users.CreateCustomer(ctx, c); err != nil {
		b.storeError(ctx, "failed to create customer", err)
		return false
	}

	if h.notifier != nil {
		if err := h.notifier.CustomerRegistered(ctx, u, c); err != nil {
			h.logger.WarnContext(ctx, "registration notification failed",
				slog.String("user_id", u.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return true
}

// LoggedInCustomer fills empty names and refreshes the avatar from the profile.
func (b *Base) LoggedInCustomer(ctx context.Context, p Profile, u user.User) bool {
	c, ok := b.self.FindExistingCustomer(ctx, u.ID)
	if !ok {
		return false
	}

	data := userData(p)
	changed := false
	if c.LastName == "" && data.LastName != "" {
		c.LastName, changed = data.LastName, true
	}
	if c.FirstName == "" && data.FirstName != "" {
		c.FirstName, changed = data.FirstName, true
	}
	if data.AvatarURL != "" && data.AvatarURL != c.AvatarURL {
		c.AvatarURL, changed = data.AvatarURL, true
	}

	if changed {
		if err := b.host.users.UpdateCustomer(ctx, c); err != nil {
			b.storeError(ctx, "failed to update customer", err)
		}
	}
	return true
}

func (b *Base) storeError(ctx context.Context, msg string, err error) {
	b.host.logger.ErrorContext(ctx, msg,
		slog.String("service", b.name),
		slog.String("error", err.Error()),
	)
}
