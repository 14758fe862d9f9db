package social

import (
	"context"
	"net/url"

	"github.com/dmitrymomot/social/pkg/user"
)

// Adapter is the capability set of one social login provider.
type Adapter interface {
	ServiceName() string
	// OAuthSettings returns the client credentials; either may be empty when the
	// provider is not configured.
	OAuthSettings(ctx context.Context) (clientID, clientSecret string)
	// OAuthLink returns the authorization URL. currentPath is where the visitor is
	// sent back after the callback.
	OAuthLink(ctx context.Context, currentPath string) (string, bool)
	LinkArgs() map[string]string
	LinkContents() string
	CheckStateParams(ctx context.Context, s State) bool
	AccessToken(ctx context.Context, code, clientID, clientSecret string) (string, bool)
	UserInfo(ctx context.Context, accessToken string) (Profile, bool)
	RegisterOrLoginCustomer(ctx context.Context, p Profile) bool
}

// UserData is the normalized profile handed to RegisterCustomer.
type UserData struct {
	LastName  string
	FirstName string
	Email     string
	AvatarURL string
}

// CustomerHooks are the account side effects a provider may customize.
type CustomerHooks interface {
	FindExistingCustomer(ctx context.Context, userID string) (user.Customer, bool)
	// RegisterCustomer creates the account for data, or only the customer record when
	// existing is not nil.
	RegisterCustomer(ctx context.Context, data UserData, existing *user.User, verified bool) bool
	LoggedInCustomer(ctx context.Context, p Profile, u user.User) bool
}

// Filters adjust the generic provider requests.
type Filters interface {
	FilterOAuthSettings(ctx context.Context, clientID, clientSecret string) (string, string)
	FilterLinkQuery(ctx context.Context, q url.Values) url.Values
	FilterTokenParams(ctx context.Context, p url.Values) url.Values
}

type provider interface {
	CustomerHooks
	Filters
}
