package social

import (
	"context"
	"net/url"

	"golang.org/x/oauth2/google"
)

const Google = "google"

// GoogleAdapter signs in with a Google account.
type GoogleAdapter struct {
	*Base
}

func NewGoogle(h *Host) *GoogleAdapter {
	a := &GoogleAdapter{Base: newBase(h, Google, Settings{
		AuthURL:      google.Endpoint.AuthURL,
		TokenURL:     google.Endpoint.TokenURL,
		UserInfoURL:  "https://www.googleapis.com/oauth2/v2/userinfo",
		Scope:        "openid email profile",
		PostTokenURL: true,
	}, "Sign in with Google")}
	a.self = a
	return a
}

func (a *GoogleAdapter) FilterTokenParams(_ context.Context, p url.Values) url.Values {
	p.Set("grant_type", "authorization_code")
	return p
}
