package social

import (
	"context"

	"golang.org/x/oauth2/facebook"
)

const Facebook = "facebook"

// FacebookAdapter signs in with a Facebook account.
type FacebookAdapter struct {
	*Base
}

func NewFacebook(h *Host) *FacebookAdapter {
	a := &FacebookAdapter{Base: newBase(h, Facebook, Settings{
		AuthURL:     facebook.Endpoint.AuthURL,
		TokenURL:    facebook.Endpoint.TokenURL,
		UserInfoURL: "https://graph.facebook.com/me?fields=id,name,email,first_name,last_name,picture",
		Scope:       "email public_profile",
	}, "Sign in with Facebook")}
	a.self = a
	return a
}

// UserInfo flattens the picture object ({"data":{"url":...}}) to its URL.
func (a *FacebookAdapter) UserInfo(ctx context.Context, accessToken string) (Profile, bool) {
	p, ok := a.Base.UserInfo(ctx, accessToken)
	if !ok {
		return nil, false
	}

	if pic, ok := p["picture"].(map[string]any); ok {
		if data, ok := pic["data"].(map[string]any); ok {
			p["picture"] = Profile(data).String("url")
		} else {
			delete(p, "picture")
		}
	}
	return p, true
}
