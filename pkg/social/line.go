package social

import (
	"context"
	"net/url"
)

const LINE = "line"

// LINEAdapter signs in with a LINE account. LINE profiles carry no email, so these
// accounts always use a pseudo email.
type LINEAdapter struct {
	*Base
}

func NewLINE(h *Host) *LINEAdapter {
	a := &LINEAdapter{Base: newBase(h, LINE, Settings{
		AuthURL:      "https://access.line.me/oauth2/v2.1/authorize",
		TokenURL:     "https://api.line.me/oauth2/v2.1/token",
		UserInfoURL:  "https://api.line.me/v2/profile",
		Scope:        "profile",
		PostTokenURL: true,
	}, "Sign in with LINE")}
	a.self = a
	return a
}

func (a *LINEAdapter) FilterTokenParams(_ context.Context, p url.Values) url.Values {
	p.Set("grant_type", "authorization_code")
	return p
}

func (a *LINEAdapter) UserInfo(ctx context.Context, accessToken string) (Profile, bool) {
	p, ok := a.fetchProfile(ctx, nil, map[string]string{"Authorization": "Bearer " + accessToken})
	if !ok {
		return nil, false
	}

	normalized := Profile{
		"id":      p.String("userId"),
		"name":    p.String("displayName"),
		"picture": p.String("pictureUrl"),
	}
	if !p.Has("userId") {
		delete(normalized, "id")
	}
	return normalized, true
}
