package social

import (
	"context"
	"encoding/json"
	"log/slog"

	"golang.org/x/oauth2/github"
)

const (
	GitHub = "github"

	githubUserURL   = "https://api.github.com/user"
	githubEmailsURL = "https://api.github.com/user/emails"
)

// GitHubAdapter signs in with a GitHub account. The access token is sent in the
// Authorization header, and the primary verified address is read from the emails
// endpoint when the public profile has none.
type GitHubAdapter struct {
	*Base
}

func NewGitHub(h *Host) *GitHubAdapter {
	a := &GitHubAdapter{Base: newBase(h, GitHub, Settings{
		AuthURL:      github.Endpoint.AuthURL,
		TokenURL:     github.Endpoint.TokenURL,
		UserInfoURL:  githubUserURL,
		Scope:        "read:user user:email",
		PostTokenURL: true,
	}, "Sign in with GitHub")}
	a.self = a
	return a
}

func (a *GitHubAdapter) UserInfo(ctx context.Context, accessToken string) (Profile, bool) {
	header := map[string]string{
		"Authorization": "token " + accessToken,
		"Accept":        "application/vnd.github+json",
	}

	p, ok := a.fetchProfile(ctx, nil, header)
	if !ok {
		return nil, false
	}

	if p.Has("avatar_url") && !p.Has("picture") {
		p["picture"] = p.String("avatar_url")
	}
	if p.Email() == "" {
		if email := a.primaryEmail(ctx, header); email != "" {
			p["email"] = email
		} else {
			delete(p, "email")
		}
	}
	return p, true
}

func (a *GitHubAdapter) primaryEmail(ctx context.Context, header map[string]string) string {
	endpoint := a.setting(ctx, "emails_url", githubEmailsURL)
	body, ok := a.fetch(ctx, endpoint, false, nil, header)
	if !ok {
		return ""
	}

	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := json.Unmarshal(body, &emails); err != nil {
		a.host.logger.WarnContext(ctx, "social response error",
			slog.String("service", a.name),
			slog.String("contents", string(body)),
		)
		return ""
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email
		}
	}
	return ""
}
