package social

import (
	"context"
	"log/slog"
	"maps"
	"net/url"
	"strconv"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/social/pkg/hook"
	"github.com/dmitrymomot/social/pkg/option"
)

// Settings are the provider endpoints. Each field can be overridden at runtime
// through the option "social_<service>_<key>".
type Settings struct {
	AuthURL         string
	TokenURL        string
	UserInfoURL     string
	Scope           string
	PostTokenURL    bool
	PostUserInfoURL bool
}

// Base implements the provider-independent part of Adapter. Providers embed it and
// override the Filters and CustomerHooks methods they need.
type Base struct {
	host     *Host
	self     provider
	name     string
	defaults Settings
	args     map[string]string
	contents string
}

func newBase(h *Host, name string, defaults Settings, contents string) *Base {
	return &Base{
		host:     h,
		name:     name,
		defaults: defaults,
		contents: contents,
		args: map[string]string{
			"class": "social-login social-login-" + name,
			"rel":   "nofollow",
		},
	}
}

func (b *Base) ServiceName() string { return b.name }

// LinkArgs returns the HTML attributes of the login button.
func (b *Base) LinkArgs() map[string]string {
	return hook.Apply(context.Background(), b.host.hooks, b.name+"_link_args", maps.Clone(b.args))
}

// LinkContents returns the login button label.
func (b *Base) LinkContents() string {
	return b.host.hooks.String(context.Background(), b.name+"_link_contents", b.contents)
}

func (b *Base) OAuthSettings(ctx context.Context) (string, string) {
	id := b.host.hooks.String(ctx, b.name+"_oauth_client_id", "")
	secret := b.host.hooks.String(ctx, b.name+"_oauth_client_secret", "")
	return b.self.FilterOAuthSettings(ctx, id, secret)
}

func (b *Base) redirectURI(ctx context.Context) string {
	return b.host.hooks.String(ctx, b.name+"_oauth_redirect_uri", "")
}

func (b *Base) OAuthLink(ctx context.Context, currentPath string) (string, bool) {
	clientID, clientSecret := b.OAuthSettings(ctx)
	if clientID == "" || clientSecret == "" {
		return "", false
	}

	state, err := b.State(ctx, currentPath)
	if err != nil {
		b.host.logger.WarnContext(ctx, "failed to create oauth state",
			slog.String("service", b.name),
			slog.String("error", err.Error()),
		)
		return "", false
	}

	q := url.Values{}
	q.Set("client_id", clientID)
	q.Set("redirect_uri", b.redirectURI(ctx))
	q.Set("scope", b.setting(ctx, "scope", b.defaults.Scope))
	q.Set("response_type", "code")
	q.Set("state", state)
	q = b.self.FilterLinkQuery(ctx, q)

	cfg := oauth2.Config{
		ClientID: q.Get("client_id"),
		Endpoint: oauth2.Endpoint{AuthURL: b.setting(ctx, "auth_url", b.defaults.AuthURL)},
	}
	if cfg.Endpoint.AuthURL == "" {
		return "", false
	}

	// redirect_uri and scope go through as params so the keys survive when empty.
	var extra []oauth2.AuthCodeOption
	for k := range q {
		switch k {
		case "client_id", "response_type", "state":
		default:
			extra = append(extra, oauth2.SetAuthURLParam(k, q.Get(k)))
		}
	}

	return cfg.AuthCodeURL(q.Get("state"), extra...), true
}

func (b *Base) AccessToken(ctx context.Context, code, clientID, clientSecret string) (string, bool) {
	params := url.Values{}
	params.Set("code", code)
	params.Set("redirect_uri", b.redirectURI(ctx))
	params.Set("client_id", clientID)
	params.Set("client_secret", clientSecret)
	params = b.self.FilterTokenParams(ctx, params)

	body, ok := b.fetch(ctx, b.setting(ctx, "token_url", b.defaults.TokenURL), b.postTokenURL(ctx), params, nil)
	if !ok {
		return "", false
	}

	resp, ok := decodeObject(body)
	if !ok || Profile(resp).String("error") != "" || Profile(resp).String("access_token") == "" {
		b.responseError(ctx, body)
		return "", false
	}
	return Profile(resp).String("access_token"), true
}

func (b *Base) UserInfo(ctx context.Context, accessToken string) (Profile, bool) {
	params := url.Values{}
	params.Set("access_token", accessToken)
	return b.fetchProfile(ctx, params, nil)
}

// fetchProfile requests user_info_url and parses the response as a JSON object.
func (b *Base) fetchProfile(ctx context.Context, params url.Values, header map[string]string) (Profile, bool) {
	body, ok := b.fetch(ctx, b.setting(ctx, "user_info_url", b.defaults.UserInfoURL), b.postUserInfoURL(ctx), params, header)
	if !ok {
		return nil, false
	}

	info, ok := decodeObject(body)
	if !ok {
		b.responseError(ctx, body)
		return nil, false
	}
	return Profile(info), true
}

func (b *Base) RegisterOrLoginCustomer(ctx context.Context, p Profile) bool {
	return b.link(ctx, p)
}

// Default filters: no changes.

func (b *Base) FilterOAuthSettings(_ context.Context, clientID, clientSecret string) (string, string) {
	return clientID, clientSecret
}

func (b *Base) FilterLinkQuery(_ context.Context, q url.Values) url.Values { return q }

func (b *Base) FilterTokenParams(_ context.Context, p url.Values) url.Values { return p }

func (b *Base) setting(ctx context.Context, key, def string) string {
	return option.Lookup(ctx, b.host.options, "social_"+b.name+"_"+key, def)
}

func (b *Base) flag(ctx context.Context, key string, def bool) bool {
	v, err := strconv.ParseBool(b.setting(ctx, key, strconv.FormatBool(def)))
	if err != nil {
		return def
	}
	return v
}

func (b *Base) postTokenURL(ctx context.Context) bool {
	return b.flag(ctx, "is_post_token_url", b.defaults.PostTokenURL)
}

func (b *Base) postUserInfoURL(ctx context.Context) bool {
	return b.flag(ctx, "is_post_user_info_url", b.defaults.PostUserInfoURL)
}

func (b *Base) responseError(ctx context.Context, body []byte) {
	b.host.logger.WarnContext(ctx, "social response error",
		slog.String("service", b.name),
		slog.String("contents", string(body)),
	)
}
