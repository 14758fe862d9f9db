package social

import "github.com/dmitrymomot/social/pkg/hook"

// ProviderConfig holds the client credentials of one provider.
type ProviderConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"`
}

// Enabled reports whether both credentials are set.
func (c ProviderConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Config is the social login configuration read from the environment.
type Config struct {
	Slug              string `env:"SOCIAL_SLUG" envDefault:"social"`
	PseudoEmailDomain string `env:"SOCIAL_PSEUDO_EMAIL_DOMAIN"`
	UserAgent         string `env:"SOCIAL_USER_AGENT"`

	Google   ProviderConfig `envPrefix:"GOOGLE_OAUTH_"`
	GitHub   ProviderConfig `envPrefix:"GITHUB_OAUTH_"`
	Facebook ProviderConfig `envPrefix:"FACEBOOK_OAUTH_"`
	LINE     ProviderConfig `envPrefix:"LINE_OAUTH_"`
}

// Providers returns the provider configs keyed by service name.
func (c Config) Providers() map[string]ProviderConfig {
	return map[string]ProviderConfig{
		Google:   c.Google,
		GitHub:   c.GitHub,
		Facebook: c.Facebook,
		LINE:     c.LINE,
	}
}

// Register exposes the configuration through the filters read by the adapters.
// Empty values leave the defaults in place.
func (c Config) Register(r *hook.Registry) {
	for service, p := range c.Providers() {
		r.Add(service+"_oauth_client_id", hook.Value(p.ClientID))
		r.Add(service+"_oauth_client_secret", hook.Value(p.ClientSecret))
		r.Add(service+"_oauth_redirect_uri", hook.Value(p.RedirectURL))
	}
	r.Add("pseudo_email_domain", hook.Value(c.PseudoEmailDomain))
	r.Add("user_agent", hook.Value(c.UserAgent))
}

// NewAdapters creates every built-in adapter.
func NewAdapters(h *Host) []Adapter {
	return []Adapter{NewGoogle(h), NewGitHub(h), NewFacebook(h), NewLINE(h)}
}
