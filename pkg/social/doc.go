// Package social implements social login over OAuth2.
//
// An Adapter per provider builds the authorization link, exchanges the callback
// code for an access token and fetches the user profile. The link carries an opaque
// state (service, uuid, redirect path) whose uuid is bound to the visitor session
// with an HMAC nonce that can be used only once. The Dispatcher middleware watches
// every request for a callback, drives the adapter and finally hands the profile to
// the account linker, which finds or creates the local user, records the provider
// link and signs the user in.
//
// Wiring:
//
//	hooks := hook.New()
//	cfg.Register(hooks)
//
//	host := social.NewHost(users, sessionsFn, sessionManager,
//		social.WithHooks(hooks),
//		social.WithOptions(options),
//		social.WithLogger(log),
//	)
//	registry := social.NewRegistry(social.NewAdapters(host)...)
//	r.Use(sessionManager.Middleware, social.NewDispatcher(registry).Middleware)
//
// Provider endpoints and scopes can be changed at runtime with the options
// "social_<service>_auth_url", "social_<service>_token_url",
// "social_<service>_user_info_url", "social_<service>_scope",
// "social_<service>_is_post_token_url" and "social_<service>_is_post_user_info_url".
//
// Failures never surface as errors: the visitor is redirected back to where the
// login started and the cause is logged.
package social
