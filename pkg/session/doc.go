// Package session provides cookie-bound visitor sessions backed by pkg/cache.
//
// The Manager middleware loads the session named by a signed cookie or starts a
// fresh one. Fresh sessions are only persisted once something is written to them,
// so anonymous traffic does not fill the store. Changes are saved right before the
// response headers go out.
//
//	cookies := cookie.New(cookie.WithSecret(secret))
//	store := session.NewCacheStore(cache.NewMemory[*session.Session]())
//	sessions := session.NewManager(store, cookies)
//	r.Use(sessions.Middleware)
//
// SignIn rotates the session token and SignOut removes the session entirely.
package session
