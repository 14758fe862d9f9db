// Package cookie writes and verifies the session cookie.
//
// Signed cookies carry base64(value).base64(HMAC-SHA256(value)) so a tampered or
// forged session token is rejected before the session store is consulted. The secret
// must be at least 32 bytes; signing operations return [ErrNoSecret] without one.
//
//	m := cookie.New(cookie.WithSecret(cfg.CookieSecret), cookie.WithSecure(true))
//	if err := m.SetSigned(w, "__sid", token, maxAge); err != nil {
//		return err
//	}
//	token, err := m.GetSigned(r, "__sid")
package cookie
