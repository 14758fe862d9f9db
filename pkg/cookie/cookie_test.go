package cookie_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrymomot/social/pkg/cookie"
)

const testSecret = "this-is-a-32-byte-or-longer-key!"

// roundTrip copies the cookies written to w into a fresh request.
func roundTrip(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestPlainCookies(t *testing.T) {
	m := cookie.New(cookie.WithDomain("example.com"), cookie.WithSecure(true))

	t.Run("missing", func(t *testing.T) {
		_, err := m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "missing")
		if !errors.Is(err, cookie.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("set and get", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.Set(w, "name", "value", 3600)

		cookies := w.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("expected 1 cookie, got %d", len(cookies))
		}
		c := cookies[0]
		if c.MaxAge != 3600 || !c.Secure || !c.HttpOnly || c.Domain != "example.com" {
			t.Errorf("unexpected attributes: %+v", c)
		}

		val, err := m.Get(roundTrip(w), "name")
		if err != nil || val != "value" {
			t.Fatalf("Get() = %q, %v", val, err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.Delete(w, "name")

		c := w.Result().Cookies()[0]
		if c.MaxAge >= 0 {
			t.Errorf("MaxAge = %d, want negative", c.MaxAge)
		}
	})
}

func TestSignedCookies(t *testing.T) {
	m := cookie.New(cookie.WithSecret(testSecret))

	t.Run("round trip", func(t *testing.T) {
		w := httptest.NewRecorder()
		if err := m.SetSigned(w, "__sid", "token-123", 60); err != nil {
			t.Fatal(err)
		}

		val, err := m.GetSigned(roundTrip(w), "__sid")
		if err != nil || val != "token-123" {
			t.Fatalf("GetSigned() = %q, %v", val, err)
		}
	})

	t.Run("tampered value", func(t *testing.T) {
		w := httptest.NewRecorder()
		if err := m.SetSigned(w, "__sid", "token-123", 60); err != nil {
			t.Fatal(err)
		}
		c := w.Result().Cookies()[0]
		_, sig, _ := strings.Cut(c.Value, ".")
		c.Value = "dG9rZW4tNDU2." + sig

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)
		if _, err := m.GetSigned(r, "__sid"); !errors.Is(err, cookie.ErrBadSig) {
			t.Fatalf("expected ErrBadSig, got %v", err)
		}
	})

	t.Run("unsigned value", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "__sid", Value: "plain"})
		if _, err := m.GetSigned(r, "__sid"); !errors.Is(err, cookie.ErrBadSig) {
			t.Fatalf("expected ErrBadSig, got %v", err)
		}
	})

	t.Run("other secret", func(t *testing.T) {
		w := httptest.NewRecorder()
		if err := m.SetSigned(w, "__sid", "token-123", 60); err != nil {
			t.Fatal(err)
		}
		other := cookie.New(cookie.WithSecret(strings.Repeat("x", 32)))
		if _, err := other.GetSigned(roundTrip(w), "__sid"); !errors.Is(err, cookie.ErrBadSig) {
			t.Fatalf("expected ErrBadSig, got %v", err)
		}
	})
}

func TestNoSecret(t *testing.T) {
	m := cookie.New(cookie.WithSecret("short"))

	if err := m.SetSigned(httptest.NewRecorder(), "__sid", "v", 0); !errors.Is(err, cookie.ErrNoSecret) {
		t.Errorf("SetSigned: expected ErrNoSecret, got %v", err)
	}
	if _, err := m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "__sid"); !errors.Is(err, cookie.ErrNoSecret) {
		t.Errorf("GetSigned: expected ErrNoSecret, got %v", err)
	}
	if err := cookie.ValidateSecret("short"); !errors.Is(err, cookie.ErrBadSecret) {
		t.Errorf("ValidateSecret: expected ErrBadSecret, got %v", err)
	}
	if err := cookie.ValidateSecret(testSecret); err != nil {
		t.Errorf("ValidateSecret: unexpected %v", err)
	}
}
