package internal

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/social/pkg/session"
	"github.com/dmitrymomot/social/pkg/social"
	"github.com/dmitrymomot/social/pkg/user"
)

// defaultReturnPath is used when no valid return path is configured.
const defaultReturnPath = "/me"

type handlers struct {
	defaultReturn string
	registry      *social.Registry
	host          *social.Host
	sessions      *session.Manager
	users         user.Store
	logger        *slog.Logger
}

// returnPath is where the visitor lands after the provider callback. The result
// always passes social.IsSafeRedirect, otherwise the callback state is rejected.
func (h *handlers) returnPath(r *http.Request) string {
	if p := r.URL.Query().Get("redirect"); social.IsSafeRedirect(p) {
		return p
	}
	if social.IsSafeRedirect(h.defaultReturn) {
		return h.defaultReturn
	}
	return defaultReturnPath
}

// providers lists the login link of every configured provider.
func (h *handlers) providers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.Settings(r.Context(), h.returnPath(r)))
}

// provider redirects to the authorization page of one provider.
func (h *handlers) provider(w http.ResponseWriter, r *http.Request) {
	a, ok := h.registry.Get(chi.URLParam(r, "service"))
	if !ok {
		writeError(w, r, http.StatusNotFound, "unknown provider")
		return
	}
	link, ok := a.OAuthLink(r.Context(), h.returnPath(r))
	if !ok {
		writeError(w, r, http.StatusNotFound, "provider not configured")
		return
	}
	http.Redirect(w, r, link, http.StatusFound)
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(r.Context()); err != nil {
		internalError(h.logger, w, r, "sign out failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type meResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Verified  bool      `json:"verified"`
	Service   string    `json:"service,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// me returns the signed-in user. Pseudo emails are reported as empty.
func (h *handlers) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, ok := session.FromContext(ctx)
	if !ok || !sess.IsAuthenticated() {
		writeError(w, r, http.StatusUnauthorized, "not signed in")
		return
	}

	u, err := h.users.UserByID(ctx, sess.UserID)
	if errors.Is(err, user.ErrNotFound) {
		writeError(w, r, http.StatusUnauthorized, "not signed in")
		return
	}
	if err != nil {
		internalError(h.logger, w, r, "load user failed", err)
		return
	}

	resp := meResponse{
		ID:        u.ID,
		Email:     h.host.FilterPseudoEmail(ctx, u.Email),
		CreatedAt: u.CreatedAt,
	}
	resp.Service, _ = sess.Get(social.SessionServiceKey)

	c, err := h.users.CustomerByUserID(ctx, u.ID)
	switch {
	case err == nil:
		resp.FirstName, resp.LastName = c.FirstName, c.LastName
		resp.AvatarURL, resp.Verified = c.AvatarURL, c.Verified
	case !errors.Is(err, user.ErrNotFound):
		internalError(h.logger, w, r, "load customer failed", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// home is the default callback landing page.
func (h *handlers) home(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": ok && sess.IsAuthenticated()})
}
