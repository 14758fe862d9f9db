package social

import (
	"context"
	"strings"
)

func (h *Host) pseudoEmailDomain(ctx context.Context) string {
	def := strings.ReplaceAll(h.slug, "_", "-") + "-pseudo.example.com"
	return h.hooks.String(ctx, "pseudo_email_domain", def)
}

// PseudoEmail builds the placeholder address used for profiles without an email.
func (h *Host) PseudoEmail(ctx context.Context, id string) string {
	return id + "@" + h.pseudoEmailDomain(ctx)
}

// IsPseudoEmail reports whether email was produced by PseudoEmail.
func (h *Host) IsPseudoEmail(ctx context.Context, email string) bool {
	return strings.HasSuffix(strings.TrimSpace(email), "@"+h.pseudoEmailDomain(ctx))
}

// FilterPseudoEmail returns email, or "" when it is a pseudo email.
func (h *Host) FilterPseudoEmail(ctx context.Context, email string) string {
	if h.IsPseudoEmail(ctx, email) {
		return ""
	}
	return email
}
