package social

import "errors"

var (
	ErrNoSession = errors.New("social: no visitor session in context")
	ErrSecret    = errors.New("social: failed to load nonce secret")
)
