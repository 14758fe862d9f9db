package health

import "errors"

// ErrCheckTimeout marks a check that did not finish before the readiness deadline.
var ErrCheckTimeout = errors.New("health: check timeout")
