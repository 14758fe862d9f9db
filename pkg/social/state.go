package social

import (
	"encoding/base64"
	"encoding/json"
	"regexp"
	"strings"
)

// State is the payload carried through the provider in the OAuth "state" parameter.
type State struct {
	Service  string `json:"service"`
	UUID     string `json:"uuid"`
	Redirect string `json:"redirect"`
}

var (
	stateEncoder = strings.NewReplacer("+", "-", "/", "_", "=", ",")
	stateDecoder = strings.NewReplacer("-", "+", "_", "/", ",", "=")

	// One leading slash followed by a single path segment. Query strings are allowed
	// as long as they contain no slash.
	safeRedirect = regexp.MustCompile(`^/[^/\\[:cntrl:]]+$`)
)

// EncodeState serializes s as JSON, encodes it with standard base64 and swaps
// "+/=" for "-_," so the result is safe in a query string.
func EncodeState(s State) string {
	b, _ := json.Marshal(s) // three strings cannot fail to marshal
	return stateEncoder.Replace(base64.StdEncoding.EncodeToString(b))
}

// DecodeState reverses EncodeState. Malformed input yields (State{}, false).
func DecodeState(raw string) (State, bool) {
	if raw == "" {
		return State{}, false
	}

	b, err := base64.StdEncoding.DecodeString(stateDecoder.Replace(raw))
	if err != nil {
		return State{}, false
	}

	var s State
	if err := json.Unmarshal(b, &s); err != nil {
		return State{}, false
	}
	return s, true
}

// IsSafeRedirect reports whether path is a single-segment local path such as
// "/home". Nested paths, protocol-relative URLs and absolute URLs are rejected.
func IsSafeRedirect(path string) bool {
	return safeRedirect.MatchString(path)
}
