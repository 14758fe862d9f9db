package social

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Profile is the raw user-info object returned by a provider. Adapters normalize
// provider-specific keys to "id", "email", "name", "first_name", "last_name" and
// "picture".
type Profile map[string]any

// Has reports whether key is present with a non-null value.
func (p Profile) Has(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

// String returns the value of key as a string. Numbers are formatted without
// exponent so numeric ids keep all their digits.
func (p Profile) String(key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// ID returns the provider user id.
func (p Profile) ID() string { return p.String("id") }

// Email returns the provider email, if any.
func (p Profile) Email() string { return p.String("email") }

// decodeObject parses a JSON object, keeping numbers as json.Number. Anything but a
// non-empty object reports false.
func decodeObject(body []byte) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil || len(m) == 0 {
		return nil, false
	}
	return m, true
}
