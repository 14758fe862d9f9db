// Package sanitizer cleans provider-supplied profile fields before they are stored.
package sanitizer

import (
	"html"
	"net/url"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// MaxNameLength bounds stored name fields, counted in runes.
const MaxNameLength = 100

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func policy() *bluemonday.Policy {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// StripHTML removes all markup and returns plain text with entities decoded.
func StripHTML(s string) string {
	return html.UnescapeString(policy().Sanitize(s))
}

// Name strips markup, collapses whitespace and truncates to MaxNameLength runes.
func Name(s string) string {
	s = strings.Join(strings.Fields(StripHTML(s)), " ")
	if utf8.RuneCountInString(s) <= MaxNameLength {
		return s
	}
	return string([]rune(s)[:MaxNameLength])
}

// URL returns s when it is an absolute http(s) URL, otherwise an empty string.
func URL(s string) string {
	s = strings.TrimSpace(s)
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return ""
	}
	return u.String()
}
