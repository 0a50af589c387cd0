// Package urlutil contains helpers for validating and normalizing URLs and
// custom aliases before they enter the store.
package urlutil

import (
	"net/url"
	"regexp"
	"strings"
)

var aliasRegexp = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Validate reports whether raw parses into a URL with both a scheme and a
// host. Scheme-less strings like "example.com" and opaque schemes like
// "javascript:..." fail the check.
func Validate(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}

	return u.Scheme != "" && u.Host != ""
}

// Sanitize trims surrounding whitespace and prepends "https://" when the URL
// doesn't carry an explicit http(s) scheme. Sanitize is idempotent.
func Sanitize(raw string) string {
	raw = strings.TrimSpace(raw)

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	return raw
}

// IsValidAlias reports whether alias is non-empty and consists exclusively
// of ASCII letters, digits, hyphens and underscores. Length limits are
// enforced at the request schema boundary, not here.
func IsValidAlias(alias string) bool {
	return aliasRegexp.MatchString(alias)
}

// Domain returns the host portion of raw, or an empty string when raw
// cannot be parsed.
func Domain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	return u.Host
}
