package service

import (
	"regexp"
	"strings"
)

var schemePrefix = regexp.MustCompile(`(?i)^https?://`)

// IsValidURL reports whether raw is an absolute http(s) URL with an authority.
// Only the scheme and the authority are inspected. Path, query, fragment and
// port are accepted as written, and raw is never modified.
func IsValidURL(raw string) bool {
	if raw == "" {
		return false
	}
	if !schemePrefix.MatchString(raw) {
		return false
	}

	// Tabs and newlines are dropped before splitting, the way browsers read URLs.
	cleaned := strings.NewReplacer("\t", "", "\r", "", "\n", "").Replace(raw)
	scheme, rest, ok := strings.Cut(cleaned, "://")
	if !ok {
		return false
	}
	if scheme = strings.ToLower(scheme); scheme != "http" && scheme != "https" {
		return false
	}

	authority := rest
	if end := strings.IndexAny(rest, "/?#"); end >= 0 {
		authority = rest[:end]
	}
	if authority == "" {
		return false
	}

	// An IPv6 literal must be bracketed on both sides.
	return strings.Contains(authority, "[") == strings.Contains(authority, "]")
}
