package utils

import (
	"regexp"
	"strings"
)

var (
	parenRe    = regexp.MustCompile(`\([^)]*\)`)
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]+`)
	spacesRe   = regexp.MustCompile(`\s+`)
)

// NormalizeFoodName lowercases, drops parentheticals and punctuation, and
// collapses whitespace. Used to dedupe catalog entries like
// "Palak (Spinach)" vs "palak spinach".
func NormalizeFoodName(name string) string {
	if name == "" {
		return ""
	}
	s := strings.ToLower(name)
	s = parenRe.ReplaceAllString(s, "")
	s = nonAlnumRe.ReplaceAllString(s, " ")
	s = spacesRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ContainsAny reports whether s contains any of the substrings.
func ContainsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
