// Package util holds small string helpers and input validators shared by
// the roster commands, forms and services.
package util

import "strings"

// NormalizeKey lowercases and trims a string for use as a consistent lookup key.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SameKey reports whether a and b name the same thing once normalized.
// Staff IDs, usernames and provider names compare this way.
func SameKey(a, b string) bool {
	return NormalizeKey(a) == NormalizeKey(b)
}
