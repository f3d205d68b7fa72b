package utils

import "strings"

// IsEmpty reports whether the string is empty or whitespace only.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// DefaultIfEmpty returns def when s is empty or whitespace only.
func DefaultIfEmpty(s, def string) string {
	if IsEmpty(s) {
		return def
	}
	return s
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
