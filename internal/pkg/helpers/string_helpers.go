package helpers

import "strings"

// NormalizeEmail lowercases and trims an email address. Users are keyed by the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
