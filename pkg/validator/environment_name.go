package validator

import (
	"regexp"
	"strings"
)

// environmentNameRegexp defines the valid format for environment names:
// URL-safe characters only (letters, numbers, underscore, tilde, dot,
// hyphen), 1-100 characters. The seeded default environment is the single
// exception and is never created through the API.
var environmentNameRegexp = regexp.MustCompile(`^[a-zA-Z0-9_~.-]{1,100}$`)

// ValidateEnvironmentName checks if the given name is a valid, URL-safe
// environment name.
func ValidateEnvironmentName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}
	return environmentNameRegexp.MatchString(trimmed)
}

// SanitizeEnvironmentName trims whitespace and validates the name.
// Returns the sanitized name and a boolean indicating if it's valid.
func SanitizeEnvironmentName(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", false
	}
	if !environmentNameRegexp.MatchString(trimmed) {
		return trimmed, false
	}
	return trimmed, true
}
