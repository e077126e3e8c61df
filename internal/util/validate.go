package util

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// validUsername matches lower-case login names of 3 to 32 characters.
var validUsername = regexp.MustCompile(`^[a-z0-9._-]{3,32}$`)

// MinPasswordLength is the shortest password accepted for new or reset
// credentials.
const MinPasswordLength = 8

// ValidateUsername checks that a username is 3 to 32 characters drawn from
// lower-case letters, digits, dots, underscores and hyphens. Callers are
// expected to lower-case the input first.
func ValidateUsername(name string) error {
	if name == "" {
		return fmt.Errorf("username is required")
	}
	if !validUsername.MatchString(name) {
		return fmt.Errorf("username %q must be 3-32 characters of a-z, 0-9, '.', '_' or '-'", name)
	}
	return nil
}

// ValidateMobile checks a contact number: an optional leading "+" followed
// by 7 to 15 digits. Spaces and hyphens are not accepted; use NormalizeMobile
// to strip them first.
func ValidateMobile(mobile string) error {
	digits := strings.TrimPrefix(mobile, "+")
	if len(digits) < 7 || len(digits) > 15 {
		return fmt.Errorf("mobile number must have 7-15 digits, got %d", len(digits))
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return fmt.Errorf("mobile number %q contains invalid characters (only digits and a leading '+' are allowed)", mobile)
		}
	}
	return nil
}

// NormalizeMobile trims the number and removes spaces, hyphens and
// parentheses used for readability.
func NormalizeMobile(mobile string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '\t':
			return -1
		}
		return r
	}, strings.TrimSpace(mobile))
}

// ValidatePassword enforces the minimum password length in characters.
func ValidatePassword(password string) error {
	if n := utf8.RuneCountInString(password); n < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters, got %d", MinPasswordLength, n)
	}
	return nil
}
