// Package validation provides input validation for account and content fields.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 60
	minPasswordLength = 8
	maxPasswordLength = 128
	maxEmailLength    = 254
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*[a-zA-Z0-9]$`)

// ValidateUsername validates account username format.
func ValidateUsername(username string) error {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return fmt.Errorf("username must be %d-%d characters", minUsernameLength, maxUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may contain only letters, numbers, dots, hyphens and underscores, and must start and end with a letter or number")
	}
	return nil
}

// ValidatePassword enforces the account password policy.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("password must be at most %d characters", maxPasswordLength)
	}
	return nil
}

// ValidateEmail validates email address format.
func ValidateEmail(email string) error {
	if len(email) > maxEmailLength {
		return fmt.Errorf("email must be at most %d characters", maxEmailLength)
	}
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return fmt.Errorf("invalid email address")
	}
	local, domain := email[:at], email[at+1:]
	if local == "" || domain == "" || strings.ContainsAny(email, " \t") {
		return fmt.Errorf("invalid email address")
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return fmt.Errorf("invalid email domain")
	}
	return nil
}

// ValidatePublicationURL validates that a publication link is an absolute
// http(s) URL.
func ValidatePublicationURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid publication URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("publication URL must use http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("publication URL must include a host")
	}
	return nil
}
