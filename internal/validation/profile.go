// Package validation contains input validation helpers shared by handlers
// and services.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates email address format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email address format")
	}
	return nil
}

// ValidatePassword enforces minimal password strength for new accounts.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt truncates beyond 72 bytes
		return fmt.Errorf("password must be at most 72 characters")
	}
	return nil
}

// NormalizeInterests trims whitespace and drops blanks and duplicates while
// preserving the order the caller submitted.
func NormalizeInterests(interests []string) []string {
	seen := make(map[string]struct{}, len(interests))
	out := make([]string, 0, len(interests))
	for _, interest := range interests {
		name := strings.TrimSpace(interest)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
