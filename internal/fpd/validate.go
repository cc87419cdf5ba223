package fpd

import (
	"errors"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]{2,}$`)

// ValidateEmail checks an address for the inline form validation. The check
// is deliberately shallow: shape only, no deliverability probing.
func ValidateEmail(addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return errors.New("email is required")
	}
	if !emailPattern.MatchString(addr) {
		return errors.New("enter a valid email address")
	}
	return nil
}
