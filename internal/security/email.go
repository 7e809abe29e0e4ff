package security

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmailRequired means the input was empty.
	ErrEmailRequired = errors.New("email is required")
	// ErrEmailFormat means the input does not look like an address.
	ErrEmailFormat = errors.New("invalid email format")
	// ErrEmailDisposable means the address belongs to a throwaway provider.
	ErrEmailDisposable = errors.New("disposable email addresses are not allowed")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsDisposable reports whether the address uses a known throwaway domain.
// Malformed input is not considered disposable; format checks catch it first.
func IsDisposable(email string) bool {
	at := strings.IndexByte(email, '@')
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	if domain == "" {
		return false
	}
	_, found := disposableDomains[domain]
	return found
}

// ValidateEmail checks format first, then the disposable denylist.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return ErrEmailFormat
	}
	if IsDisposable(email) {
		return ErrEmailDisposable
	}
	return nil
}
