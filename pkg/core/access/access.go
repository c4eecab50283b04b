// Package access implements the PIN gate on booking edits and the
// family/admin password check. This is a low-friction gate for family use,
// not a security boundary: mismatches are retryable without lockout.
package access

import (
	"errors"
	"strings"
	"unicode"

	"github.com/kmoroney/carraig-house/pkg/core/model"
)

// ErrPINMismatch is returned when a candidate PIN fails verification
var ErrPINMismatch = errors.New("incorrect PIN")

// ErrBadPassword is returned when a password matches neither the family nor
// the admin password
var ErrBadPassword = errors.New("incorrect password")

// Role classifies an authenticated actor
type Role string

const (
	RoleFamily Role = "family"
	RoleAdmin  Role = "admin"
)

// NormalizePIN collapses every run of whitespace to a single space and trims
// the result. Applied identically when storing and when verifying, otherwise
// legitimate PINs would be rejected. Idempotent.
func NormalizePIN(pin string) string {
	var b strings.Builder
	b.Grow(len(pin))

	inSpace := false
	for _, r := range pin {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// Gate verifies booking PINs. An admin bypasses every PIN unconditionally.
type Gate struct {
	Admin bool
}

// Verify checks a candidate PIN against the booking's stored PIN.
// A stored PIN that normalizes to the empty string means no gate at all.
// Comparison is exact and case-sensitive on the normalized forms.
func (g Gate) Verify(booking model.Booking, candidate string) error {
	if g.Admin {
		return nil
	}

	stored := NormalizePIN(booking.PIN)
	if stored == "" {
		return nil
	}

	if NormalizePIN(candidate) != stored {
		return ErrPINMismatch
	}
	return nil
}

// Authenticate resolves a password against the configured family and admin
// passwords. The admin password is checked first so that identical settings
// grant the stronger role. An unset configured password grants nothing;
// otherwise an empty candidate would authenticate against empty settings.
func Authenticate(password string, settings model.Settings) (Role, error) {
	password = strings.TrimSpace(password)

	switch {
	case settings.AdminPassword != "" && password == settings.AdminPassword:
		return RoleAdmin, nil
	case settings.FamilyPassword != "" && password == settings.FamilyPassword:
		return RoleFamily, nil
	default:
		return "", ErrBadPassword
	}
}
