// Package validate holds the client-side registration checks. They are a
// pre-submission gate only: the server validates again and its verdict wins.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minNameLen     = 20
	maxNameLen     = 60
	maxAddressLen  = 400
	minPasswordLen = 8
	maxPasswordLen = 16

	// The special characters a password must contain at least one of.
	passwordSymbols = "!@#$%^&*"
)

// Exact user-facing messages. The UI shows these verbatim.
var (
	ErrName     = errors.New("Name must be between 20 and 60 characters.")
	ErrAddress  = errors.New("Address must be less than 400 characters.")
	ErrEmail    = errors.New("Invalid email format.")
	ErrPassword = errors.New("Password must be 8–16 characters, with 1 uppercase and 1 special character.")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Name requires a length between 20 and 60 characters inclusive.
func Name(name string) error {
	n := utf8.RuneCountInString(name)
	if n < minNameLen || n > maxNameLen {
		return ErrName
	}
	return nil
}

// Address allows at most 400 characters. Empty is fine.
func Address(address string) error {
	if utf8.RuneCountInString(address) > maxAddressLen {
		return ErrAddress
	}
	return nil
}

// Email requires the usual local@domain.tld shape with no whitespace.
func Email(email string) error {
	if !emailRe.MatchString(email) {
		return ErrEmail
	}
	return nil
}

// Password requires 8 to 16 characters with at least one ASCII uppercase
// letter and one of !@#$%^&*. Equivalent to the backend's pattern
// (?=.*[A-Z])(?=.*[!@#$%^&*]).{8,16}, checked piecewise because Go's regexp
// has no lookahead. Lowercase letters are not required.
func Password(password string) error {
	n := utf8.RuneCountInString(password)
	if n < minPasswordLen || n > maxPasswordLen {
		return ErrPassword
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		return ErrPassword
	}
	if !strings.ContainsAny(password, passwordSymbols) {
		return ErrPassword
	}
	return nil
}

// Registration runs all field checks in form order and returns the first
// failure, mirroring how the registration screen reports a single error at a
// time.
func Registration(name, email, address, password string) error {
	if err := Name(name); err != nil {
		return err
	}
	if err := Address(address); err != nil {
		return err
	}
	if err := Email(email); err != nil {
		return err
	}
	if err := Password(password); err != nil {
		return err
	}
	return nil
}
