package validate

import (
	"fmt"
	"regexp"
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

	// Password rules. RE2 has no lookahead, so each rule gets its own pattern.
	passwordLetter  = regexp.MustCompile(`[A-Za-z]`)
	passwordDigit   = regexp.MustCompile(`\d`)
	passwordSpecial = regexp.MustCompile(`[@$!%*?&]`)
	passwordCharset = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]+$`)
)

// Email checks the basic shape: something, an @, and a domain with a dot.
func Email(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// Password enforces the registration strength policy: at least 8 characters,
// one letter, one digit and one of @$!%*?&, with no characters outside that
// set.
func Password(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !passwordCharset.MatchString(password) {
		return fmt.Errorf("password may only contain letters, digits and @$!%%*?&")
	}
	if !passwordLetter.MatchString(password) {
		return fmt.Errorf("password must contain at least one letter")
	}
	if !passwordDigit.MatchString(password) {
		return fmt.Errorf("password must contain at least one digit")
	}
	if !passwordSpecial.MatchString(password) {
		return fmt.Errorf("password must contain at least one special character (@$!%%*?&)")
	}
	return nil
}
