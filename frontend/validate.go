package frontend

import (
	"fmt"
	"regexp"
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 5

// emailPattern is loose on purpose: one local part, one domain, one TLD,
// each drawn from the same permissive character set.
var emailPattern = regexp.MustCompile(`^[0-9a-zA-Z_+.-]+@[0-9a-zA-Z_+.-]+\.[0-9a-zA-Z_+.-]+$`)

// ValidationError names the field that failed and why. Validators return
// nil when the input is acceptable; handlers branch on the result instead
// of catching anything.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("frontend: invalid %s: %s", e.Field, e.Reason)
}

// ValidateRegistration checks all registration fields.
func ValidateRegistration(email, fullName, password, confirm string) *ValidationError {
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Reason: "invalid email"}
	}
	return validateProfile(fullName, password, confirm)
}

// ValidateAccountUpdate re-runs the non-email rules; the email is the
// immutable account key and is never updated.
func ValidateAccountUpdate(fullName, password, confirm string) *ValidationError {
	return validateProfile(fullName, password, confirm)
}

func validateProfile(fullName, password, confirm string) *ValidationError {
	if len(password) < MinPasswordLen {
		return &ValidationError{Field: "password", Reason: "password too short"}
	}
	if password != confirm {
		return &ValidationError{Field: "password", Reason: "passwords don't match"}
	}
	if fullName == "" {
		return &ValidationError{Field: "fullname", Reason: "empty name"}
	}
	return nil
}
