// Package validation centralizes input validation. All checks return a
// *validation.Error so the HTTP layer can distinguish client mistakes from
// backend failures.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Length bounds enforced across the application.
const (
	UsernameMinLength = 3
	PasswordMinLength = 6
	NameMaxLength     = 200
	DetailsMaxLength  = 50000
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Error is returned for any client-supplied input violation.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Required fails when the value is empty or whitespace-only.
func Required(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errorf("%s is required", fieldName)
	}
	return nil
}

// MinLength fails when the value is shorter than min. Lengths are measured
// in characters, not bytes.
func MinLength(value string, min int, fieldName string) error {
	if utf8.RuneCountInString(value) < min {
		return errorf("%s must be at least %d characters", fieldName, min)
	}
	return nil
}

// MaxLength fails when the value is longer than max. Lengths are measured
// in characters, not bytes.
func MaxLength(value string, max int, fieldName string) error {
	if utf8.RuneCountInString(value) > max {
		return errorf("%s must not exceed %d characters", fieldName, max)
	}
	return nil
}

// Email fails on a malformed address. An empty address passes; email is
// optional everywhere it appears.
func Email(email string) error {
	if email != "" && !emailRegexp.MatchString(email) {
		return errorf("Invalid email format")
	}
	return nil
}

// PasswordsMatch fails when the confirmation differs from the password.
func PasswordsMatch(password, confirm string) error {
	if password != confirm {
		return errorf("Passwords do not match")
	}
	return nil
}

// UserRegistration validates a registration request. The first violated rule
// is reported.
func UserRegistration(username, password, confirmPassword, email string) error {
	if err := Required(username, "Username"); err != nil {
		return err
	}
	if err := Required(password, "Password"); err != nil {
		return err
	}
	if err := MinLength(username, UsernameMinLength, "Username"); err != nil {
		return err
	}
	if err := MinLength(password, PasswordMinLength, "Password"); err != nil {
		return err
	}
	if err := PasswordsMatch(password, confirmPassword); err != nil {
		return err
	}
	return Email(email)
}

// PersonData validates a person's name and details.
func PersonData(name, details string) error {
	if err := Required(name, "Name"); err != nil {
		return err
	}
	trimmed := strings.TrimSpace(name)
	if err := MinLength(trimmed, 1, "Name"); err != nil {
		return err
	}
	if err := MaxLength(trimmed, NameMaxLength, "Name"); err != nil {
		return err
	}
	if utf8.RuneCountInString(details) > DetailsMaxLength {
		return errorf("Details are too long (max 50,000 characters)")
	}
	return nil
}
