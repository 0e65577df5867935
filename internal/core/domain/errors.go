package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskHierarchyCycle = errors.New("task hierarchy cycle")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError rejects a write before anything is persisted. Field is the
// JSON name of the offending attribute.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IntegrityError is returned when a write would break a structural rule of the
// store, such as a parent cycle or a duplicate username.
type IntegrityError struct {
	Field string
	Err   error
}

func (e *IntegrityError) Error() string {
	if e.Field == "" {
		return "integrity violation: " + e.Err.Error()
	}
	return fmt.Sprintf("integrity violation on %s: %s", e.Field, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsIntegrityError(err error) bool {
	var target *IntegrityError
	return errors.As(err, &target)
}
