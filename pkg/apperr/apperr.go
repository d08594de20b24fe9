// Package apperr defines the error kinds shared between services and handlers.
// Services wrap these sentinels with context; handlers match with errors.Is to
// pick the HTTP status code and message, so no storage error ever crosses the
// boundary.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a uniqueness or duplicate-assignment violation.
	ErrConflict = errors.New("conflict")
	// ErrNotFound indicates a referenced entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrIncorrectCredential indicates a login or password verification failure.
	ErrIncorrectCredential = errors.New("incorrect credential")
	// ErrUnauthenticated indicates a missing or expired session on a protected operation.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInternal indicates a storage failure or exhausted retry budget.
	ErrInternal = errors.New("internal error")
)

// Specializations. Each one still satisfies errors.Is against its base kind,
// so generic handling keeps working while the boundary can pick a more precise
// message.
var (
	// ErrRoleNotFound is raised when an account refers to a role that does not exist.
	ErrRoleNotFound = fmt.Errorf("role %w", ErrNotFound)
	// ErrPhoneFormat is raised when a phone number does not match the required pattern.
	ErrPhoneFormat = fmt.Errorf("phone number format: %w", ErrValidation)
	// ErrPasswordTooShort is raised when a password is below the minimum length.
	ErrPasswordTooShort = fmt.Errorf("password too short: %w", ErrValidation)
)
