// Package apperror defines the domain error taxonomy.
//
// Services return these errors; the HTTP layer translates them to status
// codes in exactly one place (handler.writeError). Sentinel errors are
// checked with errors.Is, which walks the chain via AppError.Unwrap.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("password mismatch")
)

// AppError carries a sentinel error plus a human-readable message.
type AppError struct {
	Err     error  // sentinel from the list above
	Message string // human-readable error message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing row looked up by numeric id.
//
// Ownership mismatches are deliberately reported through this same error:
// a caller probing another user's record learns nothing beyond "no such
// record", which prevents id enumeration.
func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("no %s with id %d", resource, id),
	}
}

// NotFoundMsg is NotFound for lookups that aren't by numeric id
// (e.g. login by email).
func NotFoundMsg(message string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: message,
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// InvalidCredentials is returned when a login password doesn't verify.
// Maps to 401 at the boundary.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "invalid credentials",
	}
}

// PasswordMismatch is returned when the two copies of a new password differ.
func PasswordMismatch() *AppError {
	return &AppError{
		Err:     ErrPasswordMismatch,
		Message: "passwords do not match",
	}
}
