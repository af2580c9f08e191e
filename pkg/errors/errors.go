package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
	ErrDuplicateAccount
	ErrSlotConflict
	ErrInvalidTransition
	ErrProfileMissing
	ErrInvalidToken
	ErrConflict
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// CodeOf extracts the error code from err, or ErrInternal if err is
// not an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// Error constructors
func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

// Forbidden carries no detail about the protected resource so that a
// denial never reveals whether the resource exists.
func Forbidden() *AppError {
	return &AppError{
		Code:    ErrForbidden,
		Message: "forbidden",
	}
}

func DuplicateAccount(field string) *AppError {
	return &AppError{
		Code:    ErrDuplicateAccount,
		Message: fmt.Sprintf("%s already registered", field),
	}
}

func SlotConflict() *AppError {
	return &AppError{
		Code:    ErrSlotConflict,
		Message: "slot not available",
	}
}

// Conflict covers state that blocks the requested change, like
// deleting a doctor whose appointment history must survive.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    ErrConflict,
		Message: message,
	}
}

func InvalidTransition(from, to string) *AppError {
	return &AppError{
		Code:    ErrInvalidTransition,
		Message: fmt.Sprintf("cannot transition appointment from %s to %s", from, to),
	}
}

func ProfileMissing(role string) *AppError {
	return &AppError{
		Code:    ErrProfileMissing,
		Message: fmt.Sprintf("%s profile missing for account", role),
	}
}

func InvalidToken(err error) *AppError {
	return &AppError{
		Code:    ErrInvalidToken,
		Message: "invalid token",
		Err:     err,
	}
}
