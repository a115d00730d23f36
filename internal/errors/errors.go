package errors

import (
	"errors"
	"fmt"
)

// Error codes
const (
	CodeValidation         = "VALIDATION"
	CodeConflict           = "CONFLICT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeStorage            = "STORAGE"
)

// AppError is the error type returned across service boundaries.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target carries the same code, so callers can match
// against the sentinels below with errors.Is.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap creates a new AppError around cause
func Wrap(code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Err: cause}
}

// Predefined errors
var (
	ErrValidation         = New(CodeValidation, "invalid input")
	ErrConflict           = New(CodeConflict, "resource already exists")
	ErrInvalidCredentials = New(CodeInvalidCredentials, "invalid username or password")
	ErrUnauthenticated    = New(CodeUnauthenticated, "no user is logged in")
	ErrStorage            = New(CodeStorage, "storage failure")
)

// Validation builds a VALIDATION error with a caller-facing message.
func Validation(format string, args ...any) *AppError {
	return New(CodeValidation, fmt.Sprintf(format, args...))
}

// Storage wraps a database fault raised while performing op.
func Storage(op string, cause error) *AppError {
	return Wrap(CodeStorage, op, cause)
}

// CodeOf extracts the code of err, or "" when err is not an AppError.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
