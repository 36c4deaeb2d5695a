package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrNoSession        = NewError(ErrCodeUnauthorized, "no active session")
	ErrUnknownRole      = NewError(ErrCodeInternal, "unknown role")
	ErrPasswordMismatch = NewError(ErrCodeInvalid, "passwords do not match")
	ErrWeakPassword     = NewError(ErrCodeInvalid, "password must be at least 6 characters")
	ErrAuthInProgress   = NewError(ErrCodeConflict, "another sign-in attempt is in progress")
	ErrInvalidPayload   = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// ValidationError reports the required registration fields that are missing
// or malformed. It is recoverable: callers re-prompt for the listed fields.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.MissingFields) == 0 {
		return "registration data is incomplete"
	}
	return fmt.Sprintf("registration data is incomplete: missing %s", strings.Join(e.MissingFields, ", "))
}

// AsValidationError unwraps err into a *ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
