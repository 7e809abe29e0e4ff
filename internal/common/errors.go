package common

import (
	"errors"
	"net/http"
)

// AppError carries a stable error code, a user-facing message, and the HTTP
// status the API should answer with.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the wrapped error to errors.Is/As.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// WithDetails attaches structured context surfaced in the error envelope.
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// ErrValidation builds a 400 validation error with the given message.
func ErrValidation(message string, err error) *AppError {
	return NewAppError("VALIDATION_ERROR", message, http.StatusBadRequest, err)
}

// ErrNotFound builds a 404 error for a missing resource.
func ErrNotFound(message string) *AppError {
	return NewAppError("NOT_FOUND", message, http.StatusNotFound, nil)
}

// ErrUnauthorized builds a 401 error.
func ErrUnauthorized(message string) *AppError {
	return NewAppError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

// ErrForbidden builds a 403 error.
func ErrForbidden(message string) *AppError {
	return NewAppError("FORBIDDEN", message, http.StatusForbidden, nil)
}

// ErrConflict builds a 409 error.
func ErrConflict(code, message string, err error) *AppError {
	return NewAppError(code, message, http.StatusConflict, err)
}

// IsNotFound reports whether err resolves to a 404 AppError.
func IsNotFound(err error) bool {
	var target *AppError
	return errors.As(err, &target) && target.HTTPStatus == http.StatusNotFound
}

// IsAppError reports whether err is (or wraps) an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}
