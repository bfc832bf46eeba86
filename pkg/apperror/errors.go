package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *AppError) Unwrap() error {
	return e.cause
}

// Common errors
var (
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrAccountDisabled    = &AppError{Code: http.StatusForbidden, Message: "Account is disabled"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
)

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewFieldError is a shorthand for a validation error on a single field
func NewFieldError(field string, err error) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  []FieldError{{Field: field, Message: err.Error()}},
		cause:   err,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// WrapConflict creates a conflict error that keeps the storage error as its cause
func WrapConflict(message string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
		cause:   cause,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible.
// Unknown errors collapse into a generic 500 so storage details never reach clients.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: ErrInternalServer.Message,
		cause:   err,
	}
}
