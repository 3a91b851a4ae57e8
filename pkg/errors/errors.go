package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation       ErrorType = "validation"
	ErrorTypeUnsupportedMedia ErrorType = "unsupported_media"
	ErrorTypeTooLarge         ErrorType = "too_large"
	ErrorTypeUnauthorized     ErrorType = "unauthorized"
	ErrorTypeUnavailable      ErrorType = "unavailable"
	ErrorTypeInternal         ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewUnsupportedMediaError is returned for uploads that are not PDF, PNG or JPEG.
func NewUnsupportedMediaError(mediaType string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnsupportedMedia,
		Message:    "Unsupported file type. Allowed: PDF (.pdf), PNG (.png), JPEG (.jpg, .jpeg).",
		Details:    mediaType,
		StatusCode: http.StatusUnsupportedMediaType,
	}
}

// NewTooLargeError creates a new payload-too-large error
func NewTooLargeError(limit int64) *AppError {
	return &AppError{
		Type:       ErrorTypeTooLarge,
		Message:    "File too large",
		Details:    fmt.Sprintf("limit %d bytes", limit),
		StatusCode: http.StatusRequestEntityTooLarge,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewUnavailableError marks a dependency (e.g. the entity recognizer) that cannot run.
func NewUnavailableError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUnavailable,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}
