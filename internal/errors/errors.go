package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation        ErrorType = "validation"
	ErrorTypeUpstreamEmpty     ErrorType = "upstream_empty"
	ErrorTypeUpstreamParse     ErrorType = "upstream_parse"
	ErrorTypeUpstreamTransport ErrorType = "upstream_transport"
	ErrorTypeInternal          ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`

	// RawResponse holds the model text that failed to parse, kept for diagnostics.
	RawResponse string `json:"-"`

	// Retryable marks transport failures that may succeed on a second attempt.
	Retryable bool `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewUpstreamEmptyError is returned when the model answered without any text
func NewUpstreamEmptyError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeUpstreamEmpty,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// NewUpstreamParseError is returned when the model text is not valid or
// schema-conforming JSON. raw is the text as received.
func NewUpstreamParseError(message string, raw string, cause error) *AppError {
	return &AppError{
		Type:        ErrorTypeUpstreamParse,
		Message:     message,
		StatusCode:  http.StatusInternalServerError,
		Cause:       cause,
		RawResponse: raw,
	}
}

// NewUpstreamTransportError covers network, auth, quota and timeout failures
// reported by the model service.
func NewUpstreamTransportError(message string, retryable bool, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUpstreamTransport,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
		Retryable:  retryable,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// As returns the first AppError in err's chain
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := As(err); ok {
		return appErr.Type == errorType
	}
	return false
}

// IsRetryable reports whether err is a transport failure worth retrying
func IsRetryable(err error) bool {
	if appErr, ok := As(err); ok {
		return appErr.Type == ErrorTypeUpstreamTransport && appErr.Retryable
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
