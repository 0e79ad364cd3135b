package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when a referenced record does not exist for the caller.
	ErrNotFound = errors.New("record not found")
	// ErrNoModifiedParameters is returned when an update would not change anything.
	ErrNoModifiedParameters = errors.New("No modified parameters specified.")
)

// ValidationError reports missing or malformed input. Message is shown to the caller as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new validation error.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ConflictError reports a duplicate value for a unique field.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflictError creates a new conflict error.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// OperationError is an expected failure of a domain operation, usually a datastore error.
// Message is generic and safe to return; Err keeps the cause for logs.
type OperationError struct {
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError creates a new operation error.
func NewOperationError(message string, err error) *OperationError {
	return &OperationError{Message: message, Err: err}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. The second result is false for
// unexpected errors, which callers hand to the framework error handler untouched.
func MapErrorToHTTP(err error) (*HTTPError, bool) {
	var (
		validationErr *ValidationError
		conflictErr   *ConflictError
		operationErr  *OperationError
	)
	switch {
	case errors.As(err, &validationErr):
		return NewHTTPError(http.StatusUnprocessableEntity, validationErr.Message, "VALIDATION_ERROR"), true
	case errors.As(err, &conflictErr):
		return NewHTTPError(http.StatusUnprocessableEntity, conflictErr.Message, "CONFLICT"), true
	case errors.Is(err, ErrNoModifiedParameters):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "NOT_MODIFIED"), true
	case errors.As(err, &operationErr):
		return NewHTTPError(http.StatusUnprocessableEntity, operationErr.Message, "OPERATION_FAILED"), true
	default:
		return nil, false
	}
}
