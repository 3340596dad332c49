package apperrors

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every error leaving a service wraps exactly one of these.
var (
	// ErrNotFound is returned when a referenced document does not exist
	ErrNotFound = errors.New("resource not found")
	// ErrValidation is returned for missing or malformed input
	ErrValidation = errors.New("validation failed")
	// ErrConflict is returned for duplicate keys and roster membership clashes
	ErrConflict = errors.New("conflict")
	// ErrUpstream is returned when an external provider (media host, SMS, inference) fails
	ErrUpstream = errors.New("upstream service failed")
	// ErrInternal is returned for unclassified persistence failures
	ErrInternal = errors.New("internal error")
)

// Authentication and authorization errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrPermissionDenied   = errors.New("permission denied")
)

// ErrRosterConflict marks a Conflict caused by a student already being on a roster
var ErrRosterConflict = errors.New("roster conflict")

// Password reset errors
var (
	ErrInvalidVerificationCode = errors.New("invalid or expired verification code")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewNotFoundError creates a not-found error with a message
func NewNotFoundError(message string) error {
	return NewCustomError(ErrNotFound, message)
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return NewCustomError(ErrValidation, message)
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return NewCustomError(ErrConflict, message)
}

// NewRosterConflictError creates a Conflict that also matches ErrRosterConflict
func NewRosterConflictError(message string) error {
	return NewCustomError(fmt.Errorf("%w: %w", ErrConflict, ErrRosterConflict), message)
}

// NewUpstreamError wraps a provider failure. The cause is kept for logging only.
func NewUpstreamError(message string, cause error) error {
	return &CustomError{
		Err:     fmt.Errorf("%w: %v", ErrUpstream, cause),
		Message: message,
	}
}

// NewInternalError wraps a persistence failure as "error performing <op>"
func NewInternalError(op string, cause error) error {
	return fmt.Errorf("error performing %s: %w", op, errors.Join(ErrInternal, cause))
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// Message returns the user-facing message carried by a CustomError, or fallback
func Message(err error, fallback string) string {
	var custom *CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}

// Details returns the details carried by a CustomError, if any
func Details(err error) map[string]interface{} {
	var custom *CustomError
	if errors.As(err, &custom) {
		return custom.Details
	}
	return nil
}
