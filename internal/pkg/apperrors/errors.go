package apperrors

import "errors"

// Authentication errors
var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrExpiredCredential = errors.New("credential expired")
	ErrRevokedCredential = errors.New("credential revoked")
	ErrAccountInactive   = errors.New("account is inactive")
)

// Authorization errors
var (
	ErrForbidden            = errors.New("permission denied")
	ErrFeatureLocked        = errors.New("feature not included in plan")
	ErrSubscriptionInactive = errors.New("subscription is not active")
	ErrSubscriptionExpired  = errors.New("subscription has expired")
	ErrQuotaExceeded        = errors.New("daily question quota exceeded")
)

// Request/resource errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrEmailExists      = errors.New("email already registered")
)

// Payment errors
var (
	ErrInvalidSignature = errors.New("invalid payment signature")
)

// External collaborator errors
var (
	ErrUpstreamFailure = errors.New("upstream service failure")
)

// CustomError wraps a sentinel error with request-specific context.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a not-found error with a message
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrForbidden, Message: message}
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewBadRequestError creates a bad-request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// Message returns the contextual message carried by err when it wraps a
// CustomError, or the fallback otherwise.
func Message(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}
