package domain

import "fmt"

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotConfigured = "NOT_CONFIGURED"
	ErrCodeUpstream      = "UPSTREAM_ERROR"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeInternal      = "INTERNAL_ERROR"
	ErrCodeBadRequest    = "BAD_REQUEST"
)

// Error constructors

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string) error {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewValidationError creates a new validation error
func NewValidationError(msg string) error {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// NewNotConfiguredError signals that a required vendor credential is absent
func NewNotConfiguredError(service string) error {
	return &DomainError{
		Code:    ErrCodeNotConfigured,
		Message: fmt.Sprintf("%s is not configured", service),
	}
}

// NewUpstreamError wraps a failure from an external collaborator
func NewUpstreamError(service string, err error) error {
	return &DomainError{
		Code:    ErrCodeUpstream,
		Message: fmt.Sprintf("%s request failed", service),
		Err:     err,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError() error {
	return &DomainError{
		Code:    ErrCodeUnauthorized,
		Message: "Authentication required",
	}
}

// NewInternalError creates a new internal error
func NewInternalError(err error) error {
	return &DomainError{
		Code:    ErrCodeInternal,
		Message: "An internal error occurred",
		Err:     err,
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(msg string) error {
	return &DomainError{
		Code:    ErrCodeBadRequest,
		Message: msg,
	}
}

// Helper functions to check error types

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	if de, ok := err.(*DomainError); ok {
		return de.Code == ErrCodeNotFound
	}
	return false
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	if de, ok := err.(*DomainError); ok {
		return de.Code == ErrCodeValidation
	}
	return false
}

// IsNotConfigured checks if the error is a missing-credential error
func IsNotConfigured(err error) bool {
	if de, ok := err.(*DomainError); ok {
		return de.Code == ErrCodeNotConfigured
	}
	return false
}

// IsUpstream checks if the error came from an external collaborator
func IsUpstream(err error) bool {
	if de, ok := err.(*DomainError); ok {
		return de.Code == ErrCodeUpstream
	}
	return false
}

// IsUnauthorized checks if the error is an unauthorized error
func IsUnauthorized(err error) bool {
	if de, ok := err.(*DomainError); ok {
		return de.Code == ErrCodeUnauthorized
	}
	return false
}

// IsBadRequest checks if the error is a bad request error
func IsBadRequest(err error) bool {
	if de, ok := err.(*DomainError); ok {
		return de.Code == ErrCodeBadRequest
	}
	return false
}

// GetErrorCode extracts the error code from a domain error
func GetErrorCode(err error) string {
	if de, ok := err.(*DomainError); ok {
		return de.Code
	}
	return ErrCodeInternal
}
