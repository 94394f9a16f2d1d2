package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDocumentNotFound is the sentinel returned by document store lookups
// when no document exists under the requested key. It is distinct from
// transport or service errors so callers can tell "absent" from "broken".
var ErrDocumentNotFound = errors.New("document not found")

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"

	// Gateway specific errors
	CodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"
	CodeProfileNotFound      ErrorCode = "PROFILE_NOT_FOUND"
	CodeUserCreationFailed   ErrorCode = "USER_CREATION_FAILED"
	CodeSignOutFailed        ErrorCode = "SIGN_OUT_FAILED"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

// NewAuthenticationFailedError wraps the auth provider's error message, which
// is surfaced to the caller as an opaque string.
func NewAuthenticationFailedError(cause error) *DomainError {
	return NewError(CodeAuthenticationFailed, fmt.Sprintf("Login failed: %v", cause), cause)
}

func NewProfileNotFoundError(uid string) *DomainError {
	return NewError(CodeProfileNotFound, fmt.Sprintf("User profile not found for uid: %s", uid), nil)
}

func NewUserCreationFailedError(cause error) *DomainError {
	return NewError(CodeUserCreationFailed, fmt.Sprintf("User creation failed: %v", cause), cause)
}

func NewSignOutFailedError(cause error) *DomainError {
	return NewError(CodeSignOutFailed, fmt.Sprintf("Sign out failed: %v", cause), cause)
}

// ValidationError represents a single field-level validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors aggregates field-level failures from one request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e[0].Error())
}

func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Message: fmt.Sprintf("value %d is out of range [%d, %d]", value, min, max),
	}
}
