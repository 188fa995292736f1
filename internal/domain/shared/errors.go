package shared

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code, so a wrapped
// ErrWriteFailed still matches errors.Is(err, ErrWriteFailed).
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if !errors.As(target, &de) {
		return false
	}
	return de.Code == e.Code
}

// Wrap returns a copy of the error carrying cause
func (e *DomainError) Wrap(cause error) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, Cause: cause}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound             = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput         = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized         = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrInvalidState         = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrBackendUnavailable   = NewDomainError("BACKEND_UNAVAILABLE", "Content backend is unavailable")
	ErrWriteFailed          = NewDomainError("WRITE_FAILED", "Failed to write content")
	ErrReorderFailed        = NewDomainError("REORDER_FAILED", "Failed to reorder records")
	ErrAssetDeleteFailed    = NewDomainError("ASSET_DELETE_FAILED", "Failed to delete stored asset")
	ErrBusy                 = NewDomainError("BUSY", "Another operation is in progress")
	ErrConfirmationRequired = NewDomainError("CONFIRMATION_REQUIRED", "Destructive action requires confirmation")
)

// CodeValidation is the code carried by every ValidationError
const CodeValidation = "VALIDATION_ERROR"

// ValidationError is a field-level validation failure raised before any
// backend call is made.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is matches ErrInvalidInput so callers may treat validation failures as bad input
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new validation error for field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ValidationErrors is a list of field-level failures, used when a whole
// document is checked at once (e.g. an import file).
type ValidationErrors []*ValidationError

// Error implements the error interface
func (errs ValidationErrors) Error() string {
	switch len(errs) {
	case 0:
		return "no validation errors"
	case 1:
		return errs[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", errs[0].Error(), len(errs)-1)
	}
}

// Is matches ErrInvalidInput
func (errs ValidationErrors) Is(target error) bool {
	return target == ErrInvalidInput
}
