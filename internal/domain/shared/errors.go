package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes used across the service layer
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeDuplicate  = "ALREADY_EXISTS"
	CodeInternal   = "INTERNAL_ERROR"
)

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeDuplicate, "Resource already exists")
	ErrInvalidInput  = NewDomainError(CodeValidation, "Invalid input provided")
)

// NewValidationError creates a validation error with a specific message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewNotFoundError creates a not-found error naming the resource and id
func NewNotFoundError(resource string, id uint) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s with id %d not found", resource, id))
}

// NewDuplicateError creates a conflict error naming the offending field and value
func NewDuplicateError(resource, field, value string) *DomainError {
	return NewDomainError(CodeDuplicate, fmt.Sprintf("%s with this %s already exists: %s", resource, field, value))
}

// NewInternalError wraps an unexpected failure while keeping the original
// message for diagnostics
func NewInternalError(message string, cause error) *DomainError {
	if cause != nil {
		return NewDomainError(CodeInternal, fmt.Sprintf("%s: %v", message, cause))
	}
	return NewDomainError(CodeInternal, message)
}

// IsDomainError reports whether err is an already-typed domain error
func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}
