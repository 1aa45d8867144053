package errors

import (
	stderrors "errors"
	"fmt"
)

// Error method implementation for ValidationError
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Error method implementation for PayloadTooLargeError
func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("file too large: payload exceeds %d bytes", e.Limit)
}

// Error method implementation for NotFoundError
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// Error method implementation for AuthorizationError
func (e *AuthorizationError) Error() string {
	return e.Message
}

// Error method implementation for StorageError
func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StorageError) Unwrap() error { return e.Cause }

// Error method implementation for ProcessingError
func (e *ProcessingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ProcessingError) Unwrap() error { return e.Cause }

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewPayloadTooLargeError creates a new PayloadTooLargeError
func NewPayloadTooLargeError(limit int64) *PayloadTooLargeError {
	return &PayloadTooLargeError{Limit: limit}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}

// NewStorageError creates a new StorageError
func NewStorageError(message string, cause error) *StorageError {
	return &StorageError{Message: message, Cause: cause}
}

// NewProcessingError creates a new ProcessingError
func NewProcessingError(message string, cause error) *ProcessingError {
	return &ProcessingError{Message: message, Cause: cause}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return stderrors.As(err, &nf)
}

// IsAuthorization reports whether err is an AuthorizationError
func IsAuthorization(err error) bool {
	var ae *AuthorizationError
	return stderrors.As(err, &ae)
}

// IsPayloadTooLarge reports whether err is a PayloadTooLargeError
func IsPayloadTooLarge(err error) bool {
	var pe *PayloadTooLargeError
	return stderrors.As(err, &pe)
}
