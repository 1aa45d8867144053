package errors

// ValidationError represents an error in user-supplied input
type ValidationError struct {
	Field   string
	Message string
}

// PayloadTooLargeError represents an upload exceeding the configured size cap
type PayloadTooLargeError struct {
	Limit int64
}

// NotFoundError represents a missing record or blob
type NotFoundError struct {
	Resource string
}

// AuthorizationError represents an operation attempted by a non-owner
type AuthorizationError struct {
	Message string
}

// StorageError represents a blob store or database failure
type StorageError struct {
	Message string
	Cause   error
}

// ProcessingError represents a failure in media handling
type ProcessingError struct {
	Message string
	Cause   error
}
