package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrRecordNotFound = errors.New("faculty record not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Reconciliation errors
	ErrDuplicateEmail = errors.New("another record already holds this email")

	// Search errors
	ErrIndexNotReady       = errors.New("search index not built")
	ErrIndexStale          = errors.New("search index does not match the faculty table")
	ErrEmbedderUnavailable = errors.New("embedding model unavailable")
)
