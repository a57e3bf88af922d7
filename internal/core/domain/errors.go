package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthRequired indicates no credentials are stored, or the
	// stored credentials are no longer usable. The OAuth flow must
	// be completed before the operation can succeed.
	ErrAuthRequired = errors.New("authentication required")

	// ErrUpstreamUnavailable indicates a transient Drive API failure.
	// The operation can be retried on the next delivery or renewal.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrConfig indicates a required configuration value is missing
	// or invalid. Raised at startup, never at runtime.
	ErrConfig = errors.New("configuration error")
)
