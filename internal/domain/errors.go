package domain

import "errors"

// Sentinel errors for cross-provider error classification.
// Providers should wrap these so the CLI can handle error categories
// uniformly without knowing which backend produced them.
//
//	return fmt.Errorf("failed to delete staff: %w", domain.ErrNotFound)
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates the request was rejected due to
	// invalid, expired, or missing credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the backend throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrConflict indicates a state or uniqueness conflict, such as
	// a duplicate staff ID or username.
	ErrConflict = errors.New("conflict")

	// ErrUpstream indicates the backend rejected the request without a
	// more specific classification (any other non-2xx status, or a read
	// payload that reported success=false).
	ErrUpstream = errors.New("upstream error")
)
