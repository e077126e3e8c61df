package domain

import "nathanbeddoewebdev/staffctl/internal/domain"

// Re-export shared sentinel errors so staff callers do not need to import
// the cross-domain package directly.
var (
	// ErrNotFound indicates the requested staff member does not exist.
	ErrNotFound = domain.ErrNotFound

	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = domain.ErrUnauthorized

	// ErrRateLimited indicates the backend throttled the request.
	ErrRateLimited = domain.ErrRateLimited

	// ErrConflict indicates a duplicate ID or username.
	ErrConflict = domain.ErrConflict

	// ErrUpstream indicates any other backend rejection.
	ErrUpstream = domain.ErrUpstream
)
