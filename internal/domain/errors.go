package domain

import "errors"

// Engine errors. Callers match them with errors.Is.
var (
	// ErrInvalidAddress is returned for malformed address syntax.
	// No upstream call is attempted for such input.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrUpstreamUnavailable is returned when the chain RPC provider timed out,
	// refused the connection or returned a malformed response.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrRateLimited is returned when the chain RPC provider kept rate limiting
	// after all retries were spent.
	ErrRateLimited = errors.New("upstream rate limited")
)
