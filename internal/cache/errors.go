package cache

import "errors"

var (
	// ErrInvalidConfig indicates a bad value supplied at construction time
	// (non-positive TTL or cleanup interval, negative precision). It is fatal:
	// callers are expected to abort startup rather than recover.
	ErrInvalidConfig = errors.New("invalid cache configuration")

	// ErrInvalidCoordinate indicates a latitude/longitude outside the valid
	// range. Upstream validation should have rejected it already; the cache
	// fails closed instead of clamping so the caller bug stays visible.
	ErrInvalidCoordinate = errors.New("coordinates out of range")
)
