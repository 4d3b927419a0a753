package model

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")

	// ErrDataUnavailable signals that the required primary event source is
	// missing or unreadable. Fatal to normalization; callers either halt or
	// fall back to the labeled demo dataset.
	ErrDataUnavailable = errors.New("primary event source unavailable")

	// ErrModelUnavailable signals that the embedding provider failed to load
	// or encode. Non-fatal: semantic scoring is omitted, lexical scoring
	// continues.
	ErrModelUnavailable = errors.New("embedding model unavailable")

	// ErrCacheMiss signals missing, incomplete or corrupt index artifacts on
	// disk. Non-fatal: triggers a full rebuild.
	ErrCacheMiss = errors.New("index cache miss")
)
