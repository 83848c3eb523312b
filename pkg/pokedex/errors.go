package pokedex

import "errors"

// The error taxonomy is deliberately closed: every upstream failure
// shape collapses into one of these two outcomes at the boundary.
// Profile fetch failures of any kind (unknown name, network error,
// malformed response, structurally incomplete species) become
// ErrNotFound; translation failures of any kind become
// ErrTranslationFailed.
var (
	// ErrNotFound indicates the creature does not exist as far as the
	// API is concerned.
	ErrNotFound = errors.New("pokemon not found")

	// ErrTranslationFailed indicates the translated flow could not
	// produce a translation. The caller may retry later; the service
	// never retries on its own.
	ErrTranslationFailed = errors.New("translation failed")

	// ErrRateLimited marks a translation failure caused by upstream
	// quota exhaustion. It is always wrapped together with
	// ErrTranslationFailed, never returned on its own.
	ErrRateLimited = errors.New("rate limited")
)
