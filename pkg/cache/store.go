package cache

import "context"

// Store is a concurrency-safe lookup table keyed by creature name.
// Keys are case-sensitive and match the exact query string used.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool)

	// Put stores value under key, overwriting any previous value.
	Put(ctx context.Context, key, value string) error
}
