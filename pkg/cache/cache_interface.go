package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer.
// Keeping this as an interface allows swapping the implementation
// (Redis, in-memory) and mocking in tests.
type Cache interface {
	// Get reads the value stored at key and unmarshals it into dest.
	// Returns (found, error):
	// - found = true: cache hit, data unmarshaled into dest
	// - found = false: cache miss, dest untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value at key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// TTL returns the remaining lifetime of key.
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}
