// Package cache stores compiled results keyed by document and options.
//
// Backends:
//   - FileCache: one JSON file per entry, for the CLI
//   - RedisCache: shared cache for multi-instance servers
//   - NullCache: disables caching
//
// Keys are produced by a Keyer so that every backend agrees on them:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.CompileKey(cache.Hash(src), cache.CompileKeyOpts{Lang: "en"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    // use data
//	}
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long compiled results stay cached.
const DefaultTTL = 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and reports how many were removed.
	Clear(ctx context.Context) (int, error)
}
