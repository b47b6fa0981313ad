// Package cache provides byte-level caching for pipeline results.
//
// Three backends are available:
//   - FileCache: entries stored as JSON files under a directory (CLI default)
//   - RedisCache: shared cache for long-running or scripted use
//   - NullCache: no-op backend that disables caching
//
// Keys are produced by a [Keyer] so every pipeline stage (dataset decode,
// lineage trace, rendered artifact) caches under a stable, collision-free
// name derived from its inputs.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache backends.
// Get returns (data, hit, error); a miss is not an error.
type Cache interface {
	// Get retrieves a value from the cache.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs per cached stage.
const (
	// TTLDataset is the lifetime of decoded dataset entries.
	TTLDataset = 24 * time.Hour

	// TTLTrace is the lifetime of traced lineage entries.
	TTLTrace = 24 * time.Hour

	// TTLArtifact is the lifetime of rendered artifacts.
	TTLArtifact = 7 * 24 * time.Hour
)
