package cache

import (
	"context"
	"time"
)

// NullCache disables caching: every Get is a miss and every Set is dropped.
// The pipeline runner falls back to it when no backend is configured, and
// the CLI selects it for --no-cache, so every stage recomputes fresh.
type NullCache struct{}

// NewNullCache creates the no-op cache backend.
func NewNullCache() Cache {
	return NullCache{}
}

// Get always reports a miss.
func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the value.
func (NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete is a no-op.
func (NullCache) Delete(ctx context.Context, key string) error { return nil }

// Close is a no-op.
func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
