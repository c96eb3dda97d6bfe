package cache

import (
	"context"
	"time"
)

// Cache is a byte-payload cache with TTL semantics. The reporting component
// uses it to hold serialised report payloads; a miss or a cache error is
// never fatal, callers fall through to the store.
type Cache interface {
	// Get returns the cached payload and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a payload under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Close releases the underlying connection.
	Close() error
}

// Noop is a Cache that stores nothing. Used when no redis host is
// configured.
type Noop struct{}

// NewNoop creates a no-op cache.
func NewNoop() *Noop {
	return &Noop{}
}

// Get always misses.
func (Noop) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the payload.
func (Noop) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

// Close is a no-op.
func (Noop) Close() error {
	return nil
}
