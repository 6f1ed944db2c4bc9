package interfaces

import (
	"context"
	"time"
)

//go:generate mockgen -package=mock -source=engine.go -destination=mock/engine.go

// Producer computes the real response for a request on a cache miss
type Producer func(ctx context.Context) ([]byte, error)

// CacheEngine stores produced responses under policy-derived keys.
// Concurrent misses on the same key are not deduplicated.
type CacheEngine interface {
	// Readthrough returns the cached value for key, or runs producer and stores its
	// result for ttl before returning it
	Readthrough(ctx context.Context, key string, ttl time.Duration, producer Producer) ([]byte, error)
}

// CacheInvalidator removes stored responses. Engines implement it optionally.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, key string)
}
