package noop

import (
	"context"

	"go-rpc-cache/internal/interfaces"
	"go-rpc-cache/internal/models"
)

// Ensure NoOpCache implements interfaces.Cache
var _ interfaces.Cache = (*NoOpCache)(nil)

// NoOpCache stands in for a disabled cache level
type NoOpCache struct{}

// NewNoOpCache creates a new no-operation cache instance
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always returns cache miss
func (n *NoOpCache) Get(ctx context.Context, key string) (*models.CacheEntry, bool) {
	return nil, false
}

// Set does nothing
func (n *NoOpCache) Set(ctx context.Context, key string, val []byte, ttl models.TTL) {}

// Delete does nothing
func (n *NoOpCache) Delete(ctx context.Context, key string) {}
