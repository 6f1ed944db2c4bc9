package interfaces

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"go-rpc-cache/internal/models"
)

//go:generate mockgen -package=mock -source=storage.go -destination=mock/storage.go

// Cache is a single storage level used by the readthrough engine.
// Storage failures are logged by implementations and reported as misses.
// Get returns stale entries until they expire; callers check IsFresh.
type Cache interface {
	Get(ctx context.Context, key string) (*models.CacheEntry, bool)
	Set(ctx context.Context, key string, val []byte, ttl models.TTL)
	Delete(ctx context.Context, key string)
}

// LevelAwareCache reports which level served a hit
type LevelAwareCache interface {
	Cache
	GetWithLevel(ctx context.Context, key string) models.CacheResult
}

// KeyDbClient is the subset of the KeyDB/Redis client used by the L2 cache
type KeyDbClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}
