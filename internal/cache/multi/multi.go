package multi

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-rpc-cache/internal/interfaces"
	"go-rpc-cache/internal/models"
)

// Ensure MultiCache implements interfaces.LevelAwareCache
var _ interfaces.LevelAwareCache = (*MultiCache)(nil)

// levels names cache positions; positions past the list report as l2
var levels = []models.CacheLevel{models.CacheLevelL1, models.CacheLevelL2}

// MultiCache reads through an ordered list of cache levels and writes to all of them
type MultiCache struct {
	caches            []interfaces.Cache
	logger            *zap.Logger
	enablePropagation bool
}

// NewMultiCache creates a new MultiCache over caches, fastest first.
// With enablePropagation a hit on a lower level is copied into the levels above it.
func NewMultiCache(caches []interfaces.Cache, logger *zap.Logger, enablePropagation bool) *MultiCache {
	return &MultiCache{
		caches:            caches,
		logger:            logger,
		enablePropagation: enablePropagation,
	}
}

// Get retrieves the entry from the first level that has the key
func (mc *MultiCache) Get(ctx context.Context, key string) (*models.CacheEntry, bool) {
	result := mc.GetWithLevel(ctx, key)
	return result.Entry, result.Found
}

// GetWithLevel is Get reporting which level served the entry
func (mc *MultiCache) GetWithLevel(ctx context.Context, key string) models.CacheResult {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for get operation", zap.String("key", key))
		return models.CacheResult{Level: models.CacheLevelMiss}
	}

	for i, cache := range mc.caches {
		entry, found := cache.Get(ctx, key)
		if !found {
			continue
		}
		if mc.enablePropagation && i > 0 {
			mc.propagate(ctx, key, entry, i)
		}
		return models.CacheResult{Entry: entry, Level: levelAt(i), Found: true}
	}
	return models.CacheResult{Level: models.CacheLevelMiss}
}

// Set stores value in all levels
func (mc *MultiCache) Set(ctx context.Context, key string, val []byte, ttl models.TTL) {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for set operation", zap.String("key", key))
		return
	}

	for _, cache := range mc.caches {
		cache.Set(ctx, key, val, ttl)
	}
}

// Delete removes entry from all levels
func (mc *MultiCache) Delete(ctx context.Context, key string) {
	for _, cache := range mc.caches {
		cache.Delete(ctx, key)
	}
}

// GetCacheCount returns the number of levels
func (mc *MultiCache) GetCacheCount() int {
	return len(mc.caches)
}

// propagate copies an entry found at position hit into the faster levels,
// keeping its remaining fresh and stale windows
func (mc *MultiCache) propagate(ctx context.Context, key string, entry *models.CacheEntry, hit int) {
	now := time.Now().Unix()
	remaining := entry.ExpiresAt - now
	if remaining <= 0 {
		return
	}

	fresh := entry.StaleAt - now
	if fresh < 0 {
		fresh = 0
	}
	ttl := models.TTL{
		Fresh: time.Duration(fresh) * time.Second,
		Stale: time.Duration(remaining-fresh) * time.Second,
	}

	for i := 0; i < hit; i++ {
		mc.caches[i].Set(ctx, key, entry.Data, ttl)
	}
	mc.logger.Debug("Propagated cache entry to faster levels",
		zap.String("key", key),
		zap.String("from", string(levelAt(hit))))
}

func levelAt(i int) models.CacheLevel {
	if i < len(levels) {
		return levels[i]
	}
	return models.CacheLevelL2
}
