package l1

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"
	"go.uber.org/zap"

	"go-rpc-cache/internal/config"
	"go-rpc-cache/internal/interfaces"
	"go-rpc-cache/internal/metrics"
	"go-rpc-cache/internal/models"
)

const metricsInterval = 30 * time.Second

// Ensure BigCache implements interfaces.Cache
var _ interfaces.Cache = (*BigCache)(nil)

// BigCache implements L1 cache using BigCache
type BigCache struct {
	cache  *bigcache.BigCache
	logger *zap.Logger

	stop     chan struct{}
	stopOnce sync.Once
}

// NewBigCache creates a new BigCache instance
func NewBigCache(cfg *config.Config, logger *zap.Logger) (*BigCache, error) {
	bcConfig := bigcache.DefaultConfig(cfg.GetL1Eviction())
	bcConfig.HardMaxCacheSize = cfg.L1.Size // Size in MB
	bcConfig.Verbose = false
	bcConfig.MaxEntrySize = 1024 * 1024 // 1MB max entry size

	cache, err := bigcache.New(context.Background(), bcConfig)
	if err != nil {
		return nil, err
	}

	bc := &BigCache{
		cache:  cache,
		logger: logger,
		stop:   make(chan struct{}),
	}

	bc.updateMetrics()
	go bc.collectMetricsPeriodically()

	return bc, nil
}

// Get retrieves a fresh or stale entry
func (bc *BigCache) Get(ctx context.Context, key string) (*models.CacheEntry, bool) {
	return bc.load(key)
}

func (bc *BigCache) load(key string) (*models.CacheEntry, bool) {
	data, err := bc.cache.Get(key)
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) {
			bc.logger.Warn("L1 cache get error", zap.String("key", key), zap.Error(err))
			metrics.RecordCacheError("l1", "upstream")
		}
		return nil, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		bc.logger.Warn("Failed to unmarshal L1 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "decode")
		_ = bc.cache.Delete(key) // Remove corrupted entry
		return nil, false
	}

	if entry.IsExpired() {
		_ = bc.cache.Delete(key)
		return nil, false
	}

	return &entry, true
}

// Set stores value in cache with TTL
func (bc *BigCache) Set(ctx context.Context, key string, val []byte, ttl models.TTL) {
	entry := models.NewCacheEntry(val, ttl, time.Now())

	data, err := json.Marshal(entry)
	if err != nil {
		bc.logger.Error("Failed to marshal cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "encode")
		return
	}

	if err := bc.cache.Set(key, data); err != nil {
		bc.logger.Error("Failed to set cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "upstream")
	}
}

// Delete removes entry from cache
func (bc *BigCache) Delete(ctx context.Context, key string) {
	_ = bc.cache.Delete(key)
}

// Len returns the number of stored entries
func (bc *BigCache) Len() int {
	return bc.cache.Len()
}

// Close stops metrics collection and closes the cache. Later calls are no-ops.
func (bc *BigCache) Close() error {
	var err error
	bc.stopOnce.Do(func() {
		close(bc.stop)
		err = bc.cache.Close()
		bc.logger.Debug("Closed L1 cache")
	})
	return err
}

func (bc *BigCache) collectMetricsPeriodically() {
	ticker := time.NewTicker(metricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			bc.updateMetrics()
		case <-bc.stop:
			return
		}
	}
}

func (bc *BigCache) updateMetrics() {
	metrics.UpdateL1CacheCapacity(int64(bc.cache.Capacity()), int64(bc.cache.Len()))
}
