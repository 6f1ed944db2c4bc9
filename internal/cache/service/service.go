package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"go-rpc-cache/internal/config"
	"go-rpc-cache/internal/interfaces"
	"go-rpc-cache/internal/metrics"
	"go-rpc-cache/internal/models"
)

// Ensure CacheService implements interfaces.CacheEngine and interfaces.CacheInvalidator
var (
	_ interfaces.CacheEngine      = (*CacheService)(nil)
	_ interfaces.CacheInvalidator = (*CacheService)(nil)
)

// CacheService is the readthrough cache engine over a multi-level cache.
//
// It does not deduplicate concurrent misses: every in-flight request that misses
// on a key runs its own producer and the last write wins.
type CacheService struct {
	cache             interfaces.LevelAwareCache
	staleRatio        float64
	serveStaleOnError bool
	logger            *zap.Logger
}

// NewCacheService creates a new cache service instance
func NewCacheService(cache interfaces.LevelAwareCache, cfg *config.Config, logger *zap.Logger) *CacheService {
	return &CacheService{
		cache:             cache,
		staleRatio:        cfg.GetStaleRatio(),
		serveStaleOnError: cfg.Engine.ServeStaleOnError,
		logger:            logger,
	}
}

// Readthrough returns the fresh cached value for key. On a miss it runs producer,
// stores the result for ttl and returns it. Producer errors are never cached; with
// serve_stale_on_error a stale entry is returned instead of the error.
// A non-positive ttl bypasses storage.
func (s *CacheService) Readthrough(ctx context.Context, key string, ttl time.Duration, producer interfaces.Producer) ([]byte, error) {
	timer := metrics.TimeCacheOperation("readthrough")
	defer timer()

	if ttl <= 0 {
		return producer(ctx)
	}

	result := s.cache.GetWithLevel(ctx, key)
	if result.Found && result.Entry.IsFresh() {
		metrics.RecordCacheHit(string(result.Level))
		return result.Entry.Data, nil
	}

	metrics.RecordCacheMiss()

	data, err := producer(ctx)
	if err != nil {
		metrics.RecordProducerError()
		if s.serveStaleOnError && result.Found {
			s.logger.Warn("Producer failed, serving stale cache entry",
				zap.String("key", key),
				zap.String("level", string(result.Level)),
				zap.Error(err))
			metrics.RecordStaleServed()
			return result.Entry.Data, nil
		}
		return nil, err
	}

	s.cache.Set(ctx, key, data, s.ttlFor(ttl))
	return data, nil
}

// Invalidate removes key from every level
func (s *CacheService) Invalidate(ctx context.Context, key string) {
	s.cache.Delete(ctx, key)
}

func (s *CacheService) ttlFor(fresh time.Duration) models.TTL {
	// stale window is clamped so Fresh+Stale fits in a Duration
	headroom := time.Duration(math.MaxInt64) - fresh
	stale := headroom
	if f := float64(fresh) * s.staleRatio; f < float64(headroom) {
		stale = time.Duration(f)
	}
	return models.TTL{Fresh: fresh, Stale: stale}
}
