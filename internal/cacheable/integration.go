package cacheable

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"go-rpc-cache/internal/interfaces"
	"go-rpc-cache/internal/metrics"
	"go-rpc-cache/internal/policy"
)

// ErrInvalidationUnsupported is returned when the engine cannot remove stored responses
var ErrInvalidationUnsupported = errors.New("cache engine does not support invalidation")

// Integration binds a service instance to its type's policy registry and to a cache engine.
// The engine is supplied by the application; Integration never builds one.
type Integration struct {
	registry *policy.Registry
	engine   interfaces.CacheEngine
	logger   *zap.Logger
}

// New creates an integration for one service instance
func New(registry *policy.Registry, engine interfaces.CacheEngine, logger *zap.Logger) *Integration {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Integration{
		registry: registry,
		engine:   engine,
		logger:   logger,
	}
}

// Registry returns the policy registry of the bound service type
func (i *Integration) Registry() *policy.Registry {
	return i.registry
}

// IsCacheable reports whether methodKey has a cache policy. It does not look at any request.
func (i *Integration) IsCacheable(methodKey string) bool {
	return i.registry.IsConfigured(methodKey)
}

// CacheKey returns the cache key of req under the methodKey policy, and false when the
// method has no policy. The key is returned whether or not req is cacheable.
func (i *Integration) CacheKey(methodKey string, req interfaces.Request) (string, bool) {
	p, ok := i.registry.Lookup(methodKey)
	if !ok {
		return "", false
	}
	return p.Key(req), true
}

// ReadthroughOrCompute serves req through the cache engine when methodKey has a policy
// and req is cacheable. Otherwise producer is invoked directly and the engine is not
// touched. Engine and producer errors are returned unchanged.
func (i *Integration) ReadthroughOrCompute(ctx context.Context, methodKey string, req interfaces.Request, producer interfaces.Producer) ([]byte, error) {
	p, ok := i.registry.Lookup(methodKey)
	if !ok {
		metrics.RecordPolicyDecision(i.registry.ServiceID(), methodKey, metrics.OutcomeUnconfigured)
		return producer(ctx)
	}

	if !p.Cacheable(req) {
		metrics.RecordPolicyDecision(i.registry.ServiceID(), methodKey, metrics.OutcomeUncacheable)
		return producer(ctx)
	}

	key := p.Key(req)
	metrics.RecordPolicyDecision(i.registry.ServiceID(), methodKey, metrics.OutcomeReadthrough)
	i.logger.Debug("Cache readthrough",
		zap.String("service", i.registry.ServiceID()),
		zap.String("method", methodKey),
		zap.String("key", key))

	return i.engine.Readthrough(ctx, key, p.TTL(), producer)
}

// Invalidate removes the stored response of req under the methodKey policy and returns
// its key. It reports false when methodKey has no policy.
func (i *Integration) Invalidate(ctx context.Context, methodKey string, req interfaces.Request) (string, bool, error) {
	p, ok := i.registry.Lookup(methodKey)
	if !ok {
		return "", false, nil
	}

	invalidator, ok := i.engine.(interfaces.CacheInvalidator)
	if !ok {
		return "", true, ErrInvalidationUnsupported
	}

	key := p.Key(req)
	invalidator.Invalidate(ctx, key)
	i.logger.Info("Cache entry invalidated",
		zap.String("service", i.registry.ServiceID()),
		zap.String("method", methodKey),
		zap.String("key", key))

	return key, true, nil
}
