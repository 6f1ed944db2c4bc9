package policy

import (
	"sort"

	"go.uber.org/zap"

	"go-rpc-cache/internal/interfaces"
)

// Registry maps the methods of one service type to their cache policies.
//
// Declarations happen once while the service type is defined, before any request is
// served. After that the registry is read-only and safe for concurrent readers.
// Declare itself is not safe for concurrent use.
type Registry struct {
	serviceID string
	policies  map[string]*CachePolicy
	logger    *zap.Logger
}

// NewRegistry creates an empty registry for serviceID
func NewRegistry(serviceID string, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		serviceID: serviceID,
		policies:  make(map[string]*CachePolicy),
		logger:    logger,
	}
}

// ServiceID returns the service type the registry belongs to
func (r *Registry) ServiceID() string {
	return r.serviceID
}

// Declare builds a policy for methodKey and stores it. Declaring a method twice
// replaces the earlier policy.
func (r *Registry) Declare(methodKey string, schema interfaces.FieldDeclarer, opts Options) (*CachePolicy, error) {
	p, err := NewCachePolicy(r.serviceID, methodKey, schema, opts)
	if err != nil {
		return nil, err
	}

	if _, exists := r.policies[methodKey]; exists {
		r.logger.Warn("Cache policy redeclared, replacing previous declaration",
			zap.String("service", r.serviceID),
			zap.String("method", methodKey))
	}
	r.policies[methodKey] = p

	r.logger.Debug("Cache policy declared",
		zap.String("service", r.serviceID),
		zap.String("method", methodKey),
		zap.Strings("key_fields", p.KeyFields()),
		zap.Int("ttl_seconds", p.TTLSeconds()))

	return p, nil
}

// MustDeclare is like Declare but panics on a configuration error.
// It is meant for declarations made while a service type is being defined.
func (r *Registry) MustDeclare(methodKey string, schema interfaces.FieldDeclarer, opts Options) *CachePolicy {
	p, err := r.Declare(methodKey, schema, opts)
	if err != nil {
		panic(err)
	}
	return p
}

// Lookup returns the policy for methodKey
func (r *Registry) Lookup(methodKey string) (*CachePolicy, bool) {
	p, ok := r.policies[methodKey]
	return p, ok
}

// IsConfigured reports whether methodKey has a policy
func (r *Registry) IsConfigured(methodKey string) bool {
	_, ok := r.policies[methodKey]
	return ok
}

// ConfiguredMethods returns the methods with a policy, sorted
func (r *Registry) ConfiguredMethods() []string {
	methods := make([]string, 0, len(r.policies))
	for m := range r.policies {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}

// Policies returns all policies ordered by method
func (r *Registry) Policies() []*CachePolicy {
	methods := r.ConfiguredMethods()
	out := make([]*CachePolicy, 0, len(methods))
	for _, m := range methods {
		out = append(out, r.policies[m])
	}
	return out
}
