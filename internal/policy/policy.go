package policy

import (
	"time"

	"go-rpc-cache/internal/cache"
	"go-rpc-cache/internal/interfaces"
	"go-rpc-cache/internal/models"
)

// CachePolicy is the immutable cache configuration of one service method.
// A policy is shared by every invocation of the method and needs no locking.
type CachePolicy struct {
	serviceID string
	methodKey string
	settings  settings
	keyPrefix string

	keyBuilder *cache.KeyBuilder
}

// NewCachePolicy validates opts against the request schema and builds the policy.
// Every key and required field must be declared by schema; otherwise a
// *ConfigurationError is returned.
func NewCachePolicy(serviceID, methodKey string, schema interfaces.FieldDeclarer, opts Options) (*CachePolicy, error) {
	if serviceID == "" {
		return nil, &ConfigurationError{Service: serviceID, Method: methodKey, Err: ErrEmptyService}
	}
	if methodKey == "" {
		return nil, &ConfigurationError{Service: serviceID, Err: ErrEmptyMethod}
	}

	s, err := opts.normalize()
	if err != nil {
		return nil, &ConfigurationError{Service: serviceID, Method: methodKey, Err: err}
	}

	if err := validateFields(serviceID, methodKey, schema, s); err != nil {
		return nil, err
	}

	kb := cache.NewKeyBuilder()
	return &CachePolicy{
		serviceID:  serviceID,
		methodKey:  methodKey,
		settings:   s,
		keyPrefix:  kb.Prefix(serviceID, methodKey),
		keyBuilder: kb,
	}, nil
}

func validateFields(serviceID, methodKey string, schema interfaces.FieldDeclarer, s settings) error {
	named := make([]string, 0, len(s.keyFields)+len(s.requiredFields))
	named = append(named, s.keyFields...)
	named = append(named, s.requiredFields...)
	if len(named) == 0 {
		return nil
	}

	if schema == nil {
		return &ConfigurationError{Service: serviceID, Method: methodKey, Err: ErrMissingSchema}
	}

	declared := make(map[string]struct{})
	for _, f := range schema.DeclaredFields() {
		declared[f] = struct{}{}
	}

	for _, f := range named {
		if _, ok := declared[f]; !ok {
			return &ConfigurationError{Service: serviceID, Method: methodKey, Field: f, Err: ErrUnknownField}
		}
	}
	return nil
}

// ServiceID returns the owning service identifier
func (p *CachePolicy) ServiceID() string { return p.serviceID }

// MethodKey returns the governed method
func (p *CachePolicy) MethodKey() string { return p.methodKey }

// KeyPrefix returns rpc.<service>.<method>
func (p *CachePolicy) KeyPrefix() string { return p.keyPrefix }

// TTLSeconds returns the advisory ttl forwarded to the cache engine
func (p *CachePolicy) TTLSeconds() int { return p.settings.ttlSeconds }

// TTL returns TTLSeconds as a duration
func (p *CachePolicy) TTL() time.Duration {
	return time.Duration(p.settings.ttlSeconds) * time.Second
}

// KeyFields returns the ordered key fields
func (p *CachePolicy) KeyFields() []string {
	return append([]string(nil), p.settings.keyFields...)
}

// RequiredFields returns the fields gating cacheability
func (p *CachePolicy) RequiredFields() []string {
	return append([]string(nil), p.settings.requiredFields...)
}

// Cacheable reports whether req may be served from the cache: all required fields are
// present, the admit predicate (if any) holds and the deny predicate (if any) does not.
// Clauses are evaluated in that order and short-circuit.
func (p *CachePolicy) Cacheable(req interfaces.Request) bool {
	if req == nil {
		return false
	}
	return p.RequiredFieldsPresent(req) &&
		p.admitted(req) &&
		!p.denied(req)
}

// RequiredFieldsPresent reports whether every required field is carried with a non-empty value
func (p *CachePolicy) RequiredFieldsPresent(req interfaces.Request) bool {
	for _, f := range p.settings.requiredFields {
		if !req.HasAndPresent(f) {
			return false
		}
	}
	return true
}

func (p *CachePolicy) admitted(req interfaces.Request) bool {
	if p.settings.admit == nil {
		return true
	}
	return p.settings.admit(req)
}

func (p *CachePolicy) denied(req interfaces.Request) bool {
	if p.settings.deny == nil {
		return false
	}
	return p.settings.deny(req)
}

// Key derives the cache key for req. Key fields the request does not carry are skipped,
// so requests differing only in an unset optional key field share a key. A request
// carrying no key fields yields the bare prefix.
//
// Key does not check Cacheable; callers gate on it before using the key.
func (p *CachePolicy) Key(req interfaces.Request) string {
	if req == nil {
		return p.keyPrefix
	}

	fragments := make([]string, 0, len(p.settings.keyFields))
	for _, f := range p.settings.keyFields {
		if !req.HasField(f) {
			continue
		}
		fragments = append(fragments, p.keyBuilder.Fragment(f, req.ValueOf(f)))
	}

	if p.settings.digest {
		return p.keyBuilder.Digest(p.keyPrefix, fragments)
	}
	return p.keyBuilder.Build(p.keyPrefix, fragments)
}

// Info returns a serialisable summary of the policy
func (p *CachePolicy) Info() models.PolicyInfo {
	return models.PolicyInfo{
		Service:        p.serviceID,
		Method:         p.methodKey,
		KeyPrefix:      p.keyPrefix,
		KeyFields:      p.KeyFields(),
		RequiredFields: p.RequiredFields(),
		TTLSeconds:     p.settings.ttlSeconds,
		HasAdmit:       p.settings.admit != nil,
		HasDeny:        p.settings.deny != nil,
		Digest:         p.settings.digest,
	}
}
