package policy

import (
	"math"
	"time"

	"go-rpc-cache/internal/interfaces"
)

const (
	// DefaultTTLSeconds is used when a declaration does not set a ttl
	DefaultTTLSeconds = 60
	// MaxTTLSeconds is the longest ttl that still fits in a time.Duration
	MaxTTLSeconds = math.MaxInt64 / int64(time.Second)
)

// Predicate gates cacheability of a single request
type Predicate func(req interfaces.Request) bool

// Options is the typed declaration of a method cache policy.
//
//	On      fields forming the cache key, in order; duplicates collapse to the first occurrence
//	TTL     seconds a response stays fresh; zero means DefaultTTLSeconds, at most MaxTTLSeconds
//	Require fields that must be present and non-empty for a request to be cacheable
//	If      admit predicate; nil always admits
//	Unless  deny predicate; nil never denies
//	Digest  hash the key fragments instead of spelling them out
type Options struct {
	On      []string
	TTL     int
	Require []string
	If      Predicate
	Unless  Predicate
	Digest  bool
}

// settings is the normalised form of Options
type settings struct {
	keyFields      []string
	requiredFields []string
	ttlSeconds     int
	admit          Predicate
	deny           Predicate
	digest         bool
}

func (o Options) normalize() (settings, error) {
	if o.TTL < 0 || int64(o.TTL) > MaxTTLSeconds {
		return settings{}, ErrInvalidTTL
	}

	ttl := o.TTL
	if ttl == 0 {
		ttl = DefaultTTLSeconds
	}

	return settings{
		keyFields:      uniqueOrdered(o.On),
		requiredFields: uniqueOrdered(o.Require),
		ttlSeconds:     ttl,
		admit:          o.If,
		deny:           o.Unless,
		digest:         o.Digest,
	}, nil
}

// uniqueOrdered drops repeated names, keeping the first occurrence
func uniqueOrdered(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
