package models

import (
	"time"
)

// TTL represents cache time-to-live configuration
type TTL struct {
	Fresh time.Duration // How long the data is considered fresh
	Stale time.Duration // How long stale data can be served (stale-if-error)
}

// Total is the full lifetime of an entry in storage
func (t TTL) Total() time.Duration {
	return t.Fresh + t.Stale
}

// CacheEntry is the stored envelope around a produced response
type CacheEntry struct {
	Data      []byte `json:"data"`
	CreatedAt int64  `json:"created_at"`
	StaleAt   int64  `json:"stale_at"`
	ExpiresAt int64  `json:"expires_at"`
}

// NewCacheEntry stamps val with freshness boundaries relative to now
func NewCacheEntry(val []byte, ttl TTL, now time.Time) CacheEntry {
	created := now.Unix()
	return CacheEntry{
		Data:      val,
		CreatedAt: created,
		StaleAt:   created + int64(ttl.Fresh.Seconds()),
		ExpiresAt: created + int64(ttl.Total().Seconds()),
	}
}

// IsFresh reports whether the entry is still within its fresh window
func (e *CacheEntry) IsFresh() bool {
	return time.Now().Unix() < e.StaleAt
}

// IsExpired reports whether the entry is past its stale window
func (e *CacheEntry) IsExpired() bool {
	return time.Now().Unix() >= e.ExpiresAt
}

// CacheLevel identifies the storage level that served a lookup
type CacheLevel string

const (
	CacheLevelL1   CacheLevel = "l1"
	CacheLevelL2   CacheLevel = "l2"
	CacheLevelMiss CacheLevel = "miss"
)

// CacheResult is a lookup result with the level that served it
type CacheResult struct {
	Entry *CacheEntry
	Level CacheLevel
	Found bool
}
