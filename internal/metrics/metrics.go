package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Policy decision outcomes
const (
	OutcomeReadthrough  = "readthrough"
	OutcomeUncacheable  = "uncacheable"
	OutcomeUnconfigured = "unconfigured"
)

var (
	// Per-method decisions taken by the integration layer
	PolicyDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rpc_cache_policy_decisions_total",
			Help: "Total number of cache policy decisions per method",
		},
		[]string{"service", "method", "outcome"},
	)

	// Engine hit/miss counters
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rpc_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"level"},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rpc_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	StaleServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rpc_cache_stale_served_total",
			Help: "Total number of stale entries served after a producer error",
		},
	)

	ProducerErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rpc_cache_producer_errors_total",
			Help: "Total number of producer failures on cache miss",
		},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rpc_cache_errors_total",
			Help: "Total number of cache storage errors",
		},
		[]string{"level", "kind"},
	)

	// Readthrough latency, including the producer on a miss
	CacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rpc_cache_operation_duration_seconds",
			Help:    "Duration of cache operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// L1 capacity metrics only (if L1 is in-memory)
	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rpc_cache_capacity_bytes",
			Help: "L1 cache capacity in bytes",
		},
		[]string{"level"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rpc_cache_entries",
			Help: "Number of entries held by a cache level",
		},
		[]string{"level"},
	)
)

// RecordPolicyDecision records how the integration layer handled a call
func RecordPolicyDecision(service, method, outcome string) {
	PolicyDecisions.WithLabelValues(service, method, outcome).Inc()
}

// RecordCacheHit records a cache hit served by level
func RecordCacheHit(level string) {
	CacheHits.WithLabelValues(level).Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss() {
	CacheMisses.Inc()
}

// RecordStaleServed records a stale entry returned in place of a failed producer
func RecordStaleServed() {
	StaleServed.Inc()
}

// RecordProducerError records a failed producer
func RecordProducerError() {
	ProducerErrors.Inc()
}

// RecordCacheError records a storage error with level and kind (encode, decode, upstream)
func RecordCacheError(level, kind string) {
	CacheErrors.WithLabelValues(level, kind).Inc()
}

// UpdateL1CacheCapacity updates L1 capacity and entry count
func UpdateL1CacheCapacity(capacity int64, entries int64) {
	CacheCapacity.WithLabelValues("l1").Set(float64(capacity))
	CacheEntries.WithLabelValues("l1").Set(float64(entries))
}

// TimeCacheOperation returns a timer function for measuring an operation
func TimeCacheOperation(operation string) func() {
	timer := prometheus.NewTimer(CacheOperationDuration.WithLabelValues(operation))
	return func() {
		timer.ObserveDuration()
	}
}
