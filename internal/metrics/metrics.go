package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Store lookups by resource kind and result (hit, miss)
	StoreLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_lookups_total",
			Help: "Total number of cache store lookups",
		},
		[]string{"kind", "result"},
	)

	StoreWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_writes_total",
			Help: "Total number of cache store writes",
		},
		[]string{"kind", "op"},
	)

	StoreClears = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "store_clears_total",
			Help: "Total number of full cache store clears",
		},
	)

	// Read path fetches
	Fetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resource_fetches_total",
			Help: "Total number of live resource fetches",
		},
		[]string{"kind", "result"},
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resource_fetch_duration_seconds",
			Help:    "Duration of live resource fetches",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	// Contract call cache
	CallCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "call_cache_requests_total",
			Help: "Total number of contract call cache lookups",
		},
		[]string{"cache_type", "level"},
	)

	CallCacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "call_cache_errors_total",
			Help: "Total number of contract call cache errors",
		},
		[]string{"level", "kind"},
	)

	// L1 capacity metrics only (if L1 is in-memory)
	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_capacity_bytes",
			Help: "L1 cache capacity in bytes",
		},
		[]string{"level"},
	)

	CacheKeys = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_keys",
			Help: "Number of keys held by a cache level",
		},
		[]string{"level"},
	)

	// Write actions
	TxPhases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tx_phase_transitions_total",
			Help: "Total number of write action phase transitions",
		},
		[]string{"action", "phase"},
	)

	// Persistence
	PersistOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persist_operations_total",
			Help: "Total number of store persistence operations",
		},
		[]string{"op", "result"},
	)

	ChainSwitches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chain_switches_total",
			Help: "Total number of observed chain ID changes",
		},
	)
)

// RecordStoreLookup records a store read
func RecordStoreLookup(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	StoreLookups.WithLabelValues(kind, result).Inc()
}

// RecordStoreWrite records a store mutation
func RecordStoreWrite(kind, op string) {
	StoreWrites.WithLabelValues(kind, op).Inc()
}

// RecordStoreClear records a full store clear
func RecordStoreClear() {
	StoreClears.Inc()
}

// RecordFetch records the outcome of a live fetch
func RecordFetch(kind string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	Fetches.WithLabelValues(kind, result).Inc()
}

// TimeFetch returns a timer function for measuring fetch duration
func TimeFetch(kind string) func() {
	timer := prometheus.NewTimer(FetchDuration.WithLabelValues(kind))
	return func() {
		timer.ObserveDuration()
	}
}

// RecordCallCacheRequest records a contract call cache lookup and the level that answered
func RecordCallCacheRequest(cacheType, level string) {
	CallCacheRequests.WithLabelValues(cacheType, level).Inc()
}

// RecordCacheError records a cache error with level and kind
func RecordCacheError(level, kind string) {
	CallCacheErrors.WithLabelValues(level, kind).Inc()
}

// UpdateL1CacheCapacity updates L1 cache capacity metrics only
func UpdateL1CacheCapacity(capacity int64) {
	CacheCapacity.WithLabelValues("l1").Set(float64(capacity))
}

// UpdateCacheKeys updates the number of keys in cache
func UpdateCacheKeys(level string, count int64) {
	CacheKeys.WithLabelValues(level).Set(float64(count))
}

// RecordTxPhase records a write action entering a phase
func RecordTxPhase(action, phase string) {
	TxPhases.WithLabelValues(action, phase).Inc()
}

// RecordPersist records a load or save of the persisted store
func RecordPersist(op string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	PersistOperations.WithLabelValues(op, result).Inc()
}

// RecordChainSwitch records an observed chain ID change
func RecordChainSwitch() {
	ChainSwitches.Inc()
}
