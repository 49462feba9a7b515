package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nasa_cache_hits_total",
			Help: "Total number of response cache hits",
		},
	)

	// CacheMisses tracks cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nasa_cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	// CacheEntries tracks the current number of entries in the cache
	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nasa_cache_entries",
			Help: "Current number of entries in the response cache",
		},
	)

	// CacheSweepRemovals tracks expired entries removed by the background sweep
	CacheSweepRemovals = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nasa_cache_sweep_removals_total",
			Help: "Total number of expired entries removed by the background sweep",
		},
	)
)
