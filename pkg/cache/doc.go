// Package cache provides an in-memory TTL response cache.
//
// The store memoizes upstream JSON responses for a fixed time window so that
// repeated identical requests do not trigger redundant upstream calls:
//
// - At most one live entry per key; Set replaces unconditionally
// - Expired entries are never returned and are deleted lazily on read
// - Optional background sweep removes entries that are never read again
// - Deterministic cache key generation (parameter order independent)
// - Prometheus metrics for observability
//
// # Basic Usage
//
//	// Create the store with a 10 minute sweep interval
//	store := cache.NewStore(10 * time.Minute)
//	defer store.Close()
//
//	// Create a cache key
//	key := cache.Key{
//		Endpoint: "mars",
//		Params:   url.Values{"rover": []string{"curiosity"}},
//	}
//
//	// Get from cache
//	entry, err := store.Get(key)
//	if err == cache.ErrCacheMiss {
//		// Cache miss - fetch from the upstream API, then:
//		store.Set(key, body, 5*time.Minute)
//	}
//
// # Metrics
//
// The store exports Prometheus metrics:
//
//   - nasa_cache_hits_total - Cache hits
//   - nasa_cache_misses_total - Cache misses
//   - nasa_cache_entries - Current entry count
//   - nasa_cache_sweep_removals_total - Entries removed by the sweep
//
// # Lifecycle
//
// The store is pure in-process state. It is constructed once at startup,
// injected into the HTTP router, never persisted, and torn down on process
// exit. Horizontal scaling multiplies cache misses across instances; there
// is no cross-instance coordination.
package cache
