package api

import (
	"context"
	"net/http"

	"github.com/astroshed/nasa-data-proxy/pkg/cache"
)

// fetchFunc performs the upstream call for a cache miss.
type fetchFunc func(ctx context.Context, r *http.Request) ([]byte, error)

// cached wraps a data-fetch capability with the response cache:
// derive key, check cache, on miss call upstream exactly once, store, reply.
//
// Concurrent misses for the same key are coalesced through singleflight so
// a burst of identical requests performs a single upstream call. The fetch
// runs detached from the winning caller's cancellation, so one client
// disconnecting mid-flight does not fail the coalesced followers. Upstream
// failures are never cached and surface as the capability's generic error
// message with status 500.
func (rt *Router) cached(keyFn func(*http.Request) cache.Key, errMsg string, fetch fetchFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := keyFn(r)

		if entry, err := rt.store.Get(key); err == nil {
			rt.logger.Debug().Str("cache_key", key.String()).Msg("cache hit")
			writeRawJSON(w, http.StatusOK, entry.Data)
			return
		}

		result, err, shared := rt.flight.Do(key.String(), func() (any, error) {
			data, err := fetch(context.WithoutCancel(r.Context()), r)
			if err != nil {
				return nil, err
			}
			rt.store.Set(key, data, rt.cacheTTL)
			return data, nil
		})
		if err != nil {
			rt.logger.Error().Err(err).Str("cache_key", key.String()).Msg("upstream fetch failed")
			writeError(w, http.StatusInternalServerError, errMsg)
			return
		}

		rt.logger.Debug().
			Str("cache_key", key.String()).
			Bool("coalesced", shared).
			Msg("cache miss served from upstream")

		writeRawJSON(w, http.StatusOK, result.([]byte))
	}
}
