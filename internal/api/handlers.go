package api

import (
	"context"
	"net/http"

	"github.com/astroshed/nasa-data-proxy/pkg/cache"
	"github.com/astroshed/nasa-data-proxy/pkg/nasa"
	"github.com/goccy/go-json"
)

// queryKey derives the cache key for an endpoint from the full incoming
// query parameter set.
func queryKey(endpoint string) func(*http.Request) cache.Key {
	return func(r *http.Request) cache.Key {
		return cache.Key{Endpoint: endpoint, Params: r.URL.Query()}
	}
}

// handleAPOD proxies the Astronomy Picture of the Day. A bare request maps
// to the constant "nasa:apod" key; parameterized requests (date, count, ...)
// are keyed by their full query set.
func (rt *Router) handleAPOD() http.HandlerFunc {
	return rt.cached(queryKey("apod"), errAPOD,
		func(ctx context.Context, r *http.Request) ([]byte, error) {
			return rt.nasa.APOD(ctx, r.URL.Query())
		})
}

// handleMarsPhotos proxies Mars rover photos. The rover defaults to
// curiosity; earth_date and camera are optional filters.
func (rt *Router) handleMarsPhotos() http.HandlerFunc {
	return rt.cached(queryKey("mars"), errMarsPhotos,
		func(ctx context.Context, r *http.Request) ([]byte, error) {
			q := r.URL.Query()
			return rt.nasa.MarsPhotos(ctx, nasa.MarsPhotosParams{
				Rover:     q.Get("rover"),
				EarthDate: q.Get("earth_date"),
				Camera:    q.Get("camera"),
			})
		})
}

// handleEPIC proxies EPIC Earth imagery; without a date the most recent
// natural-color images are returned.
func (rt *Router) handleEPIC() http.HandlerFunc {
	return rt.cached(queryKey("epic"), errEPIC,
		func(ctx context.Context, r *http.Request) ([]byte, error) {
			return rt.nasa.EPIC(ctx, r.URL.Query().Get("date"))
		})
}

// handleNEO proxies the NeoWs close-approach feed.
func (rt *Router) handleNEO() http.HandlerFunc {
	return rt.cached(queryKey("neo"), errNEO,
		func(ctx context.Context, r *http.Request) ([]byte, error) {
			q := r.URL.Query()
			return rt.nasa.NEOFeed(ctx, nasa.NEOFeedParams{
				StartDate: q.Get("start_date"),
				EndDate:   q.Get("end_date"),
			})
		})
}

// handleSmallBody proxies the JPL Small-Body Database lookup.
func (rt *Router) handleSmallBody() http.HandlerFunc {
	return rt.cached(queryKey("ssdcneos"), errSmallBody,
		func(ctx context.Context, r *http.Request) ([]byte, error) {
			q := r.URL.Query()
			return rt.nasa.SmallBody(ctx, nasa.SmallBodyParams{
				SPKID:       q.Get("spkId"),
				Designation: q.Get("designation"),
			})
		})
}

// captionRequest is the AI caption request body.
type captionRequest struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
}

// handleAICaption generates a caption for a NASA image. Responses are
// request-specific and never cached; without a configured AI credential the
// client answers locally.
func (rt *Router) handleAICaption() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req captionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, errBadBody)
			return
		}

		caption, err := rt.ai.Caption(r.Context(), req.Title, req.Explanation)
		if err != nil {
			rt.logger.Error().Err(err).Msg("caption generation failed")
			writeError(w, http.StatusInternalServerError, errAICaption)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"caption": caption})
	}
}

// askRequest is the Q&A request body. Context is an arbitrary JSON blob
// assembled by the caller (typically the APOD/NEO data on screen).
type askRequest struct {
	Question string          `json:"question"`
	Context  json.RawMessage `json:"context"`
}

// handleAskNASA answers a free-form question about NASA data. Uncached;
// falls back to a deterministic local answer without an AI credential.
func (rt *Router) handleAskNASA() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, errBadBody)
			return
		}

		answer, err := rt.ai.Answer(r.Context(), req.Question, req.Context)
		if err != nil {
			rt.logger.Error().Err(err).Msg("answer generation failed")
			writeError(w, http.StatusInternalServerError, errAIAnswer)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
	}
}

// handleHealth reports process liveness.
func (rt *Router) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
