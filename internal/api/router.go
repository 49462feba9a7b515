// Package api provides HTTP routing for the NASA data proxy using the Chi
// router, with a response cache in front of the upstream data endpoints.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/astroshed/nasa-data-proxy/internal/ws"
	"github.com/astroshed/nasa-data-proxy/pkg/ai"
	"github.com/astroshed/nasa-data-proxy/pkg/cache"
	"github.com/astroshed/nasa-data-proxy/pkg/nasa"
)

var httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "nasa_http_requests_total",
	Help: "Total proxy HTTP requests by path, method and status",
}, []string{"path", "method", "status"})

// Router wires the proxy endpoints to the cache, the upstream clients and
// the live-update channel. All collaborators are injected; the router owns
// no background state of its own.
type Router struct {
	store    *cache.Store
	nasa     *nasa.Client
	ai       *ai.Client
	notifier *ws.Notifier

	cacheTTL    time.Duration
	corsOrigins []string

	flight singleflight.Group
	logger zerolog.Logger
}

// Options configures a Router.
type Options struct {
	Store    *cache.Store
	NASA     *nasa.Client
	AI       *ai.Client
	Notifier *ws.Notifier

	// CacheTTL is applied to every cached endpoint.
	CacheTTL time.Duration

	// CORSOrigins lists allowed origins; empty means allow all.
	CORSOrigins []string
}

// NewRouter creates a Router from its collaborators.
func NewRouter(opts Options) *Router {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 300 * time.Second
	}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &Router{
		store:       opts.Store,
		nasa:        opts.NASA,
		ai:          opts.AI,
		notifier:    opts.Notifier,
		cacheTTL:    ttl,
		corsOrigins: origins,
		logger:      log.With().Str("component", "api").Logger(),
	}
}

// Routes builds the HTTP handler tree.
func (rt *Router) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.requestMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", rt.handleHealth())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/apod", rt.handleAPOD())
		r.Get("/mars-photos", rt.handleMarsPhotos())
		r.Get("/epic", rt.handleEPIC())
		r.Get("/neo", rt.handleNEO())
		r.Get("/ssdcneos", rt.handleSmallBody())

		r.Post("/ai-caption", rt.handleAICaption())
		r.Post("/ask-nasa", rt.handleAskNASA())
		r.Post("/ask-nasa-ai", rt.handleAskNASA())

		if rt.notifier != nil {
			r.Get("/live", rt.notifier.Handler())
		}
	})

	return r
}

// requestMetrics records per-request counters and a debug access log.
func (rt *Router) requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpRequestsTotal.WithLabelValues(r.URL.Path, r.Method, strconv.Itoa(status)).Inc()

		rt.logger.Debug().
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}
