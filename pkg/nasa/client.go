// Package nasa provides HTTP clients for the public NASA data APIs
// (APOD, Mars Rover Photos, EPIC, NeoWs) and the JPL Small-Body Database,
// with error classification and Prometheus instrumentation.
package nasa

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for upstream NASA requests.
var (
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nasa_upstream_requests_total",
		Help: "Total upstream NASA API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nasa_upstream_request_duration_seconds",
		Help:    "Upstream NASA API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	upstreamErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nasa_upstream_errors_total",
		Help: "Total upstream NASA API errors by class",
	}, []string{"class"})
)

const (
	// DefaultBaseURL is the base URL of the primary NASA API gateway.
	DefaultBaseURL = "https://api.nasa.gov"

	// DefaultSBDBBaseURL is the base URL of the JPL SSD/CNEOS API, which
	// is served separately from the api.nasa.gov gateway and needs no key.
	DefaultSBDBBaseURL = "https://ssd-api.jpl.nasa.gov"

	// DefaultAPIKey is NASA's shared public demo key. It works without
	// registration but carries a much lower rate limit.
	DefaultAPIKey = "DEMO_KEY"
)

// Client is the NASA upstream API client.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// APIKey is the api.nasa.gov key (DEMO_KEY if unset)
	APIKey string

	// BaseURL overrides the api.nasa.gov gateway (for testing)
	BaseURL string

	// SBDBBaseURL overrides the ssd-api.jpl.nasa.gov host (for testing)
	SBDBBaseURL string

	// Timeout is the per-request HTTP timeout
	Timeout time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(apiKey string) Config {
	if apiKey == "" {
		apiKey = DefaultAPIKey
	}
	return Config{
		APIKey:      apiKey,
		BaseURL:     DefaultBaseURL,
		SBDBBaseURL: DefaultSBDBBaseURL,
		Timeout:     30 * time.Second,
	}
}

// New creates a new NASA API client.
func New(cfg Config) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = DefaultAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.SBDBBaseURL == "" {
		cfg.SBDBBaseURL = DefaultSBDBBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: log.With().Str("component", "nasa-client").Logger(),
	}
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// APOD fetches the Astronomy Picture of the Day. The caller-supplied query
// parameters (date, start_date/end_date, count, ...) are passed through to
// the upstream unchanged; the api_key is always added.
func (c *Client) APOD(ctx context.Context, params url.Values) ([]byte, error) {
	q := cloneValues(params)
	q.Set("api_key", c.config.APIKey)
	return c.getJSON(ctx, "apod", c.config.BaseURL+"/planetary/apod", q)
}

// MarsPhotos fetches Mars rover photos for the given rover and filters.
func (c *Client) MarsPhotos(ctx context.Context, p MarsPhotosParams) ([]byte, error) {
	rover := p.Rover
	if rover == "" {
		rover = DefaultRover
	}

	q := url.Values{}
	q.Set("api_key", c.config.APIKey)
	if p.EarthDate != "" {
		q.Set("earth_date", p.EarthDate)
	}
	if p.Camera != "" {
		q.Set("camera", p.Camera)
	}

	endpoint := fmt.Sprintf("%s/mars-photos/api/v1/rovers/%s/photos", c.config.BaseURL, url.PathEscape(rover))
	return c.getJSON(ctx, "mars-photos", endpoint, q)
}

// EPIC fetches Earth Polychromatic Imaging Camera natural-color imagery.
// With an empty date the most recent available images are returned.
func (c *Client) EPIC(ctx context.Context, date string) ([]byte, error) {
	endpoint := c.config.BaseURL + "/EPIC/api/natural/images"
	if date != "" {
		endpoint = c.config.BaseURL + "/EPIC/api/natural/date/" + url.PathEscape(date)
	}

	q := url.Values{}
	q.Set("api_key", c.config.APIKey)
	return c.getJSON(ctx, "epic", endpoint, q)
}

// NEOFeed fetches the NeoWs close-approach feed for a date range.
// Empty dates are omitted; the upstream then defaults to the next 7 days.
func (c *Client) NEOFeed(ctx context.Context, p NEOFeedParams) ([]byte, error) {
	q := url.Values{}
	q.Set("api_key", c.config.APIKey)
	if p.StartDate != "" {
		q.Set("start_date", p.StartDate)
	}
	if p.EndDate != "" {
		q.Set("end_date", p.EndDate)
	}

	return c.getJSON(ctx, "neo", c.config.BaseURL+"/neo/rest/v1/feed", q)
}

// SmallBody looks up a small body in the JPL Small-Body Database by SPK-ID
// or designation. The SSD API takes no api_key.
func (c *Client) SmallBody(ctx context.Context, p SmallBodyParams) ([]byte, error) {
	q := url.Values{}
	if p.SPKID != "" {
		q.Set("spk", p.SPKID)
	}
	if p.Designation != "" {
		q.Set("des", p.Designation)
	}

	return c.getJSON(ctx, "ssdcneos", c.config.SBDBBaseURL+"/sbdb.api", q)
}

// getJSON performs a GET request against an upstream endpoint and returns
// the raw JSON body. Failures are returned as *UpstreamError with a class
// of client, server, or network; nothing is retried.
func (c *Client) getJSON(ctx context.Context, endpoint, rawURL string, params url.Values) ([]byte, error) {
	startTime := time.Now()
	defer func() {
		upstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	reqURL := rawURL
	if len(params) > 0 {
		reqURL = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("Upstream request failed")
		upstreamErrorsTotal.WithLabelValues(string(ClassNetwork)).Inc()
		upstreamRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return nil, &UpstreamError{
			Endpoint: endpoint,
			Class:    ClassNetwork,
			Message:  "upstream request failed",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	upstreamRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		class := classifyStatus(resp.StatusCode)
		upstreamErrorsTotal.WithLabelValues(string(class)).Inc()

		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(class)).
			Msg("Upstream request error")

		return nil, &UpstreamError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Class:      class,
			Message:    resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		upstreamErrorsTotal.WithLabelValues(string(ClassNetwork)).Inc()
		return nil, &UpstreamError{
			Endpoint: endpoint,
			Class:    ClassNetwork,
			Message:  "read upstream response",
			Err:      err,
		}
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("Upstream request completed")

	return body, nil
}

func cloneValues(in url.Values) url.Values {
	out := url.Values{}
	for key, values := range in {
		for _, v := range values {
			out.Add(key, v)
		}
	}
	return out
}
