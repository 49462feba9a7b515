package nasa

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/astroshed/nasa-data-proxy/internal/testutil"
)

// setupClient creates a client pointed at a fresh mock upstream.
func setupClient(t *testing.T) (*Client, *testutil.MockUpstream) {
	t.Helper()

	mock := testutil.NewMockUpstream()
	t.Cleanup(mock.Close)

	client := New(Config{
		APIKey:      "TEST_KEY",
		BaseURL:     mock.URL(),
		SBDBBaseURL: mock.URL(),
		Timeout:     5 * time.Second,
	})

	return client, mock
}

func TestNew_Defaults(t *testing.T) {
	client := New(Config{})

	if client.config.APIKey != DefaultAPIKey {
		t.Errorf("APIKey = %q, want %q", client.config.APIKey, DefaultAPIKey)
	}
	if client.config.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", client.config.BaseURL, DefaultBaseURL)
	}
	if client.config.SBDBBaseURL != DefaultSBDBBaseURL {
		t.Errorf("SBDBBaseURL = %q, want %q", client.config.SBDBBaseURL, DefaultSBDBBaseURL)
	}
	if client.config.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", client.config.Timeout)
	}
}

func TestClient_APOD(t *testing.T) {
	client, mock := setupClient(t)

	payload := `{"title": "Pillars of Creation", "url": "https://example.com/pillars.jpg"}`
	mock.SetResponse("/planetary/apod", testutil.NewJSONResponse(payload))

	body, err := client.APOD(context.Background(), nil)
	if err != nil {
		t.Fatalf("APOD failed: %v", err)
	}
	if string(body) != payload {
		t.Errorf("body = %s, want %s", body, payload)
	}
	if !strings.Contains(mock.GetLastRequestURL(), "api_key=TEST_KEY") {
		t.Errorf("api_key missing from upstream URL: %s", mock.GetLastRequestURL())
	}
}

func TestClient_APOD_PassthroughParams(t *testing.T) {
	client, mock := setupClient(t)
	mock.SetResponse("/planetary/apod", testutil.NewJSONResponse(`[]`))

	params := url.Values{}
	params.Set("date", "2024-06-01")
	params.Set("count", "3")

	if _, err := client.APOD(context.Background(), params); err != nil {
		t.Fatalf("APOD failed: %v", err)
	}

	last := mock.GetLastRequestURL()
	for _, want := range []string{"date=2024-06-01", "count=3", "api_key=TEST_KEY"} {
		if !strings.Contains(last, want) {
			t.Errorf("upstream URL %q missing %q", last, want)
		}
	}
}

func TestClient_MarsPhotos_DefaultRover(t *testing.T) {
	client, mock := setupClient(t)

	path := "/mars-photos/api/v1/rovers/curiosity/photos"
	mock.SetResponse(path, testutil.NewJSONResponse(`{"photos": []}`))

	_, err := client.MarsPhotos(context.Background(), MarsPhotosParams{})
	if err != nil {
		t.Fatalf("MarsPhotos failed: %v", err)
	}
	if mock.GetPathCount(path) != 1 {
		t.Errorf("expected 1 request to %s, got %d", path, mock.GetPathCount(path))
	}
}

func TestClient_MarsPhotos_Filters(t *testing.T) {
	client, mock := setupClient(t)

	path := "/mars-photos/api/v1/rovers/perseverance/photos"
	mock.SetResponse(path, testutil.NewJSONResponse(`{"photos": []}`))

	_, err := client.MarsPhotos(context.Background(), MarsPhotosParams{
		Rover:     "perseverance",
		EarthDate: "2023-03-15",
		Camera:    "NAVCAM",
	})
	if err != nil {
		t.Fatalf("MarsPhotos failed: %v", err)
	}

	last := mock.GetLastRequestURL()
	for _, want := range []string{"earth_date=2023-03-15", "camera=NAVCAM"} {
		if !strings.Contains(last, want) {
			t.Errorf("upstream URL %q missing %q", last, want)
		}
	}
}

func TestClient_EPIC(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		wantPath string
	}{
		{
			name:     "most recent when no date",
			date:     "",
			wantPath: "/EPIC/api/natural/images",
		},
		{
			name:     "specific date",
			date:     "2019-05-30",
			wantPath: "/EPIC/api/natural/date/2019-05-30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := setupClient(t)
			mock.SetResponse(tt.wantPath, testutil.NewJSONResponse(`[]`))

			if _, err := client.EPIC(context.Background(), tt.date); err != nil {
				t.Fatalf("EPIC failed: %v", err)
			}
			if mock.GetPathCount(tt.wantPath) != 1 {
				t.Errorf("expected 1 request to %s, got %d", tt.wantPath, mock.GetPathCount(tt.wantPath))
			}
		})
	}
}

func TestClient_NEOFeed(t *testing.T) {
	client, mock := setupClient(t)
	mock.SetResponse("/neo/rest/v1/feed", testutil.NewJSONResponse(`{"element_count": 0}`))

	_, err := client.NEOFeed(context.Background(), NEOFeedParams{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-07",
	})
	if err != nil {
		t.Fatalf("NEOFeed failed: %v", err)
	}

	last := mock.GetLastRequestURL()
	for _, want := range []string{"start_date=2024-01-01", "end_date=2024-01-07"} {
		if !strings.Contains(last, want) {
			t.Errorf("upstream URL %q missing %q", last, want)
		}
	}
}

func TestClient_NEOFeed_OmitsEmptyDates(t *testing.T) {
	client, mock := setupClient(t)
	mock.SetResponse("/neo/rest/v1/feed", testutil.NewJSONResponse(`{}`))

	if _, err := client.NEOFeed(context.Background(), NEOFeedParams{}); err != nil {
		t.Fatalf("NEOFeed failed: %v", err)
	}

	last := mock.GetLastRequestURL()
	if strings.Contains(last, "start_date") || strings.Contains(last, "end_date") {
		t.Errorf("empty dates should be omitted, got %q", last)
	}
}

func TestClient_SmallBody(t *testing.T) {
	client, mock := setupClient(t)
	mock.SetResponse("/sbdb.api", testutil.NewJSONResponse(`{"object": {"des": "433"}}`))

	_, err := client.SmallBody(context.Background(), SmallBodyParams{Designation: "433"})
	if err != nil {
		t.Fatalf("SmallBody failed: %v", err)
	}

	last := mock.GetLastRequestURL()
	if !strings.Contains(last, "des=433") {
		t.Errorf("upstream URL %q missing des param", last)
	}
	if strings.Contains(last, "api_key") {
		t.Errorf("SSD API request should not carry an api_key, got %q", last)
	}
}

func TestClient_UpstreamServerError(t *testing.T) {
	client, mock := setupClient(t)
	mock.SetResponse("/planetary/apod", testutil.NewServerErrorResponse())

	_, err := client.APOD(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("error is %T, want *UpstreamError", err)
	}
	if upErr.Class != ClassServer {
		t.Errorf("Class = %q, want %q", upErr.Class, ClassServer)
	}
	if upErr.StatusCode != 500 {
		t.Errorf("StatusCode = %d, want 500", upErr.StatusCode)
	}
}

func TestClient_UpstreamClientError(t *testing.T) {
	client, mock := setupClient(t)
	mock.SetResponse("/sbdb.api", testutil.NewNotFoundResponse())

	_, err := client.SmallBody(context.Background(), SmallBodyParams{SPKID: "999"})

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("error is %T, want *UpstreamError", err)
	}
	if upErr.Class != ClassClient {
		t.Errorf("Class = %q, want %q", upErr.Class, ClassClient)
	}
}

func TestClient_NetworkError(t *testing.T) {
	client := New(Config{
		APIKey:  "TEST_KEY",
		BaseURL: "http://127.0.0.1:1", // nothing listening
		Timeout: time.Second,
	})

	_, err := client.APOD(context.Background(), nil)
	if err == nil {
		t.Fatal("expected network error")
	}

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("error is %T, want *UpstreamError", err)
	}
	if upErr.Class != ClassNetwork {
		t.Errorf("Class = %q, want %q", upErr.Class, ClassNetwork)
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	client, mock := setupClient(t)
	mock.SetResponse("/planetary/apod", testutil.MockResponse{
		StatusCode: 200,
		Body:       `{}`,
		Delay:      2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.APOD(ctx, nil)
	if err == nil {
		t.Fatal("expected error when context deadline is exceeded")
	}
}
