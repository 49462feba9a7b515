package nasa

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   Class
	}{
		{
			name:   "400 is client",
			status: 400,
			want:   ClassClient,
		},
		{
			name:   "404 is client",
			status: 404,
			want:   ClassClient,
		},
		{
			name:   "429 is client",
			status: 429,
			want:   ClassClient,
		},
		{
			name:   "500 is server",
			status: 500,
			want:   ClassServer,
		},
		{
			name:   "503 is server",
			status: 503,
			want:   ClassServer,
		},
		{
			name:   "200 is unclassified",
			status: 200,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyStatus(tt.status); got != tt.want {
				t.Errorf("classifyStatus(%d) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestUpstreamError_Error(t *testing.T) {
	err := &UpstreamError{
		Endpoint:   "apod",
		StatusCode: 503,
		Class:      ClassServer,
		Message:    "503 Service Unavailable",
	}

	msg := err.Error()
	for _, want := range []string{"server", "apod", "503"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestUpstreamError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &UpstreamError{
		Endpoint: "neo",
		Class:    ClassNetwork,
		Message:  "upstream request failed",
		Err:      inner,
	}

	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}

	wrapped := fmt.Errorf("handler: %w", err)
	var upErr *UpstreamError
	if !errors.As(wrapped, &upErr) {
		t.Error("errors.As should find *UpstreamError through wrapping")
	}
}
