package cache

import (
	"net/url"
	"strings"
)

// Key identifies a cached upstream response.
type Key struct {
	// Endpoint is the logical endpoint name (e.g., "apod", "mars", "neo")
	Endpoint string

	// Params are the caller-supplied query parameters
	Params url.Values
}

// String generates a deterministic cache key string.
// Format: nasa:endpoint:param1=val1&param2=val2
//
// Parameters are serialized with url.Values.Encode: keys are sorted, so two
// logically identical requests produce the same key regardless of the order
// the parameters arrived in; values are percent-escaped and repeated values
// are preserved, so distinct parameter sets never collide on one key.
//
// Example:
//   nasa:mars:earth_date=2020-07-01&rover=curiosity
func (k Key) String() string {
	parts := []string{"nasa"}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	if encoded := k.Params.Encode(); encoded != "" {
		parts = append(parts, encoded)
	}

	return strings.Join(parts, ":")
}
