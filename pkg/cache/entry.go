package cache

import (
	"time"
)

// Entry represents a cached upstream response.
type Entry struct {
	// Data is the raw JSON response body
	Data []byte

	// Expires is when the cache entry becomes stale
	Expires time.Time

	// CachedAt is when the response was stored
	CachedAt time.Time
}

// IsExpired returns true if the cache entry has expired.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time until expiration.
// Returns 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}
