package cache

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrCacheMiss indicates the requested key was not found or has expired
	ErrCacheMiss = errors.New("cache miss")
)

const (
	// DefaultTTL is the time-to-live applied when Set is called with a
	// non-positive TTL.
	DefaultTTL = 5 * time.Minute

	// DefaultSweepInterval is the default period of the background sweep
	// that removes expired entries. Expired entries are also removed
	// lazily on read, so the sweep only bounds memory held by keys that
	// are never requested again.
	DefaultSweepInterval = 10 * time.Minute
)

// Store is an in-memory TTL cache. All state lives in the process; nothing
// survives a restart and nothing is shared across instances.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*Entry

	done chan struct{}
	once sync.Once
}

// NewStore creates a new in-memory cache store.
// If sweepInterval > 0 a background goroutine periodically removes expired
// entries; it runs until Close is called.
func NewStore(sweepInterval time.Duration) *Store {
	s := &Store{
		entries: make(map[string]*Entry),
		done:    make(chan struct{}),
	}

	if sweepInterval > 0 {
		go s.sweepLoop(sweepInterval)
	}

	return s
}

// Get retrieves a cache entry by key.
// Returns ErrCacheMiss if the key doesn't exist or the entry has expired.
// Expired entries are deleted on read.
func (s *Store) Get(key Key) (*Entry, error) {
	cacheKey := key.String()

	s.mu.RLock()
	entry, ok := s.entries[cacheKey]
	s.mu.RUnlock()

	if !ok {
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	}

	if entry.IsExpired() {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// replaced the entry with a fresh one.
		if cur, ok := s.entries[cacheKey]; ok && cur.IsExpired() {
			delete(s.entries, cacheKey)
			CacheEntries.Set(float64(len(s.entries)))
		}
		s.mu.Unlock()
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	}

	CacheHits.Inc()
	return entry, nil
}

// Set stores the data under key with the given TTL, replacing any existing
// entry. A non-positive TTL falls back to DefaultTTL.
func (s *Store) Set(key Key, data []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := time.Now()
	entry := &Entry{
		Data:     data,
		Expires:  now.Add(ttl),
		CachedAt: now,
	}

	s.mu.Lock()
	s.entries[key.String()] = entry
	CacheEntries.Set(float64(len(s.entries)))
	s.mu.Unlock()
}

// Delete removes a cache entry.
func (s *Store) Delete(key Key) {
	s.mu.Lock()
	delete(s.entries, key.String())
	CacheEntries.Set(float64(len(s.entries)))
	s.mu.Unlock()
}

// Len returns the number of entries currently held, including entries that
// have expired but not yet been swept.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep removes all expired entries and returns the number removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, entry := range s.entries {
		if entry.IsExpired() {
			delete(s.entries, key)
			removed++
		}
	}

	if removed > 0 {
		CacheSweepRemovals.Add(float64(removed))
		CacheEntries.Set(float64(len(s.entries)))
	}

	return removed
}

// Close stops the background sweep goroutine. Safe to call multiple times.
func (s *Store) Close() {
	s.once.Do(func() {
		close(s.done)
	})
}

func (s *Store) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.done:
			return
		}
	}
}
