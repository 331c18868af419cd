package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/shortly/internal/ratelimit"
)

// RateLimitMemoryStore is an in-memory ratelimit.Store for tests and
// single-instance deployments without Redis.
type RateLimitMemoryStore struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	now     func() time.Time
}

// NewRateLimitMemoryStore creates a new in-memory rate limit store.
func NewRateLimitMemoryStore() *RateLimitMemoryStore {
	return &RateLimitMemoryStore{
		windows: make(map[string][]time.Time),
		now:     time.Now,
	}
}

func (s *RateLimitMemoryStore) Record(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-window)

	// Prune expired timestamps in place before counting this request.
	kept := s.windows[key][:0]

	for _, ts := range s.windows[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	kept = append(kept, now)
	s.windows[key] = kept

	return int64(len(kept)), nil
}

// Purge drops keys whose every recorded timestamp is older than window.
func (s *RateLimitMemoryStore) Purge(window time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-window)

	for key, timestamps := range s.windows {
		stale := true

		for _, ts := range timestamps {
			if ts.After(cutoff) {
				stale = false

				break
			}
		}

		if stale {
			delete(s.windows, key)
		}
	}
}

var _ ratelimit.Store = (*RateLimitMemoryStore)(nil)
