package ratelimit

import (
	"context"
	"time"
)

// Store records requests per key inside a sliding window.
type Store interface {
	// Record counts a request against key and returns the number of
	// requests in the current window, pruning expired entries.
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}
