// Package cache provides the advisory key-value front over the durable
// store. Entries are a disposable projection: the service treats every
// cache failure as a miss and falls through to the store.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Cache is the contract the resolution service depends on. Implementations
// must be safe for concurrent use; expiry is enforced by the backend.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Two logical namespaces share one physical keyspace via prefixes.
const (
	slugPrefix = "short:"
	urlPrefix  = "long:"
)

// SlugKey is the slug -> original URL namespace.
func SlugKey(slug string) string {
	return slugPrefix + slug
}

// URLKey is the original URL -> slug namespace. Populated only for
// anonymous records: owned URLs may legitimately map to several slugs,
// and a single cached slug would leak across owners.
func URLKey(originalURL string) string {
	return urlPrefix + originalURL
}
