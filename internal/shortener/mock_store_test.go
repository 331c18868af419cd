package shortener_test

import (
	"context"
	"errors"
	"time"

	"github.com/serroba/shortly/internal/shortener"
)

// stubStore returns canned errors; every zero-value method fails loudly
// so tests only exercise the calls they configure.
type stubStore struct {
	createErr     error
	createFn      func(ctx context.Context, u *shortener.URL) (*shortener.URL, error)
	findBySlugErr error
	findByURLFn   func(ctx context.Context, originalURL string) (*shortener.URL, error)
}

var errStubNotConfigured = errors.New("stub store call not configured")

func (s *stubStore) CreateURL(ctx context.Context, u *shortener.URL) (*shortener.URL, error) {
	if s.createFn != nil {
		return s.createFn(ctx, u)
	}

	if s.createErr != nil {
		return nil, s.createErr
	}

	return nil, errStubNotConfigured
}

func (s *stubStore) AttachSlug(context.Context, int64, string) error {
	return nil
}

func (s *stubStore) FindBySlug(context.Context, string) (*shortener.URL, error) {
	if s.findBySlugErr != nil {
		return nil, s.findBySlugErr
	}

	return nil, errStubNotConfigured
}

func (s *stubStore) FindByOriginalURL(ctx context.Context, originalURL string) (*shortener.URL, error) {
	if s.findByURLFn != nil {
		return s.findByURLFn(ctx, originalURL)
	}

	return nil, errStubNotConfigured
}

func (s *stubStore) IncrementHitCount(context.Context, string) error {
	return nil
}

func (s *stubStore) DeleteURL(context.Context, int64) error {
	return errStubNotConfigured
}

func (s *stubStore) ListByOwner(context.Context, int64) ([]*shortener.URL, error) {
	return nil, errStubNotConfigured
}

// countingStore wraps a real store and counts lookups, so tests can
// assert the cache short-circuited (or did not).
type countingStore struct {
	shortener.Store

	findBySlugCalls int
	findByURLCalls  int
	incrementCalls  int
}

func (c *countingStore) FindBySlug(ctx context.Context, slug string) (*shortener.URL, error) {
	c.findBySlugCalls++

	return c.Store.FindBySlug(ctx, slug)
}

func (c *countingStore) FindByOriginalURL(ctx context.Context, originalURL string) (*shortener.URL, error) {
	c.findByURLCalls++

	return c.Store.FindByOriginalURL(ctx, originalURL)
}

func (c *countingStore) IncrementHitCount(ctx context.Context, slug string) error {
	c.incrementCalls++

	return c.Store.IncrementHitCount(ctx, slug)
}

// failingCache errors on every operation, modelling an unavailable
// backend.
type failingCache struct{}

var errCacheDown = errors.New("cache backend unavailable")

func (failingCache) Get(context.Context, string) (string, error) {
	return "", errCacheDown
}

func (failingCache) Set(context.Context, string, string, time.Duration) error {
	return errCacheDown
}

func (failingCache) Delete(context.Context, string) error {
	return errCacheDown
}
