package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/serroba/shortly/internal/base62"
	"github.com/serroba/shortly/internal/cache"
	"go.uber.org/zap"
)

// Service is the resolution engine. It is stateless per request and
// holds no locks across store or cache calls; uniqueness is delegated to
// the store's constraints.
type Service struct {
	store     Store
	cache     Cache
	strategy  Strategy
	slugWidth int
	ttl       time.Duration
	logger    *zap.Logger
}

// Cache is the advisory front the service consults before the store.
// Declared here so the core depends only on what it calls; satisfied by
// the implementations in the cache package.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

func slugKey(slug string) string { return cache.SlugKey(slug) }

func urlKey(originalURL string) string { return cache.URLKey(originalURL) }

// NewService creates the resolution engine with its collaborators.
func NewService(store Store, c Cache, strategy Strategy, slugWidth int, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		cache:     c,
		strategy:  strategy,
		slugWidth: slugWidth,
		ttl:       ttl,
		logger:    logger,
	}
}

// Shorten returns a record mapping originalURL to a slug.
//
// Anonymous requests are idempotent: the cache and then the store are
// consulted for an existing record before a new one is created. Owned
// requests always create a new record, so the same URL may carry several
// slugs under different (or the same) owner.
func (s *Service) Shorten(ctx context.Context, originalURL string, ownerID *int64, title, description string) (*URL, error) {
	if err := ValidateURL(originalURL); err != nil {
		return nil, err
	}

	if ownerID == nil {
		// Cache hits return only the slug mapping. CreatedAt stays zero,
		// which marks the record as served rather than created.
		if slug, ok := s.cacheGet(ctx, urlKey(originalURL)); ok {
			return &URL{Slug: slug, OriginalURL: originalURL}, nil
		}

		existing, err := s.store.FindByOriginalURL(ctx, originalURL)
		if err == nil {
			s.cacheRecord(ctx, existing)

			return existing, nil
		}

		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("find by original url: %w", err)
		}
	}

	return s.create(ctx, originalURL, ownerID, title, description)
}

func (s *Service) create(ctx context.Context, originalURL string, ownerID *int64, title, description string) (*URL, error) {
	created, err := s.store.CreateURL(ctx, &URL{
		OriginalURL: originalURL,
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
	})
	if err != nil {
		// Two anonymous writers raced past the existence check; the
		// store's uniqueness constraint picked a winner. Return its slug.
		if ownerID == nil && errors.Is(err, ErrConflict) {
			winner, findErr := s.store.FindByOriginalURL(ctx, originalURL)
			if findErr != nil {
				return nil, fmt.Errorf("reread after conflict: %w", findErr)
			}

			s.cacheRecord(ctx, winner)

			return winner, nil
		}

		return nil, fmt.Errorf("create url: %w", err)
	}

	slug, err := s.strategy.Allocate(ctx, created)
	if err != nil {
		return nil, fmt.Errorf("allocate slug: %w", err)
	}

	created.Slug = slug
	s.cacheRecord(ctx, created)

	return created, nil
}

// Resolve maps a slug back to its original URL. On a cache hit the store
// is not touched at all; on a miss the store record's hit count and
// last-access time are bumped and the cache is repopulated.
func (s *Service) Resolve(ctx context.Context, slug string) (string, error) {
	// Obviously malformed slugs never reach the store.
	if len(slug) != s.slugWidth || !base62.IsValid(slug) {
		return "", ErrNotFound
	}

	if originalURL, ok := s.cacheGet(ctx, slugKey(slug)); ok {
		return originalURL, nil
	}

	record, err := s.store.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}

		return "", fmt.Errorf("find by slug: %w", err)
	}

	if err := s.store.IncrementHitCount(ctx, slug); err != nil {
		return "", fmt.Errorf("increment hit count: %w", err)
	}

	s.cacheSet(ctx, slugKey(slug), record.OriginalURL)

	return record.OriginalURL, nil
}

// Delete removes the record for slug on behalf of ownerID and evicts both
// cache namespaces. Anonymous records have no owner to match, so they are
// never deletable through this path.
func (s *Service) Delete(ctx context.Context, slug string, ownerID int64) error {
	record, err := s.store.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}

		return fmt.Errorf("find by slug: %w", err)
	}

	if record.OwnerID == nil || *record.OwnerID != ownerID {
		return ErrAccessDenied
	}

	if err := s.store.DeleteURL(ctx, record.ID); err != nil {
		return fmt.Errorf("delete url: %w", err)
	}

	// Evict both namespaces unconditionally; deleting an absent long:
	// key is a no-op.
	s.cacheDelete(ctx, slugKey(slug))
	s.cacheDelete(ctx, urlKey(record.OriginalURL))

	return nil
}

// List returns all records owned by ownerID.
func (s *Service) List(ctx context.Context, ownerID int64) ([]*URL, error) {
	records, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list by owner: %w", err)
	}

	return records, nil
}

// cacheRecord populates the slug namespace, plus the URL namespace for
// anonymous records only.
func (s *Service) cacheRecord(ctx context.Context, record *URL) {
	s.cacheSet(ctx, slugKey(record.Slug), record.OriginalURL)

	if record.Anonymous() {
		s.cacheSet(ctx, urlKey(record.OriginalURL), record.Slug)
	}
}

// The cache helpers absorb every cache failure: an error is logged and
// treated exactly as a miss so the store path stays correct when the
// cache backend is down.

func (s *Service) cacheGet(ctx context.Context, key string) (string, bool) {
	val, err := s.cache.Get(ctx, key)
	if err != nil {
		if !isMiss(err) {
			s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}

		return "", false
	}

	return val, true
}

func (s *Service) cacheSet(ctx context.Context, key, value string) {
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Service) cacheDelete(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("cache delete failed", zap.String("key", key), zap.Error(err))
	}
}

func isMiss(err error) bool {
	return errors.Is(err, cache.ErrMiss)
}
