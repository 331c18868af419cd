package shortener

import (
	"context"
	"errors"
	"fmt"

	"github.com/serroba/shortly/internal/base62"
)

// Strategy allocates a unique slug for a freshly created record and
// attaches it to the record's id. Allocate is called exactly once per
// record, after CreateURL assigned the id and before the record is
// exposed to any reader.
type Strategy interface {
	Allocate(ctx context.Context, u *URL) (string, error)
}

// SlugGenerator produces random fixed-length base62 slugs.
type SlugGenerator func() string

// SequentialStrategy derives the slug from the record id via base62.
// The id sequence is monotonic and never reused, so this is collision-free
// by construction and needs no existence check.
type SequentialStrategy struct {
	store Store
	width int
}

// NewSequentialStrategy creates an id-derived allocation strategy
// producing slugs of the given width.
func NewSequentialStrategy(store Store, width int) *SequentialStrategy {
	return &SequentialStrategy{store: store, width: width}
}

func (s *SequentialStrategy) Allocate(ctx context.Context, u *URL) (string, error) {
	slug, err := base62.Encode(uint64(u.ID), s.width)
	if err != nil {
		return "", fmt.Errorf("encode slug for id %d: %w", u.ID, err)
	}

	if err := s.store.AttachSlug(ctx, u.ID, slug); err != nil {
		return "", fmt.Errorf("attach slug: %w", err)
	}

	return slug, nil
}

// maxAllocationAttempts bounds collision retries for the random strategy.
const maxAllocationAttempts = 10

// RandomStrategy draws random slugs and retries on collision. Used when
// slugs must not reveal creation order. Every attempt checks the store,
// not the cache: the cache is not a completeness oracle.
type RandomStrategy struct {
	store    Store
	generate SlugGenerator
}

// NewRandomStrategy creates a random allocation strategy backed by the
// given generator (typically nanoid over the base62 alphabet).
func NewRandomStrategy(store Store, generate SlugGenerator) *RandomStrategy {
	return &RandomStrategy{store: store, generate: generate}
}

func (s *RandomStrategy) Allocate(ctx context.Context, u *URL) (string, error) {
	for attempt := 0; attempt < maxAllocationAttempts; attempt++ {
		slug := s.generate()

		_, err := s.store.FindBySlug(ctx, slug)
		if err == nil {
			// Collision, draw again.
			continue
		}

		if !errors.Is(err, ErrNotFound) {
			return "", fmt.Errorf("check slug collision: %w", err)
		}

		if err := s.store.AttachSlug(ctx, u.ID, slug); err != nil {
			return "", fmt.Errorf("attach slug: %w", err)
		}

		return slug, nil
	}

	return "", ErrSlugExhausted
}

var (
	_ Strategy = (*SequentialStrategy)(nil)
	_ Strategy = (*RandomStrategy)(nil)
)
