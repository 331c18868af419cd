package shortener

import "context"

// Store is the durable store contract the service depends on. The store
// is the sole source of truth: its errors always propagate to the caller,
// unlike cache errors which degrade to misses.
//
// Records are created in two phases: CreateURL assigns the id, then
// AttachSlug binds the derived slug. A record without a slug must never
// be visible through FindBySlug or FindByOriginalURL.
type Store interface {
	// CreateURL inserts a slug-less record and returns it with the
	// store-assigned id and timestamps filled in. Returns ErrConflict
	// when an anonymous record for the same original URL already exists.
	CreateURL(ctx context.Context, u *URL) (*URL, error)

	// AttachSlug binds slug to the record with the given id, making it
	// visible to readers.
	AttachSlug(ctx context.Context, id int64, slug string) error

	// FindBySlug returns the active record for slug, or ErrNotFound.
	FindBySlug(ctx context.Context, slug string) (*URL, error)

	// FindByOriginalURL returns the active anonymous record for
	// originalURL, or ErrNotFound. Owned records are never matched.
	FindByOriginalURL(ctx context.Context, originalURL string) (*URL, error)

	// IncrementHitCount bumps the hit counter and last-access time of
	// the record for slug.
	IncrementHitCount(ctx context.Context, slug string) error

	// DeleteURL removes the record with the given id from the lookup path.
	DeleteURL(ctx context.Context, id int64) error

	// ListByOwner returns all records owned by ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID int64) ([]*URL, error)
}
