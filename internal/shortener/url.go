// Package shortener implements the core of the service: slug allocation
// and the resolution engine orchestrating the cache and the durable store.
package shortener

import (
	"errors"
	"net/url"
	"time"
)

// URL is the canonical slug -> original URL mapping record. The durable
// store owns it; the cache only ever holds projections of it.
type URL struct {
	ID          int64
	Slug        string
	OriginalURL string
	OwnerID     *int64 // nil means anonymous
	Title       string
	Description string
	HitCount    int64
	CreatedAt   time.Time
	LastAccess  time.Time
}

// Anonymous reports whether the record has no owning principal.
func (u *URL) Anonymous() bool {
	return u.OwnerID == nil
}

var (
	// ErrInvalidURL is returned when the input is not an absolute
	// http/https URL. Rejected before any store access.
	ErrInvalidURL = errors.New("invalid url format")

	// ErrNotFound is returned when no active record matches a slug or
	// original URL.
	ErrNotFound = errors.New("url not found")

	// ErrAccessDenied is returned when a delete is requested by a
	// principal that does not own the record.
	ErrAccessDenied = errors.New("access denied")

	// ErrSlugExhausted is returned when the random strategy runs out of
	// collision-retry attempts.
	ErrSlugExhausted = errors.New("slug allocation attempts exhausted")

	// ErrConflict is returned by stores when an insert violates the
	// anonymous original-URL uniqueness constraint. The service recovers
	// by re-reading the winning record.
	ErrConflict = errors.New("url already exists")
)

// ValidateURL rejects anything that is not an absolute http or https URL.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ErrInvalidURL
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}

	return nil
}
