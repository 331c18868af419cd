package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/serroba/shortly/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Store used in
// tests and local development. It enforces the same constraints as the
// Postgres schema: unique slugs and at most one anonymous record per
// original URL.
type MemoryStore struct {
	mu     sync.RWMutex
	urls   map[int64]*shortener.URL
	nextID int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		urls:   make(map[int64]*shortener.URL),
		nextID: 1,
	}
}

func (m *MemoryStore) CreateURL(_ context.Context, u *shortener.URL) (*shortener.URL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u.OwnerID == nil {
		for _, existing := range m.urls {
			if existing.OwnerID == nil && existing.OriginalURL == u.OriginalURL {
				return nil, shortener.ErrConflict
			}
		}
	}

	now := time.Now()
	record := &shortener.URL{
		ID:          m.nextID,
		OriginalURL: u.OriginalURL,
		OwnerID:     u.OwnerID,
		Title:       u.Title,
		Description: u.Description,
		CreatedAt:   now,
		LastAccess:  now,
	}
	m.urls[record.ID] = record
	m.nextID++

	copied := *record

	return &copied, nil
}

func (m *MemoryStore) AttachSlug(_ context.Context, id int64, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.urls[id]
	if !ok {
		return shortener.ErrNotFound
	}

	record.Slug = slug

	return nil
}

func (m *MemoryStore) FindBySlug(_ context.Context, slug string) (*shortener.URL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Records in the create-then-attach window have no slug yet and are
	// invisible here.
	if slug == "" {
		return nil, shortener.ErrNotFound
	}

	for _, record := range m.urls {
		if record.Slug == slug {
			copied := *record

			return &copied, nil
		}
	}

	return nil, shortener.ErrNotFound
}

func (m *MemoryStore) FindByOriginalURL(_ context.Context, originalURL string) (*shortener.URL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.urls {
		if record.OwnerID == nil && record.OriginalURL == originalURL && record.Slug != "" {
			copied := *record

			return &copied, nil
		}
	}

	return nil, shortener.ErrNotFound
}

func (m *MemoryStore) IncrementHitCount(_ context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if slug == "" {
		return shortener.ErrNotFound
	}

	for _, record := range m.urls {
		if record.Slug == slug {
			record.HitCount++
			record.LastAccess = time.Now()

			return nil
		}
	}

	return shortener.ErrNotFound
}

func (m *MemoryStore) DeleteURL(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.urls[id]; !ok {
		return shortener.ErrNotFound
	}

	delete(m.urls, id)

	return nil
}

func (m *MemoryStore) ListByOwner(_ context.Context, ownerID int64) ([]*shortener.URL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var records []*shortener.URL

	for _, record := range m.urls {
		if record.OwnerID != nil && *record.OwnerID == ownerID {
			copied := *record
			records = append(records, &copied)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ID > records[j].ID
	})

	return records, nil
}

// Len reports the number of records. Test helper.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.urls)
}

var _ shortener.Store = (*MemoryStore)(nil)
