package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortly/internal/shortener"
)

// uniqueViolation is the Postgres error code raised when an insert hits
// the partial unique index on anonymous original URLs.
const uniqueViolation = "23505"

// PostgresStore is the PostgreSQL implementation of shortener.Store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed URL store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) CreateURL(ctx context.Context, u *shortener.URL) (*shortener.URL, error) {
	query := `
		INSERT INTO urls (original_url, owner_id, title, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, last_accessed_at
	`

	record := &shortener.URL{
		OriginalURL: u.OriginalURL,
		OwnerID:     u.OwnerID,
		Title:       u.Title,
		Description: u.Description,
	}

	err := p.pool.QueryRow(ctx, query,
		u.OriginalURL,
		u.OwnerID,
		u.Title,
		u.Description,
	).Scan(&record.ID, &record.CreatedAt, &record.LastAccess)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, shortener.ErrConflict
		}

		return nil, err
	}

	return record, nil
}

func (p *PostgresStore) AttachSlug(ctx context.Context, id int64, slug string) error {
	query := `
		UPDATE urls
		SET slug = $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := p.pool.Exec(ctx, query, id, slug)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrNotFound
	}

	return nil
}

func (p *PostgresStore) FindBySlug(ctx context.Context, slug string) (*shortener.URL, error) {
	query := `
		SELECT id, slug, original_url, owner_id, title, description, hit_count, created_at, last_accessed_at
		FROM urls
		WHERE slug = $1
	`

	return p.scanOne(p.pool.QueryRow(ctx, query, slug))
}

func (p *PostgresStore) FindByOriginalURL(ctx context.Context, originalURL string) (*shortener.URL, error) {
	// Slug-less rows are still inside the create-then-attach window and
	// must stay invisible.
	query := `
		SELECT id, slug, original_url, owner_id, title, description, hit_count, created_at, last_accessed_at
		FROM urls
		WHERE original_url = $1 AND owner_id IS NULL AND slug IS NOT NULL
	`

	return p.scanOne(p.pool.QueryRow(ctx, query, originalURL))
}

func (p *PostgresStore) IncrementHitCount(ctx context.Context, slug string) error {
	query := `
		UPDATE urls
		SET hit_count = hit_count + 1, last_accessed_at = now(), updated_at = now()
		WHERE slug = $1
	`

	tag, err := p.pool.Exec(ctx, query, slug)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrNotFound
	}

	return nil
}

func (p *PostgresStore) DeleteURL(ctx context.Context, id int64) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM urls WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrNotFound
	}

	return nil
}

func (p *PostgresStore) ListByOwner(ctx context.Context, ownerID int64) ([]*shortener.URL, error) {
	query := `
		SELECT id, slug, original_url, owner_id, title, description, hit_count, created_at, last_accessed_at
		FROM urls
		WHERE owner_id = $1 AND slug IS NOT NULL
		ORDER BY created_at DESC
	`

	rows, err := p.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*shortener.URL

	for rows.Next() {
		record, err := scanURL(rows.Scan)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

func (p *PostgresStore) scanOne(row pgx.Row) (*shortener.URL, error) {
	record, err := scanURL(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return record, nil
}

func scanURL(scan func(dest ...any) error) (*shortener.URL, error) {
	var record shortener.URL

	var slug *string

	err := scan(
		&record.ID,
		&slug,
		&record.OriginalURL,
		&record.OwnerID,
		&record.Title,
		&record.Description,
		&record.HitCount,
		&record.CreatedAt,
		&record.LastAccess,
	)
	if err != nil {
		return nil, err
	}

	if slug != nil {
		record.Slug = *slug
	}

	return &record, nil
}

var _ shortener.Store = (*PostgresStore)(nil)
