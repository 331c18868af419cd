package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortly/internal/analytics"
	"go.uber.org/zap"
)

// Postgres persists click events to the url_clicks table. Creation and
// deletion are already durable in the urls table, so those events are
// only logged for audit.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres creates a Postgres-backed analytics store.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) *Postgres {
	return &Postgres{pool: pool, logger: logger}
}

func (p *Postgres) RecordCreated(_ context.Context, event *analytics.URLCreatedEvent) error {
	p.logger.Info("url created",
		zap.String("slug", event.Slug),
		zap.String("originalUrl", event.OriginalURL),
	)

	return nil
}

func (p *Postgres) RecordClick(ctx context.Context, event *analytics.URLClickedEvent) error {
	query := `
		INSERT INTO url_clicks (id, slug, occurred_at, client_ip, user_agent, referrer)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		event.ID,
		event.Slug,
		event.OccurredAt,
		event.ClientIP,
		event.UserAgent,
		event.Referrer,
	)

	return err
}

func (p *Postgres) RecordDeleted(_ context.Context, event *analytics.URLDeletedEvent) error {
	p.logger.Info("url deleted",
		zap.String("slug", event.Slug),
		zap.Int64("ownerId", event.OwnerID),
	)

	return nil
}

var _ analytics.Store = (*Postgres)(nil)
