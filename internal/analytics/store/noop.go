package store

import (
	"context"

	"github.com/serroba/shortly/internal/analytics"
	"go.uber.org/zap"
)

// Noop is an analytics.Store that only logs events. Used when the
// consumer runs without a database.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new log-only analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) RecordCreated(_ context.Context, event *analytics.URLCreatedEvent) error {
	n.logger.Info("url created",
		zap.String("slug", event.Slug),
		zap.String("originalUrl", event.OriginalURL),
		zap.Time("createdAt", event.CreatedAt),
	)

	return nil
}

func (n *Noop) RecordClick(_ context.Context, event *analytics.URLClickedEvent) error {
	n.logger.Info("url clicked",
		zap.String("slug", event.Slug),
		zap.Time("occurredAt", event.OccurredAt),
		zap.String("referrer", event.Referrer),
	)

	return nil
}

func (n *Noop) RecordDeleted(_ context.Context, event *analytics.URLDeletedEvent) error {
	n.logger.Info("url deleted",
		zap.String("slug", event.Slug),
		zap.Int64("ownerId", event.OwnerID),
		zap.Time("deletedAt", event.DeletedAt),
	)

	return nil
}

var _ analytics.Store = (*Noop)(nil)
