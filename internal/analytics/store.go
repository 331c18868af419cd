package analytics

import "context"

// Store persists analytics events consumed from the bus.
type Store interface {
	RecordCreated(ctx context.Context, event *URLCreatedEvent) error
	RecordClick(ctx context.Context, event *URLClickedEvent) error
	RecordDeleted(ctx context.Context, event *URLDeletedEvent) error
}
