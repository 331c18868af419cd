// Package analytics defines the events emitted by the shortening and
// resolution paths and the store that persists them. Event publishing
// is always best-effort: a failed publish is logged and never fails the
// request that produced it.
package analytics

import "time"

// Topic names for the event bus.
const (
	TopicURLCreated = "url.created"
	TopicURLClicked = "url.clicked"
	TopicURLDeleted = "url.deleted"
)

// URLCreatedEvent is emitted when a URL is shortened.
type URLCreatedEvent struct {
	Slug        string    `json:"slug"`
	OriginalURL string    `json:"originalUrl"`
	OwnerID     *int64    `json:"ownerId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	ClientIP    string    `json:"clientIp"`
	UserAgent   string    `json:"userAgent"`
}

// URLClickedEvent is emitted on every successful resolution.
type URLClickedEvent struct {
	ID         string    `json:"id"`
	Slug       string    `json:"slug"`
	OccurredAt time.Time `json:"occurredAt"`
	ClientIP   string    `json:"clientIp"`
	UserAgent  string    `json:"userAgent"`
	Referrer   string    `json:"referrer"`
}

// URLDeletedEvent is emitted when an owner removes a record.
type URLDeletedEvent struct {
	Slug      string    `json:"slug"`
	OwnerID   int64     `json:"ownerId"`
	DeletedAt time.Time `json:"deletedAt"`
}
