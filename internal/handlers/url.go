package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/serroba/shortly/internal/analytics"
	"github.com/serroba/shortly/internal/auth"
	"github.com/serroba/shortly/internal/messaging"
	"github.com/serroba/shortly/internal/shortener"
	"go.uber.org/zap"
)

// URLHandler handles URL shortening operations.
type URLHandler struct {
	service           *shortener.Service
	baseURL           string
	publishURLCreated messaging.Publish[analytics.URLCreatedEvent]
	publishURLClicked messaging.Publish[analytics.URLClickedEvent]
	publishURLDeleted messaging.Publish[analytics.URLDeletedEvent]
	logger            *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(
	service *shortener.Service,
	baseURL string,
	publishURLCreated messaging.Publish[analytics.URLCreatedEvent],
	publishURLClicked messaging.Publish[analytics.URLClickedEvent],
	publishURLDeleted messaging.Publish[analytics.URLDeletedEvent],
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		service:           service,
		baseURL:           baseURL,
		publishURLCreated: publishURLCreated,
		publishURLClicked: publishURLClicked,
		publishURLDeleted: publishURLDeleted,
		logger:            logger,
	}
}

type requestMetaKey struct{}

// RequestMeta holds HTTP request metadata for analytics.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	Referrer  string
}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}

func (h *URLHandler) Shorten(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	var ownerID *int64

	if id, ok := auth.OwnerFromContext(ctx); ok {
		ownerID = &id
	}

	record, err := h.service.Shorten(ctx, req.Body.URL, ownerID, req.Body.Title, req.Body.Description)
	if err != nil {
		if errors.Is(err, shortener.ErrInvalidURL) {
			return nil, huma.Error400BadRequest("invalid url: must be absolute http or https")
		}

		if errors.Is(err, shortener.ErrSlugExhausted) {
			return nil, huma.Error503ServiceUnavailable("slug space exhausted")
		}

		return nil, huma.Error500InternalServerError("failed to shorten url")
	}

	// Records served from the URL cache carry no creation time: nothing
	// was created for this request, so no created event is published.
	if !record.CreatedAt.IsZero() {
		meta := RequestMetaFromContext(ctx)
		event := &analytics.URLCreatedEvent{
			Slug:        record.Slug,
			OriginalURL: record.OriginalURL,
			OwnerID:     record.OwnerID,
			CreatedAt:   record.CreatedAt,
			ClientIP:    meta.ClientIP,
			UserAgent:   meta.UserAgent,
		}

		if err := h.publishURLCreated(event); err != nil {
			h.logger.Error("failed to publish created event",
				zap.String("slug", event.Slug),
				zap.Error(err),
			)
		}
	}

	shortURL := fmt.Sprintf("%s/%s", h.baseURL, record.Slug)

	resp := &ShortenResponse{}
	resp.Headers.Location = shortURL
	resp.Body.Slug = record.Slug
	resp.Body.ShortURL = shortURL
	resp.Body.OriginalURL = record.OriginalURL

	return resp, nil
}

func (h *URLHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	originalURL, err := h.service.Resolve(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short url not found")
		}

		return nil, huma.Error500InternalServerError("failed to resolve url")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.URLClickedEvent{
		ID:         uuid.NewString(),
		Slug:       req.Slug,
		OccurredAt: time.Now(),
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
	}

	if err := h.publishURLClicked(event); err != nil {
		h.logger.Error("failed to publish click event",
			zap.String("slug", event.Slug),
			zap.Error(err),
		)
	}

	resp := &RedirectResponse{
		Status: http.StatusMovedPermanently,
	}
	resp.Headers.Location = originalURL

	return resp, nil
}

func (h *URLHandler) Delete(ctx context.Context, req *DeleteURLRequest) (*DeleteURLResponse, error) {
	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	if err := h.service.Delete(ctx, req.Slug, ownerID); err != nil {
		switch {
		case errors.Is(err, shortener.ErrNotFound):
			return nil, huma.Error404NotFound("short url not found")
		case errors.Is(err, shortener.ErrAccessDenied):
			return nil, huma.Error403Forbidden("not the owner of this short url")
		default:
			return nil, huma.Error500InternalServerError("failed to delete url")
		}
	}

	event := &analytics.URLDeletedEvent{
		Slug:      req.Slug,
		OwnerID:   ownerID,
		DeletedAt: time.Now(),
	}

	if err := h.publishURLDeleted(event); err != nil {
		h.logger.Error("failed to publish deleted event",
			zap.String("slug", event.Slug),
			zap.Error(err),
		)
	}

	return &DeleteURLResponse{}, nil
}

func (h *URLHandler) List(ctx context.Context, _ *struct{}) (*ListURLsResponse, error) {
	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	records, err := h.service.List(ctx, ownerID)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list urls")
	}

	resp := &ListURLsResponse{}
	resp.Body.URLs = make([]URLSummary, 0, len(records))

	for _, record := range records {
		resp.Body.URLs = append(resp.Body.URLs, URLSummary{
			Slug:        record.Slug,
			ShortURL:    fmt.Sprintf("%s/%s", h.baseURL, record.Slug),
			OriginalURL: record.OriginalURL,
			Title:       record.Title,
			Description: record.Description,
			HitCount:    record.HitCount,
			CreatedAt:   record.CreatedAt,
			LastAccess:  record.LastAccess,
		})
	}

	return resp, nil
}
