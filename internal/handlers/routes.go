package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortly/internal/ratelimit"
)

// RegisterRoutes registers all URL shortener routes with per-endpoint rate limit configuration.
func RegisterRoutes(api huma.API, urlHandler *URLHandler, healthHandler *HealthHandler) {
	// POST /shorten - Create short URL
	// Uses stricter rate limits for write operations
	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/shorten",
		Summary:     "Shorten a URL",
		Description: "Creates a short URL. Anonymous requests for the same URL reuse the existing slug.",
		Tags:        []string{"URLs"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 10},     // 10 per minute
					{Window: time.Hour, Max: 100},      // 100 per hour
					{Window: 24 * time.Hour, Max: 500}, // 500 per day
				},
			},
		},
	}, urlHandler.Shorten)

	// GET /{slug} - Redirect to original URL
	// Uses relaxed rate limits for high-traffic read operations
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/{slug}",
		Summary:     "Redirect to original URL",
		Description: "Redirects to the original URL associated with the slug.",
		Tags:        []string{"URLs"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 1000}, // 1000 per minute
				},
			},
		},
	}, urlHandler.Redirect)

	// DELETE /urls/{slug} - Delete an owned short URL
	huma.Register(api, huma.Operation{
		Method:        http.MethodDelete,
		Path:          "/urls/{slug}",
		Summary:       "Delete a short URL",
		Description:   "Deletes a short URL owned by the authenticated caller.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusNoContent,
	}, urlHandler.Delete)

	// GET /urls - List owned short URLs
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/urls",
		Summary:     "List short URLs",
		Description: "Lists all short URLs owned by the authenticated caller.",
		Tags:        []string{"URLs"},
	}, urlHandler.List)

	// GET /health - Health check, exempt from rate limiting
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Reports connectivity of backing services.",
		Tags:        []string{"Health"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, healthHandler.Check)
}
