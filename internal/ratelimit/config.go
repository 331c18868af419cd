package ratelimit

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// MetadataKey is the huma operation metadata key holding an
// EndpointConfig.
const MetadataKey = "rateLimit"

// LimitConfig is one max-per-window limit.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// EndpointConfig declares per-endpoint rate limiting via operation
// metadata. Endpoints without a config fall back to the middleware's
// default limits.
type EndpointConfig struct {
	// Limits replaces the default limits for this endpoint.
	Limits []LimitConfig

	// Disabled skips rate limiting entirely for this endpoint.
	Disabled bool
}

// GetEndpointConfig extracts the EndpointConfig from operation metadata,
// if present.
func GetEndpointConfig(ctx huma.Context) *EndpointConfig {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return nil
	}

	cfg, ok := op.Metadata[MetadataKey].(EndpointConfig)
	if !ok {
		return nil
	}

	return &cfg
}
