package middleware

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortly/internal/auth"
)

// Auth returns a Huma middleware that resolves the request owner from a
// bearer token. Requests without an Authorization header pass through
// anonymously; requests with an invalid token are rejected.
func Auth(api huma.API, tokens *auth.TokenManager) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")
		if header == "" {
			next(ctx)

			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "malformed authorization header")

			return
		}

		ownerID, err := tokens.Verify(raw)
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid token")

			return
		}

		newCtx := auth.ContextWithOwner(ctx.Context(), ownerID)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}
