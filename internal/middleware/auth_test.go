package middleware_test

import (
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortly/internal/auth"
	"github.com/serroba/shortly/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	t.Run("passes through without authorization header", func(t *testing.T) {
		api := newTestAPI()
		mw := middleware.Auth(api, tokens)

		ctx := newMockHumaContext()

		nextCalled := false

		mw(ctx, func(c huma.Context) {
			nextCalled = true

			_, ok := auth.OwnerFromContext(c.Context())
			assert.False(t, ok, "anonymous request should have no owner")
		})

		assert.True(t, nextCalled)
	})

	t.Run("attaches owner from valid token", func(t *testing.T) {
		api := newTestAPI()
		mw := middleware.Auth(api, tokens)

		token, err := tokens.Issue(42)
		require.NoError(t, err)

		ctx := newMockHumaContext()
		ctx.headers["Authorization"] = "Bearer " + token

		var gotOwner int64

		mw(ctx, func(c huma.Context) {
			id, ok := auth.OwnerFromContext(c.Context())
			require.True(t, ok)
			gotOwner = id
		})

		assert.Equal(t, int64(42), gotOwner)
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		api := newTestAPI()
		mw := middleware.Auth(api, tokens)

		ctx := newMockHumaContext()
		ctx.headers["Authorization"] = "Bearer not-a-token"

		nextCalled := false

		mw(ctx, func(_ huma.Context) {
			nextCalled = true
		})

		assert.False(t, nextCalled)
		assert.Equal(t, 401, ctx.statusCode)
	})

	t.Run("rejects malformed authorization header", func(t *testing.T) {
		api := newTestAPI()
		mw := middleware.Auth(api, tokens)

		ctx := newMockHumaContext()
		ctx.headers["Authorization"] = "Basic dXNlcjpwYXNz"

		nextCalled := false

		mw(ctx, func(_ huma.Context) {
			nextCalled = true
		})

		assert.False(t, nextCalled)
		assert.Equal(t, 401, ctx.statusCode)
	})

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		api := newTestAPI()
		mw := middleware.Auth(api, tokens)

		other := auth.NewTokenManager("other-secret", time.Hour)
		token, err := other.Issue(42)
		require.NoError(t, err)

		ctx := newMockHumaContext()
		ctx.headers["Authorization"] = "Bearer " + token

		nextCalled := false

		mw(ctx, func(_ huma.Context) {
			nextCalled = true
		})

		assert.False(t, nextCalled)
		assert.Equal(t, 401, ctx.statusCode)
	})
}
