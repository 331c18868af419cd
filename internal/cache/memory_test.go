package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/shortly/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		c := cache.NewMemoryCache()

		require.NoError(t, c.Set(ctx, "short:abc123", "https://example.com", time.Hour))

		val, err := c.Get(ctx, "short:abc123")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", val)
	})

	t.Run("missing key returns ErrMiss", func(t *testing.T) {
		c := cache.NewMemoryCache()

		val, err := c.Get(ctx, "short:nothere")

		assert.Empty(t, val)
		assert.ErrorIs(t, err, cache.ErrMiss)
	})

	t.Run("expired entry returns ErrMiss", func(t *testing.T) {
		c := cache.NewMemoryCache()

		require.NoError(t, c.Set(ctx, "short:abc123", "https://example.com", time.Nanosecond))
		time.Sleep(5 * time.Millisecond)

		_, err := c.Get(ctx, "short:abc123")

		assert.ErrorIs(t, err, cache.ErrMiss)
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		c := cache.NewMemoryCache()

		require.NoError(t, c.Set(ctx, "k", "v", 0))

		val, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", val)
	})

	t.Run("delete removes entry", func(t *testing.T) {
		c := cache.NewMemoryCache()
		_ = c.Set(ctx, "k", "v", time.Hour)

		require.NoError(t, c.Delete(ctx, "k"))

		_, err := c.Get(ctx, "k")
		assert.ErrorIs(t, err, cache.ErrMiss)
	})

	t.Run("delete of absent key is a no-op", func(t *testing.T) {
		c := cache.NewMemoryCache()

		assert.NoError(t, c.Delete(ctx, "never-set"))
	})
}

func TestKeyNamespaces(t *testing.T) {
	assert.Equal(t, "short:abc123", cache.SlugKey("abc123"))
	assert.Equal(t, "long:https://example.com/a", cache.URLKey("https://example.com/a"))
	assert.NotEqual(t, cache.SlugKey("x"), cache.URLKey("x"))
}
