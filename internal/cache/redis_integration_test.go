//go:build integration

package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortly/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func TestRedisCacheIntegration(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: getRedisAddr(),
	})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	c := cache.NewRedisCache(client)

	t.Run("set and get", func(t *testing.T) {
		key := cache.SlugKey("itest01")

		err := c.Set(ctx, key, "https://example.com", time.Minute)
		require.NoError(t, err)

		val, err := c.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", val)

		// Cleanup
		client.Del(ctx, key)
	})

	t.Run("missing key returns ErrMiss", func(t *testing.T) {
		val, err := c.Get(ctx, cache.SlugKey("itest-none"))

		assert.Empty(t, val)
		assert.ErrorIs(t, err, cache.ErrMiss)
	})

	t.Run("delete evicts key", func(t *testing.T) {
		key := cache.URLKey("https://example.com/itest")
		_ = c.Set(ctx, key, "itest02", time.Minute)

		require.NoError(t, c.Delete(ctx, key))

		_, err := c.Get(ctx, key)
		assert.ErrorIs(t, err, cache.ErrMiss)
	})

	t.Run("ttl expires entry", func(t *testing.T) {
		key := cache.SlugKey("itest03")
		_ = c.Set(ctx, key, "https://example.com", 50*time.Millisecond)

		time.Sleep(100 * time.Millisecond)

		_, err := c.Get(ctx, key)
		assert.ErrorIs(t, err, cache.ErrMiss)
	})
}
