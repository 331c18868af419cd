// Package container wires application dependencies with samber/do.
// Each concern registers through its own Package function so binaries
// can compose only what they need.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaevor/go-nanoid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/shortly/internal/analytics"
	analyticsstore "github.com/serroba/shortly/internal/analytics/store"
	"github.com/serroba/shortly/internal/auth"
	"github.com/serroba/shortly/internal/base62"
	"github.com/serroba/shortly/internal/cache"
	"github.com/serroba/shortly/internal/handlers"
	"github.com/serroba/shortly/internal/messaging"
	"github.com/serroba/shortly/internal/middleware"
	"github.com/serroba/shortly/internal/ratelimit"
	"github.com/serroba/shortly/internal/shortener"
	"github.com/serroba/shortly/internal/store"
	"go.uber.org/zap"
)

// Options holds CLI and environment configuration for all binaries.
type Options struct {
	Port            int    `default:"8888"            help:"Port to listen on"                               short:"p"`
	BaseURL         string `default:""                help:"Public base URL, defaults to http://localhost:<port>"`
	SlugLength      int    `default:"6"               help:"Length of generated slugs"                       short:"c"`
	SlugStrategy    string `default:"sequential"      help:"Slug allocation strategy (sequential or random)"`
	RedisAddr       string `default:"localhost:6379"  help:"Redis server address"                            short:"r"`
	PostgresDSN     string `default:""                help:"Postgres connection string, empty uses memory"`
	CacheTTLSeconds int    `default:"3600"            help:"Cache entry TTL in seconds"`
	AuthSecret      string `default:"dev-secret"      help:"HMAC secret for owner tokens"`
	LogFormat       string `default:"console"         help:"Log output format (console or json)"`
}

func (o *Options) baseURL() string {
	if o.BaseURL != "" {
		return o.BaseURL
	}

	return fmt.Sprintf("http://localhost:%d", o.Port)
}

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: options.RedisAddr,
		}), nil
	})
}

// PostgresPackage provides the pgx connection pool. It is optional:
// when no DSN is configured the pool resolves to nil and memory-backed
// implementations are used instead.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)
		if options.PostgresDSN == "" {
			return nil, nil
		}

		return pgxpool.New(context.Background(), options.PostgresDSN)
	})
}

// RepositoryPackage provides the URL store, cache, slug strategy, and
// the shortener service on top of them.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortener.Store, error) {
		pool := do.MustInvoke[*pgxpool.Pool](i)
		if pool == nil {
			return store.NewMemoryStore(), nil
		}

		return store.NewPostgresStore(pool), nil
	})

	do.Provide(injector, func(i *do.Injector) (cache.Cache, error) {
		client := do.MustInvoke[*redis.Client](i)

		return cache.NewRedisCache(client), nil
	})

	do.Provide(injector, func(i *do.Injector) (shortener.Strategy, error) {
		options := do.MustInvoke[*Options](i)
		urlStore := do.MustInvoke[shortener.Store](i)

		if options.SlugStrategy == "random" {
			generate, err := nanoid.CustomASCII(base62.Alphabet, options.SlugLength)
			if err != nil {
				return nil, err
			}

			return shortener.NewRandomStrategy(urlStore, generate), nil
		}

		return shortener.NewSequentialStrategy(urlStore, options.SlugLength), nil
	})

	do.Provide(injector, func(i *do.Injector) (*shortener.Service, error) {
		options := do.MustInvoke[*Options](i)
		urlStore := do.MustInvoke[shortener.Store](i)
		urlCache := do.MustInvoke[cache.Cache](i)
		strategy := do.MustInvoke[shortener.Strategy](i)
		logger := do.MustInvoke[*zap.Logger](i)

		ttl := time.Duration(options.CacheTTLSeconds) * time.Second

		return shortener.NewService(urlStore, urlCache, strategy, options.SlugLength, ttl, logger), nil
	})
}

// RateLimitPackage provides the redis-backed rate limit store.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (ratelimit.Store, error) {
		client := do.MustInvoke[*redis.Client](i)

		return store.NewRateLimitRedisStore(client), nil
	})
}

// AuthPackage provides the owner token manager.
func AuthPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*auth.TokenManager, error) {
		options := do.MustInvoke[*Options](i)

		return auth.NewTokenManager(options.AuthSecret, 24*time.Hour), nil
	})
}

// PublisherGroupPackage provides the event bus publisher over redis
// streams.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client,
		}, watermill.NewStdLogger(false, false))
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})
}

// ConsumerGroupPackage provides the analytics consumer group: one
// consumer per event topic, all persisting through the analytics store.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (analytics.Store, error) {
		pool := do.MustInvoke[*pgxpool.Pool](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if pool == nil {
			return analyticsstore.NewNoop(logger), nil
		}

		return analyticsstore.NewPostgres(pool, logger), nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)
		events := do.MustInvoke[analytics.Store](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: "analytics",
		}, watermill.NewStdLogger(false, false))
		if err != nil {
			return nil, err
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicURLCreated, events.RecordCreated, logger))
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicURLClicked, events.RecordClick, logger))
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicURLDeleted, events.RecordDeleted, logger))

		return group, nil
	})
}

// HTTPPackage provides the chi router and the huma API with all routes
// and middleware registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)
		service := do.MustInvoke[*shortener.Service](i)
		limitStore := do.MustInvoke[ratelimit.Store](i)
		tokens := do.MustInvoke[*auth.TokenManager](i)
		publishers := do.MustInvoke[*messaging.PublisherGroup](i)
		redisClient := do.MustInvoke[*redis.Client](i)
		pool := do.MustInvoke[*pgxpool.Pool](i)

		api := humachi.New(router, huma.DefaultConfig("Shortly", "1.0.0"))

		defaults := []ratelimit.LimitConfig{
			{Window: time.Minute, Max: 100},
		}

		api.UseMiddleware(
			middleware.RequestMeta(api),
			middleware.Auth(api, tokens),
			middleware.RateLimiter(api, limitStore, defaults, logger),
		)

		urlHandler := handlers.NewURLHandler(
			service,
			options.baseURL(),
			messaging.NewPublishFunc[analytics.URLCreatedEvent](publishers.Publisher(), analytics.TopicURLCreated),
			messaging.NewPublishFunc[analytics.URLClickedEvent](publishers.Publisher(), analytics.TopicURLClicked),
			messaging.NewPublishFunc[analytics.URLDeletedEvent](publishers.Publisher(), analytics.TopicURLDeleted),
			logger,
		)

		var pgChecker handlers.HealthChecker = handlers.NewPostgresHealthChecker(pool)
		if pool == nil {
			pgChecker = nopChecker{}
		}

		healthHandler := handlers.NewHealthHandler(handlers.NewRedisHealthChecker(redisClient), pgChecker)

		handlers.RegisterRoutes(api, urlHandler, healthHandler)

		return api, nil
	})
}

type nopChecker struct{}

func (nopChecker) Ping(_ context.Context) error { return nil }
