package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/richxcame/ride-hailing-web/internal/graphql"
	"github.com/richxcame/ride-hailing-web/internal/server"
	"github.com/richxcame/ride-hailing-web/internal/theme"
	"github.com/richxcame/ride-hailing-web/pkg/config"
	"github.com/richxcame/ride-hailing-web/pkg/health"
	"github.com/richxcame/ride-hailing-web/pkg/logger"
	"github.com/richxcame/ride-hailing-web/pkg/redis"
	"github.com/richxcame/ride-hailing-web/pkg/resilience"
	"github.com/richxcame/ride-hailing-web/pkg/tracing"
)

const (
	serviceName    = "web"
	serviceVersion = "1.0.0"

	themeKeyPrefix = "web:"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "web: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(serviceName)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting web frontend",
		zap.String("version", serviceVersion),
		zap.String("environment", cfg.Server.Environment),
		zap.String("graphql_endpoint", cfg.GraphQL.Endpoint),
	)

	ctx := context.Background()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, serviceName, cfg.Server.Environment)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("Failed to flush traces", zap.Error(err))
		}
	}()

	var extra []gin.HandlerFunc
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Server.Environment,
			Release:          serviceName + "@" + serviceVersion,
			TracesSampleRate: cfg.Sentry.TracesSampleRate,
		}); err != nil {
			return fmt.Errorf("failed to initialize sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
		extra = append(extra, sentrygin.New(sentrygin.Options{Repanic: true}))
		logger.Info("Sentry error reporting enabled")
	}

	healthChecks := map[string]func() error{
		"graphql": health.NewCachedChecker(health.HTTPEndpointChecker(cfg.GraphQL.HealthCheckURL()), 10*time.Second).Check,
	}

	storage, closeStorage, err := newThemeStorage(cfg, healthChecks)
	if err != nil {
		return err
	}
	defer closeStorage()

	router, err := server.NewWebRouter(server.WebDeps{
		Server:       cfg.Server,
		Version:      serviceVersion,
		GraphQL:      newGraphQLClient(cfg.GraphQL),
		Theme:        theme.NewStore(ctx, storage),
		HealthChecks: healthChecks,
		Middleware:   extra,
	})
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	logger.Info("Web frontend listening", zap.String("addr", srv.Addr))
	return server.Serve(ctx, server.DefaultShutdownTimeout, srv)
}

// newThemeStorage picks the theme persistence backend. A Redis backend also
// registers its readiness check.
func newThemeStorage(cfg *config.Config, healthChecks map[string]func() error) (theme.Storage, func(), error) {
	switch cfg.Theme.Backend {
	case config.ThemeBackendRedis:
		client, err := redis.NewRedisClient(&cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		healthChecks["redis"] = health.RedisChecker(client.Client)
		logger.Info("Theme preference stored in Redis", zap.String("addr", cfg.Redis.RedisAddr()))
		return theme.NewRedisStorage(client, themeKeyPrefix), func() { _ = client.Close() }, nil
	case config.ThemeBackendMemory:
		logger.Warn("Theme preference is kept in memory and lost on restart")
		return theme.NewMemoryStorage(), func() {}, nil
	default:
		storage, err := theme.NewFileStorage(cfg.Theme.StateDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Theme preference stored on disk", zap.String("dir", cfg.Theme.StateDir))
		return storage, func() {}, nil
	}
}

// newGraphQLClient builds the API client. Queries are retried with backoff;
// every operation goes through one breaker.
func newGraphQLClient(cfg config.GraphQLConfig) *graphql.Client {
	breaker := resilience.NewCircuitBreaker(
		graphql.BreakerSettings(resilience.BuildSettings(
			"graphql",
			cfg.BreakerInterval,
			cfg.BreakerTimeout,
			cfg.BreakerFailureThreshold,
			cfg.BreakerSuccessThreshold,
		)),
		resilience.GracefulDegradation("graphql"),
	)

	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = cfg.QueryRetryAttempts
	retry.InitialBackoff = 200 * time.Millisecond
	retry.MaxBackoff = 2 * time.Second

	return graphql.NewClient(cfg.Endpoint,
		graphql.WithBreaker(breaker),
		graphql.WithRetry(retry),
		graphql.WithTimeout(cfg.Timeout),
	)
}
