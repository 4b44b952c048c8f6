package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/richxcame/ride-hailing-web/internal/edge"
	"github.com/richxcame/ride-hailing-web/internal/server"
	"github.com/richxcame/ride-hailing-web/pkg/common"
	"github.com/richxcame/ride-hailing-web/pkg/config"
	"github.com/richxcame/ride-hailing-web/pkg/health"
	"github.com/richxcame/ride-hailing-web/pkg/logger"
	"github.com/richxcame/ride-hailing-web/pkg/middleware"
	"github.com/richxcame/ride-hailing-web/pkg/tracing"
)

const (
	serviceName    = "edge"
	serviceVersion = "1.0.0"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "edge: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(serviceName)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	origin, err := config.ParseOriginURL(cfg.Edge.OriginURL)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

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

	handler := edge.NewHandler(origin, originTransport(cfg.Tracing))

	srv := &http.Server{
		Addr:        ":" + cfg.Server.Port,
		Handler:     edge.NewRouter(handler, serviceName),
		ReadTimeout: time.Duration(cfg.Server.ReadTimeout) * time.Second,
	}
	admin := &http.Server{
		Addr:        ":" + cfg.Edge.MetricsPort,
		Handler:     newAdminRouter(origin.String()),
		ReadTimeout: 5 * time.Second,
	}

	logger.Info("Edge listening",
		zap.String("addr", srv.Addr),
		zap.String("admin_addr", admin.Addr),
		zap.String("origin", origin.String()),
	)
	return server.Serve(ctx, server.DefaultShutdownTimeout, srv, admin)
}

// originTransport adds trace propagation headers to forwarded requests only
// when tracing is switched on; otherwise requests leave the edge untouched.
func originTransport(cfg config.TracingConfig) http.RoundTripper {
	if cfg.Enabled {
		return tracing.Transport(nil)
	}
	return nil
}

// newAdminRouter serves metrics and health on their own listener so that no
// path of the edge itself is shadowed.
func newAdminRouter(originURL string) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery())

	checks := map[string]func() error{
		"origin": health.NewCachedChecker(health.HTTPEndpointChecker(originURL), 10*time.Second).Check,
	}
	router.GET("/healthz", common.HealthCheck(serviceName, serviceVersion))
	router.GET("/health/live", common.HealthCheck(serviceName, serviceVersion))
	router.GET("/health/ready", common.HealthCheckWithDeps(serviceName, serviceVersion, checks))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}
