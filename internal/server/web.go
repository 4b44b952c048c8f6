package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/richxcame/ride-hailing-web/internal/cart"
	"github.com/richxcame/ride-hailing-web/internal/graphql"
	"github.com/richxcame/ride-hailing-web/internal/layout"
	"github.com/richxcame/ride-hailing-web/internal/notifications"
	"github.com/richxcame/ride-hailing-web/internal/payments"
	"github.com/richxcame/ride-hailing-web/internal/rider"
	"github.com/richxcame/ride-hailing-web/internal/theme"
	"github.com/richxcame/ride-hailing-web/internal/uploads"
	"github.com/richxcame/ride-hailing-web/pkg/common"
	"github.com/richxcame/ride-hailing-web/pkg/config"
	"github.com/richxcame/ride-hailing-web/pkg/middleware"
)

// GraphQLClient is what the domain services need from the GraphQL client
type GraphQLClient interface {
	Do(ctx context.Context, doc graphql.Document, variables map[string]interface{}, out interface{}) error
	Upload(ctx context.Context, doc graphql.Document, variables map[string]interface{}, out interface{}) error
}

// WebDeps are the collaborators of the web router
type WebDeps struct {
	Server       config.ServerConfig
	Version      string
	GraphQL      GraphQLClient
	Theme        *theme.Store
	HealthChecks map[string]func() error
	// Middleware runs right after recovery, e.g. sentrygin
	Middleware []gin.HandlerFunc
}

// NewWebRouter builds the rider web frontend: pages, the JSON API backing
// them, static assets, health and metrics.
func NewWebRouter(deps WebDeps) (*gin.Engine, error) {
	pages, err := layout.NewRenderer(func() string { return deps.Theme.Theme().String() })
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(deps.Middleware...)
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics(deps.Server.ServiceName))
	router.Use(middleware.SecurityHeaders(deps.Server.IsProduction()))
	router.Use(cors.New(corsConfig(deps.Server)))

	router.GET("/healthz", common.HealthCheck(deps.Server.ServiceName, deps.Version))
	router.GET("/health/live", common.HealthCheck(deps.Server.ServiceName, deps.Version))
	router.GET("/health/ready", common.HealthCheckWithDeps(deps.Server.ServiceName, deps.Version, deps.HealthChecks))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.StaticFS("/static", http.FS(layout.Static()))

	cartHandler := cart.NewHandler(cart.NewService(deps.GraphQL))
	notificationsHandler := notifications.NewHandler(notifications.NewService(deps.GraphQL))
	paymentsHandler := payments.NewHandler(payments.NewService(deps.GraphQL))
	riderHandler := rider.NewHandler(rider.NewService(deps.GraphQL))
	uploadsHandler := uploads.NewHandler(uploads.NewService(deps.GraphQL))
	themeHandler := theme.NewHandler(deps.Theme)

	web := router.Group("/", middleware.AuthToken(graphql.WithAuthToken))
	{
		web.GET("/", func(c *gin.Context) {
			pages.HTML(c, http.StatusOK, "home", layout.PageProps{
				Title:       "Ride",
				Description: "Your rides, payments and notifications",
			}, struct{ Theme string }{deps.Theme.Theme().String()})
		})
		cartHandler.RegisterPages(web, pages)
		notificationsHandler.RegisterPages(web, pages)
	}

	api := router.Group("/api/v1", middleware.AuthToken(graphql.WithAuthToken))
	themeHandler.RegisterRoutes(api)
	uploadsHandler.RegisterRoutes(api)

	// uploads stream large bodies and stay outside the request timeout
	timed := api.Group("", middleware.RequestTimeout(time.Duration(deps.Server.RequestTimeout)*time.Second))
	cartHandler.RegisterRoutes(timed)
	notificationsHandler.RegisterRoutes(timed)
	paymentsHandler.RegisterRoutes(timed)
	riderHandler.RegisterRoutes(timed)

	return router, nil
}

func corsConfig(cfg config.ServerConfig) cors.Config {
	c := cors.DefaultConfig()
	c.AllowOrigins = cfg.AllowedOrigins()
	if len(c.AllowOrigins) == 0 {
		c.AllowAllOrigins = true
	}
	c.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", middleware.CorrelationIDHeader}
	c.ExposeHeaders = []string{middleware.CorrelationIDHeader}
	c.AllowCredentials = !c.AllowAllOrigins
	c.MaxAge = 12 * time.Hour
	return c
}
