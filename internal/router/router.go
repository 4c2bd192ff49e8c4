package router

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/internal/api"
	"github.com/pageza/recipeshare/backend/internal/metrics"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/storage"
)

// Options holds what the engine needs besides the handlers' services.
type Options struct {
	CORSOrigins []string
	Metrics     *metrics.Metrics
	Store       storage.Store
	Logger      *zap.Logger
}

// SetupRouter configures the application routes
func SetupRouter(opts Options, services api.Services) *gin.Engine {
	router := gin.New()

	router.Use(
		requestid.New(),
		middleware.RequestLogger(opts.Logger),
		middleware.Recovery(opts.Logger),
		middleware.CORS(opts.CORSOrigins),
	)
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	router.GET("/health", api.NewHealthHandler(opts.Store).HealthCheck)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	// API v1 routes
	api.RegisterRoutes(router.Group("/api/v1"), services, opts.Logger)

	return router
}
