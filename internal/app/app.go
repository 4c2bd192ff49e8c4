// Package app assembles the storage backends and services from configuration.
// The API server and the seed command share it.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/api"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/metrics"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
)

type App struct {
	Config   *config.Config
	Backends *database.Backends
	Metrics  *metrics.Metrics

	Tokens        *service.TokenService
	Users         *service.UserService
	Notifications *service.NotificationService
	Recipes       *service.CatalogService
	Generator     *service.Generator
	Analyzer      *service.ImageAnalyzer
	Images        *service.ImageService
}

// New opens the configured store and builds every service on top of it.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	backends, err := database.OpenBackends(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	s3cfg, err := config.NewS3Config(ctx, cfg.Images)
	if err != nil {
		_ = backends.Close()
		return nil, fmt.Errorf("failed to configure S3: %w", err)
	}
	var objects service.ObjectStore
	if s3cfg != nil {
		objects = service.NewS3ObjectStore(s3cfg)
		logger.Info("Generated images are copied to S3", zap.String("bucket", s3cfg.BucketName))
	}

	for name, key := range map[string]string{
		"groq":   cfg.AI.Groq.APIKey,
		"gemini": cfg.AI.Gemini.APIKey,
		"openai": cfg.AI.OpenAI.APIKey,
	} {
		if key == "" {
			logger.Warn("No API key configured, backend will answer with mock recipes", zap.String("backend", name))
			continue
		}
		logger.Debug("Backend configured", zap.String("backend", name), zap.String("api_key", config.MaskKey(key)))
	}

	m := metrics.New()
	store := backends.Store
	tokens := service.NewTokenService(cfg.JWTSecret)
	notifications := service.NewNotificationService(store, logger.Named("notifications"))

	return &App{
		Config:        cfg,
		Backends:      backends,
		Metrics:       m,
		Tokens:        tokens,
		Users:         service.NewUserService(store, tokens, logger.Named("users")),
		Notifications: notifications,
		Recipes:       service.NewCatalogService(store, notifications, cfg.Storage.DraftTTL, logger.Named("catalog")),
		Generator:     service.NewGenerator(cfg.AI, logger.Named("generator"), m),
		Analyzer:      service.NewImageAnalyzer(cfg.AI, logger.Named("vision"), m),
		Images:        service.NewImageService(cfg.AI, cfg.Images, objects, logger.Named("images"), m),
	}, nil
}

// APIServices returns the handler dependencies, rate limiting included.
func (a *App) APIServices(logger *zap.Logger) api.Services {
	return api.Services{
		Generator:     a.Generator,
		Analyzer:      a.Analyzer,
		Images:        a.Images,
		Recipes:       a.Recipes,
		Users:         a.Users,
		Notifications: a.Notifications,
		Tokens:        a.Tokens,
		RateLimit:     middleware.NewRateLimitMiddleware(a.Config.RateLimit, a.Backends.Redis, logger),
	}
}

func (a *App) Close() error {
	return a.Backends.Close()
}
