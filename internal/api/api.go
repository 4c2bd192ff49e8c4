package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// Services are the dependencies of the /api/v1 handlers.
type Services struct {
	Generator     service.IGenerator
	Analyzer      service.IImageAnalyzer
	Images        service.IImageService
	Recipes       service.ICatalogService
	Users         service.IUserService
	Notifications service.INotificationService
	Tokens        middleware.TokenValidator

	// RateLimit guards the endpoints that call paid backends. Nil disables it.
	RateLimit gin.HandlerFunc
}

// RegisterRoutes mounts every handler under v1.
func RegisterRoutes(v1 *gin.RouterGroup, s Services, logger *zap.Logger) {
	NewAuthHandler(s.Users, logger).RegisterRoutes(v1)
	NewRecipeHandler(s.Recipes, s.Users, s.Tokens, logger).RegisterRoutes(v1)
	NewGenerateHandler(s.Generator, s.Recipes, s.Users, s.Tokens, s.RateLimit, logger).RegisterRoutes(v1)
	NewImageHandler(s.Analyzer, s.Images, s.Tokens, s.RateLimit, logger).RegisterRoutes(v1)
	NewSuggestionHandler().RegisterRoutes(v1)
	NewUserHandler(s.Users, s.Recipes, s.Tokens, logger).RegisterRoutes(v1)
	NewNotificationHandler(s.Notifications, s.Tokens, logger).RegisterRoutes(v1)
}
