package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// GenerateRequest is the body of POST /generate. Options select the backend
// and add optional prompt constraints.
type GenerateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	model.GenerateOptions
}

// GenerateHandler runs prompts through the generator and keeps the latest
// result as the user's draft until it is saved or discarded.
type GenerateHandler struct {
	generator service.IGenerator
	recipes   service.ICatalogService
	users     service.IUserService
	auth      middleware.TokenValidator
	limit     gin.HandlerFunc
	logger    *zap.Logger
}

func NewGenerateHandler(generator service.IGenerator, recipes service.ICatalogService, users service.IUserService, auth middleware.TokenValidator, limit gin.HandlerFunc, logger *zap.Logger) *GenerateHandler {
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}
	return &GenerateHandler{
		generator: generator,
		recipes:   recipes,
		users:     users,
		auth:      auth,
		limit:     limit,
		logger:    logger,
	}
}

func (h *GenerateHandler) RegisterRoutes(router *gin.RouterGroup) {
	generate := router.Group("/generate")
	generate.Use(middleware.AuthMiddleware(h.auth))
	{
		generate.POST("", h.limit, h.Generate)
		generate.GET("/draft", h.GetDraft)
		generate.POST("/draft/save", h.SaveDraft)
		generate.DELETE("/draft", h.DiscardDraft)
	}
}

func (h *GenerateHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt must not be empty"})
		return
	}

	res := h.generator.Generate(c.Request.Context(), req.Prompt, req.GenerateOptions)
	if !res.OK() {
		if err := res.Err(); err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": res.Error})
		return
	}

	userID := middleware.UserID(c)
	if err := h.recipes.PutDraft(c.Request.Context(), userID, res.Recipe); err != nil {
		// The recipe is still returned; only the draft copy is lost.
		h.logger.Warn("Failed to store draft", zap.String("user_id", userID), zap.Error(err))
	}

	c.JSON(http.StatusOK, res)
}

func (h *GenerateHandler) GetDraft(c *gin.Context) {
	draft, err := h.recipes.GetDraft(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": draft})
}

// SaveDraft publishes the pending draft to the catalog.
func (h *GenerateHandler) SaveDraft(c *gin.Context) {
	user, ok := currentUser(c, h.users, h.logger)
	if !ok {
		return
	}

	recipe, err := h.recipes.PublishDraft(c.Request.Context(), *user)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (h *GenerateHandler) DiscardDraft(c *gin.Context) {
	if err := h.recipes.DiscardDraft(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
