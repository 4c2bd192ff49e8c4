package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// GenerateImageRequest represents the request for generating an image from a prompt
type GenerateImageRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// GenerateImageResponse always carries a usable URL; Placeholder reports
// whether the provider failed and the fallback image was used.
type GenerateImageResponse struct {
	ImageURL    string `json:"imageUrl"`
	Placeholder bool   `json:"placeholder"`
}

// ImageHandler handles photo analysis and image generation
type ImageHandler struct {
	analyzer service.IImageAnalyzer
	images   service.IImageService
	auth     middleware.TokenValidator
	limit    gin.HandlerFunc
	logger   *zap.Logger
}

func NewImageHandler(analyzer service.IImageAnalyzer, images service.IImageService, auth middleware.TokenValidator, limit gin.HandlerFunc, logger *zap.Logger) *ImageHandler {
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}
	return &ImageHandler{analyzer: analyzer, images: images, auth: auth, limit: limit, logger: logger}
}

func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	images := router.Group("/images")
	images.Use(middleware.AuthMiddleware(h.auth))
	{
		images.POST("/analyze", h.limit, h.Analyze)
		images.POST("/generate", h.limit, h.Generate)
	}
}

// Analyze turns an uploaded photo (base64 or URL) into a recipe outline.
// It answers 200 even when the vision backend fails; the result then comes
// from the mock analyzer.
func (h *ImageHandler) Analyze(c *gin.Context) {
	var req service.ImageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	analysis := h.analyzer.Analyze(c.Request.Context(), req)
	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

func (h *ImageHandler) Generate(c *gin.Context) {
	var req GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	url := h.images.Generate(c.Request.Context(), req.Prompt)
	c.JSON(http.StatusOK, GenerateImageResponse{
		ImageURL:    url,
		Placeholder: url == service.PlaceholderImageURL(req.Prompt),
	})
}
