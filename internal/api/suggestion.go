package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/service"
)

// SuggestionHandler serves recipe name completions for the prompt box.
type SuggestionHandler struct{}

func NewSuggestionHandler() *SuggestionHandler {
	return &SuggestionHandler{}
}

func (h *SuggestionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/suggestions", h.Suggest)
}

func (h *SuggestionHandler) Suggest(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestions": service.Suggest(c.Query("q"))})
}
