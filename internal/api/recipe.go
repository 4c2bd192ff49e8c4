package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/internal/catalog"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
)

type CommentRequest struct {
	Content string `json:"content"`
}

type ShareRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type RecipeHandler struct {
	recipes service.ICatalogService
	users   service.IUserService
	auth    middleware.TokenValidator
	logger  *zap.Logger
}

func NewRecipeHandler(recipes service.ICatalogService, users service.IUserService, auth middleware.TokenValidator, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, users: users, auth: auth, logger: logger}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	requireAuth := middleware.AuthMiddleware(h.auth)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuth(h.auth), h.ListRecipes)
		recipes.GET("/:id", middleware.OptionalAuth(h.auth), h.GetRecipe)
		recipes.GET("/:id/comments", h.ListComments)
		recipes.POST("", requireAuth, h.CreateRecipe)
		recipes.PUT("/:id", requireAuth, h.UpdateRecipe)
		recipes.POST("/:id/like", requireAuth, h.ToggleLike)
		recipes.POST("/:id/save", requireAuth, h.ToggleSave)
		recipes.POST("/:id/comments", requireAuth, h.AddComment)
		recipes.POST("/:id/share", requireAuth, h.Share)
	}
}

// ListRecipes answers GET /recipes?q=&difficulty=&tags=a,b&sort=
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var filter catalog.FilterSpec
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}
	filter.Tags = splitTags(filter.Tags)

	recipes, err := h.recipes.List(c.Request.Context(), middleware.UserID(c), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var form service.RecipeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}
	user, ok := currentUser(c, h.users, h.logger)
	if !ok {
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), *user, form)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var form service.RecipeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), form)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) ToggleLike(c *gin.Context) {
	user, ok := currentUser(c, h.users, h.logger)
	if !ok {
		return
	}

	recipe, err := h.recipes.ToggleLike(c.Request.Context(), *user, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": recipe.Liked, "likes": recipe.Likes})
}

func (h *RecipeHandler) ToggleSave(c *gin.Context) {
	saved, err := h.recipes.ToggleSave(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

func (h *RecipeHandler) ListComments(c *gin.Context) {
	comments, err := h.recipes.Comments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *RecipeHandler) AddComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, ok := currentUser(c, h.users, h.logger)
	if !ok {
		return
	}

	comment, err := h.recipes.AddComment(c.Request.Context(), *user, c.Param("id"), req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// Share sends the recipe to another user's notification inbox.
func (h *RecipeHandler) Share(c *gin.Context) {
	var req ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	from, ok := currentUser(c, h.users, h.logger)
	if !ok {
		return
	}
	to, err := h.users.Get(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	n, err := h.recipes.Share(c.Request.Context(), *from, *to, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"notification": n})
}

// splitTags accepts both ?tags=a,b and repeated ?tags=a&tags=b.
func splitTags(in []string) []string {
	var out []string
	for _, t := range in {
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
