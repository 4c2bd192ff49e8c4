package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// ProfileResponse is a user with their follow counts, their recipes and
// whether the viewer follows them.
type ProfileResponse struct {
	User      model.User        `json:"user"`
	Stats     model.FollowStats `json:"stats"`
	Recipes   []model.Recipe    `json:"recipes"`
	Following bool              `json:"following"`
}

type UserHandler struct {
	users   service.IUserService
	recipes service.ICatalogService
	auth    middleware.TokenValidator
	logger  *zap.Logger
}

func NewUserHandler(users service.IUserService, recipes service.ICatalogService, auth middleware.TokenValidator, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, recipes: recipes, auth: auth, logger: logger}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	requireAuth := middleware.AuthMiddleware(h.auth)

	users := router.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.GET("/me/liked", requireAuth, h.Liked)
		users.GET("/me/saved", requireAuth, h.Saved)
		users.PUT("/me", requireAuth, h.UpdateProfile)
		users.GET("/:id", middleware.OptionalAuth(h.auth), h.GetProfile)
		users.GET("/:id/stats", h.Stats)
		users.POST("/:id/follow", requireAuth, h.Follow)
		users.DELETE("/:id/follow", requireAuth, h.Unfollow)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	viewer := middleware.UserID(c)

	user, err := h.users.Get(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	stats, err := h.users.FollowCounts(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	recipes, err := h.recipes.ByAuthor(ctx, viewer, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := ProfileResponse{User: *user, Stats: stats, Recipes: recipes}
	if viewer != "" && viewer != id {
		if resp.Following, err = h.users.IsFollowing(ctx, viewer, id); err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.users.FollowCounts(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req service.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) Follow(c *gin.Context) {
	if err := h.users.Follow(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.respondStats(c, c.Param("id"), true)
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	if err := h.users.Unfollow(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.respondStats(c, c.Param("id"), false)
}

func (h *UserHandler) respondStats(c *gin.Context, id string, following bool) {
	stats, err := h.users.FollowCounts(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following, "stats": stats})
}

func (h *UserHandler) Liked(c *gin.Context) {
	recipes, err := h.recipes.Liked(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *UserHandler) Saved(c *gin.Context) {
	recipes, err := h.recipes.Saved(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
