package service

import (
	"context"

	"github.com/pageza/recipeshare/backend/internal/catalog"
	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// IGenerator produces recipes from free-text prompts.
type IGenerator interface {
	Generate(ctx context.Context, prompt string, opts model.GenerateOptions) GenerationResult
}

// IImageAnalyzer turns a food photo into a recipe outline.
type IImageAnalyzer interface {
	Analyze(ctx context.Context, in ImageInput) model.RecipeAnalysis
}

// IImageService returns an image URL for a prompt.
type IImageService interface {
	Generate(ctx context.Context, prompt string) string
}

// ICatalogService defines recipe catalog operations
type ICatalogService interface {
	List(ctx context.Context, viewerID string, f catalog.FilterSpec) ([]model.Recipe, error)
	ByAuthor(ctx context.Context, viewerID, userID string) ([]model.Recipe, error)
	Get(ctx context.Context, viewerID, id string) (*model.Recipe, error)
	Create(ctx context.Context, author model.User, form RecipeForm) (*model.Recipe, error)
	SaveGenerated(ctx context.Context, author model.User, r *model.Recipe) (*model.Recipe, error)
	Update(ctx context.Context, userID, id string, form RecipeForm) (*model.Recipe, error)
	ToggleLike(ctx context.Context, user model.User, id string) (*model.Recipe, error)
	ToggleSave(ctx context.Context, userID, id string) (bool, error)
	Liked(ctx context.Context, userID string) ([]model.Recipe, error)
	Saved(ctx context.Context, userID string) ([]model.Recipe, error)
	AddComment(ctx context.Context, user model.User, recipeID, content string) (*model.Comment, error)
	Comments(ctx context.Context, recipeID string) ([]model.Comment, error)
	Share(ctx context.Context, from, to model.User, recipeID string) (*model.Notification, error)
	PutDraft(ctx context.Context, userID string, r *model.Recipe) error
	GetDraft(ctx context.Context, userID string) (*model.Recipe, error)
	DiscardDraft(ctx context.Context, userID string) error
	PublishDraft(ctx context.Context, author model.User) (*model.Recipe, error)
}

// IUserService defines account and follow graph operations
type IUserService interface {
	Register(ctx context.Context, reg Registration) (*model.User, string, error)
	Login(ctx context.Context, email string) (*model.User, string, error)
	Get(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*model.User, error)
	Follow(ctx context.Context, followerID, targetID string) error
	Unfollow(ctx context.Context, followerID, targetID string) error
	IsFollowing(ctx context.Context, followerID, targetID string) (bool, error)
	FollowCounts(ctx context.Context, id string) (model.FollowStats, error)
}

// INotificationService defines notification inbox operations
type INotificationService interface {
	Notifier
	ForUser(ctx context.Context, userID string) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID, id string) error
	MarkAllAsRead(ctx context.Context, userID string) (int, error)
}

// ITokenService issues and validates session tokens.
type ITokenService interface {
	GenerateToken(userID string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

var (
	_ IGenerator           = (*Generator)(nil)
	_ IImageAnalyzer       = (*ImageAnalyzer)(nil)
	_ IImageService        = (*ImageService)(nil)
	_ ICatalogService      = (*CatalogService)(nil)
	_ IUserService         = (*UserService)(nil)
	_ INotificationService = (*NotificationService)(nil)
	_ ITokenService        = (*TokenService)(nil)
)
