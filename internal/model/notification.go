package model

import "time"

type NotificationType string

const (
	NotificationRecipeShare NotificationType = "recipe_share"
	NotificationComment     NotificationType = "comment"
	NotificationLike        NotificationType = "like"
)

// Notification is addressed to UserID. FromUserID and RecipeID are optional.
type Notification struct {
	ID         string           `json:"id"`
	UserID     string           `json:"userId"`
	Type       NotificationType `json:"type"`
	Message    string           `json:"message"`
	RecipeID   string           `json:"recipeId,omitempty"`
	FromUserID string           `json:"fromUserId,omitempty"`
	Read       bool             `json:"read"`
	CreatedAt  time.Time        `json:"createdAt"`
}
