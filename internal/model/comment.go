package model

import "time"

// Comment belongs to the recipe it was posted on. RecipeID is a back
// reference used for lookups only.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	Author    Author    `json:"author"`
	RecipeID  string    `json:"recipeId"`
	CreatedAt time.Time `json:"createdAt"`
}
