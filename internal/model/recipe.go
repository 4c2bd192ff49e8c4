package model

import (
	"slices"
	"strings"
	"time"
)

// Difficulty is the three-way effort rating shown on a recipe card.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Valid reports whether d is one of the three known values.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// OrDefault returns d, or Medium when d is not a known value.
func (d Difficulty) OrDefault() Difficulty {
	if d.Valid() {
		return d
	}
	return DifficultyMedium
}

// Author is a snapshot of the user taken when the recipe or comment was
// created. It is not refreshed when the profile changes.
type Author struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// AuthorOf snapshots u.
func AuthorOf(u User) Author {
	return Author{ID: u.ID, Name: u.Name, ProfileImageURL: u.ProfileImageURL}
}

// Recipe is a catalog entry. Times and servings are minute/count strings as
// returned by the generation backends.
type Recipe struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	PrepTime     string     `json:"prepTime"`
	CookTime     string     `json:"cookTime"`
	Servings     string     `json:"servings"`
	Difficulty   Difficulty `json:"difficulty"`
	Ingredients  []string   `json:"ingredients"`
	Instructions []string   `json:"instructions"`
	Tips         []string   `json:"tips"`
	Tags         []string   `json:"tags"`
	Nutrition    Nutrition  `json:"nutrition"`
	ImageURL     string     `json:"imageUrl,omitempty"`

	UserID string `json:"userId"`
	Author Author `json:"author"`

	Likes    int       `json:"likes"`
	Liked    bool      `json:"liked"`
	Comments []Comment `json:"comments"`

	GeneratedBy string    `json:"generatedBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Error is only set on a failed generation attempt.
	Error string `json:"error,omitempty"`
}

// Publishable reports whether the recipe has at least one non-empty
// ingredient and instruction and carries no generation error.
func (r *Recipe) Publishable() bool {
	return r.Error == "" && hasEntry(r.Ingredients) && hasEntry(r.Instructions)
}

// HasTag reports whether the recipe carries tag exactly as written.
func (r *Recipe) HasTag(tag string) bool {
	return slices.Contains(r.Tags, tag)
}

// Clone returns a copy that shares no slices with r.
func (r Recipe) Clone() Recipe {
	r.Ingredients = cloneStrings(r.Ingredients)
	r.Instructions = cloneStrings(r.Instructions)
	r.Tips = cloneStrings(r.Tips)
	r.Tags = cloneStrings(r.Tags)
	if r.Comments != nil {
		r.Comments = append([]Comment(nil), r.Comments...)
	}
	return r
}

func hasEntry(list []string) bool {
	for _, s := range list {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
