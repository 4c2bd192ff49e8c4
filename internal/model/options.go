package model

// GenerateOptions selects the backend and carries optional constraints that
// are appended to the generation prompt.
type GenerateOptions struct {
	Backend     string   `json:"backend"`
	Cuisine     string   `json:"cuisine,omitempty"`
	Dietary     []string `json:"dietary,omitempty"`
	MealType    string   `json:"mealType,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Time        string   `json:"time,omitempty"`
}

// RecipeAnalysis is what the image extractor recovers from a food photo.
type RecipeAnalysis struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Cuisine      string   `json:"cuisine"`
	// Source is the analyzer that produced the result, "mock" on fallback.
	Source string `json:"source,omitempty"`
}
