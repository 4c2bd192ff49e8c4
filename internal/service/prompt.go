package service

import (
	"strings"

	"github.com/pageza/recipeshare/backend/internal/model"
)

const recipeShape = `Respond with a single JSON object inside a ` + "```json" + ` block using exactly these fields:
{"title": string, "description": string, "prepTime": minutes as string, "cookTime": minutes as string,
"servings": string, "difficulty": "Easy" | "Medium" | "Hard", "ingredients": [string], "instructions": [string],
"tips": [string], "tags": [string], "nutrition": {"calories": string, "protein": string, "carbs": string, "fats": string}}`

// BuildPrompt embeds the request and each non-empty option as a labeled
// clause, followed by the JSON shape the reply must use.
func BuildPrompt(prompt string, opts model.GenerateOptions) string {
	var b strings.Builder
	b.WriteString("Create a detailed recipe for: ")
	b.WriteString(strings.TrimSpace(prompt))
	b.WriteString(".")

	clause := func(label, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		b.WriteString(" ")
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString(".")
	}
	clause("Cuisine", opts.Cuisine)
	clause("Dietary preferences", joinNonEmpty(opts.Dietary))
	clause("Meal type", opts.MealType)
	clause("Must include ingredients", joinNonEmpty(opts.Ingredients))
	clause("Time constraint", opts.Time)

	b.WriteString("\n\n")
	b.WriteString(recipeShape)
	return b.String()
}

func joinNonEmpty(values []string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, ", ")
}
