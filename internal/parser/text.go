// Package parser turns backend replies into recipes. Free-text replies go
// through ParseRecipeText; replies that were asked for JSON go through
// ExtractJSON and DecodeRecipe.
package parser

import (
	"regexp"
	"strings"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/textnorm"
)

// ParsedText holds whatever fields could be found in a free-text reply.
// Fields whose label never appears keep their zero value.
type ParsedText struct {
	Title        string
	Description  string
	PrepTime     string
	CookTime     string
	Servings     string
	Difficulty   model.Difficulty
	Ingredients  []string
	Instructions []string
	Tips         []string
	Tags         []string
	Nutrition    model.Nutrition
}

// ToRecipe copies the parsed fields onto a new recipe. Difficulty defaults to
// Medium.
func (p ParsedText) ToRecipe() *model.Recipe {
	return &model.Recipe{
		Title:        p.Title,
		Description:  p.Description,
		PrepTime:     p.PrepTime,
		CookTime:     p.CookTime,
		Servings:     p.Servings,
		Difficulty:   p.Difficulty.OrDefault(),
		Ingredients:  p.Ingredients,
		Instructions: p.Instructions,
		Tips:         p.Tips,
		Tags:         p.Tags,
		Nutrition:    p.Nutrition,
	}
}

type section int

const (
	sectionNone section = iota
	sectionDescription
	sectionIngredients
	sectionInstructions
	sectionTips
)

var (
	labelLine   = regexp.MustCompile(`^[\s#*_>-]*([A-Za-z][A-Za-z ]*?)[\s*_]*:[\s*_]*(.*)$`)
	listMarker  = regexp.MustCompile(`^\s*(\d+[.)]|[-•*·])\s*`)
	decimalLead = regexp.MustCompile(`^\s*\d+\.\d`)
	firstDigit  = regexp.MustCompile(`\d+`)
)

var labels = map[string]string{
	"title":        "title",
	"recipe":       "title",
	"recipe name":  "title",
	"name":         "title",
	"description":  "description",
	"prep time":    "prep",
	"preparation":  "prep",
	"cook time":    "cook",
	"cooking time": "cook",
	"servings":     "servings",
	"serves":       "servings",
	"difficulty":   "difficulty",
	"ingredients":  "ingredients",
	"instructions": "instructions",
	"steps":        "instructions",
	"directions":   "instructions",
	"method":       "instructions",
	"tips":         "tips",
	"tags":         "tags",
	"calories":     "calories",
	"protein":      "protein",
	"carbs":        "carbs",
	"fats":         "fats",
	"fat":          "fats",
}

// ParseRecipeText extracts labeled fields ("Title:", "Prep Time:",
// "Ingredients:" and so on) from a free-text reply. It never fails: missing
// labels leave fields empty and a blank reply yields the zero value.
func ParseRecipeText(raw string) ParsedText {
	var p ParsedText
	if strings.TrimSpace(raw) == "" {
		return p
	}

	var (
		current     = sectionNone
		description []string
		difficulty  string
	)

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)

		if key, value, ok := matchLabel(trimmed); ok {
			current = sectionNone
			switch key {
			case "title":
				if p.Title == "" {
					p.Title = textnorm.Normalize(stripEmphasis(value))
				}
			case "description":
				current = sectionDescription
				if value != "" {
					description = append(description, value)
				}
			case "prep":
				p.PrepTime = firstNumber(value)
			case "cook":
				p.CookTime = firstNumber(value)
			case "servings":
				p.Servings = firstNumber(value)
			case "difficulty":
				difficulty = value
			case "ingredients":
				current = sectionIngredients
				p.Ingredients = appendItem(p.Ingredients, value, textnorm.Ingredient)
			case "instructions":
				current = sectionInstructions
				p.Instructions = appendItem(p.Instructions, value, textnorm.Instruction)
			case "tips":
				current = sectionTips
				p.Tips = appendItem(p.Tips, value, textnorm.Instruction)
			case "tags":
				for _, tag := range splitComma(value) {
					if t := textnorm.Normalize(tag); t != "" {
						p.Tags = append(p.Tags, t)
					}
				}
			case "calories":
				p.Nutrition.Calories = textnorm.Normalize(value)
			case "protein":
				p.Nutrition.Protein = textnorm.Normalize(value)
			case "carbs":
				p.Nutrition.Carbs = textnorm.Normalize(value)
			case "fats":
				p.Nutrition.Fats = textnorm.Normalize(value)
			}
			continue
		}

		if trimmed == "" {
			switch current {
			case sectionDescription:
				if len(description) > 0 {
					current = sectionNone
				}
			case sectionIngredients:
				if len(p.Ingredients) > 0 {
					current = sectionNone
				}
			case sectionInstructions:
				if len(p.Instructions) > 0 {
					current = sectionNone
				}
			case sectionTips:
				if len(p.Tips) > 0 {
					current = sectionNone
				}
			}
			continue
		}

		if isHeaderEcho(trimmed) {
			continue
		}

		switch current {
		case sectionDescription:
			description = append(description, trimmed)
		case sectionIngredients:
			p.Ingredients = appendItem(p.Ingredients, trimmed, textnorm.Ingredient)
		case sectionInstructions:
			p.Instructions = appendItem(p.Instructions, trimmed, textnorm.Instruction)
		case sectionTips:
			p.Tips = appendItem(p.Tips, trimmed, textnorm.Instruction)
		}
	}

	p.Description = textnorm.Normalize(strings.Join(description, " "))
	p.Difficulty = ClassifyDifficulty(difficulty)
	return p
}

// ClassifyDifficulty maps free text onto the three-way enum by looking for
// "easy" or "hard". Anything else is Medium.
func ClassifyDifficulty(text string) model.Difficulty {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "easy"):
		return model.DifficultyEasy
	case strings.Contains(lower, "hard"):
		return model.DifficultyHard
	default:
		return model.DifficultyMedium
	}
}

func matchLabel(line string) (string, string, bool) {
	m := labelLine.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	key, ok := labels[strings.ToLower(strings.TrimSpace(m[1]))]
	if !ok {
		return "", "", false
	}
	return key, strings.TrimSpace(m[2]), true
}

// isHeaderEcho reports lines such as "**Ingredients**" that repeat a section
// name without the colon.
func isHeaderEcho(line string) bool {
	word := strings.ToLower(strings.Trim(line, " \t#*_:-"))
	_, ok := labels[word]
	return ok
}

func appendItem(list []string, raw string, clean func(string) string) []string {
	if raw == "" {
		return list
	}
	// "1.5 cups flour" starts with a quantity, not a step number.
	if !decimalLead.MatchString(raw) {
		raw = listMarker.ReplaceAllString(raw, "")
	}
	if item := clean(raw); item != "" {
		return append(list, item)
	}
	return list
}

func stripEmphasis(s string) string {
	return strings.Trim(s, " *_#\"")
}

func firstNumber(s string) string {
	return firstDigit.FindString(s)
}
