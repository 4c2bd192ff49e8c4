package service

import (
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/textnorm"
)

// mockRoute selects a canned recipe when the prompt contains any keyword.
type mockRoute struct {
	keywords []string
	skeleton func() *model.Recipe
}

// mockGenerator is the network-free fallback of one backend. Everything but
// the placeholder image is a pure function of the prompt.
type mockGenerator struct {
	provenance string
	routes     []mockRoute
	fallback   func() *model.Recipe
	// retitle rewrites the fallback title from the prompt. It is only used
	// when no route matched.
	retitle func(prompt string) string
}

func (m mockGenerator) Generate(prompt string) *model.Recipe {
	lower := strings.ToLower(prompt)
	for _, route := range m.routes {
		for _, kw := range route.keywords {
			if strings.Contains(lower, kw) {
				return m.finish(route.skeleton())
			}
		}
	}

	r := m.fallback()
	if m.retitle != nil {
		if title := m.retitle(prompt); title != "" {
			r.Title = title
		}
	}
	return m.finish(r)
}

func (m mockGenerator) finish(r *model.Recipe) *model.Recipe {
	r.GeneratedBy = m.provenance
	r.ImageURL = placeholderImages[rand.IntN(len(placeholderImages))]
	return r
}

var placeholderImages = []string{
	"https://images.unsplash.com/photo-1546069901-ba9599a7e63c",
	"https://images.unsplash.com/photo-1512621776951-a57141f2eefd",
	"https://images.unsplash.com/photo-1504674900247-0877df9cc836",
	"https://images.unsplash.com/photo-1490645935967-10de6ba17061",
}

var groqMock = mockGenerator{
	provenance: "mock",
	routes: []mockRoute{
		{keywords: []string{"pasta", "italian"}, skeleton: pastaSkeleton},
		{keywords: []string{"chicken"}, skeleton: chickenSkeleton},
		{keywords: []string{"cake", "dessert"}, skeleton: dessertSkeleton},
		{keywords: []string{"vegetarian", "vegan"}, skeleton: vegetarianSkeleton},
	},
	fallback: defaultSkeleton,
	retitle:  promptTitle,
}

var geminiMock = mockGenerator{
	provenance: "gemini-mock",
	routes: []mockRoute{
		{keywords: []string{"breakfast", "morning"}, skeleton: breakfastSkeleton},
		{keywords: []string{"dessert", "sweet"}, skeleton: dessertSkeleton},
		{keywords: []string{"vegetarian", "vegan"}, skeleton: vegetarianSkeleton},
	},
	fallback: defaultSkeleton,
	retitle:  promptTitle,
}

var openAIMock = mockGenerator{
	provenance: "openai-mock",
	routes: []mockRoute{
		{keywords: []string{"pasta", "spaghetti", "italian"}, skeleton: pastaSkeleton},
		{keywords: []string{"chicken", "poultry"}, skeleton: chickenSkeleton},
		{keywords: []string{"vegetarian", "vegan"}, skeleton: vegetarianSkeleton},
		{keywords: []string{"dessert", "sweet", "cake", "cookie"}, skeleton: dessertSkeleton},
		{keywords: []string{"indian", "curry"}, skeleton: currySkeleton},
		{keywords: []string{"mexican", "taco", "burrito"}, skeleton: tacoSkeleton},
	},
	fallback: defaultSkeleton,
	retitle: func(prompt string) string {
		if t := promptTitle(prompt); t != "" {
			return "Delicious " + t
		}
		return ""
	},
}

// promptTitle capitalizes a cleaned prompt. Prompts of three characters or
// fewer keep the canned title.
func promptTitle(prompt string) string {
	p := textnorm.Normalize(prompt)
	if len(p) <= 3 {
		return ""
	}
	if len(p) > 60 {
		p = strings.TrimSpace(p[:60])
	}
	r, size := utf8.DecodeRuneInString(p)
	return string(unicode.ToUpper(r)) + p[size:]
}

func defaultSkeleton() *model.Recipe {
	return &model.Recipe{
		Title:       "Delicious Mock Recipe",
		Description: "A simple, satisfying dish made from pantry staples while the recipe service is unavailable.",
		PrepTime:    "15",
		CookTime:    "25",
		Servings:    "4",
		Difficulty:  model.DifficultyMedium,
		Ingredients: []string{
			"2 tablespoons olive oil",
			"1 onion, diced",
			"2 cloves garlic, minced",
			"1 can diced tomatoes",
			"Salt and pepper to taste",
		},
		Instructions: []string{
			"Heat the olive oil in a large pan over medium heat.",
			"Cook the onion until soft, about 5 minutes.",
			"Add the garlic and cook for 1 minute.",
			"Stir in the tomatoes and simmer for 15 minutes.",
			"Season with salt and pepper and serve warm.",
		},
		Tips:      []string{"Add fresh herbs at the end for extra flavor."},
		Tags:      []string{"easy", "weeknight"},
		Nutrition: model.Nutrition{Calories: "320", Protein: "8g", Carbs: "35g", Fats: "14g"},
	}
}

func pastaSkeleton() *model.Recipe {
	return &model.Recipe{
		Title:       "Italian Pasta Delight",
		Description: "Al dente pasta tossed in a garlicky tomato sauce with basil and parmesan.",
		PrepTime:    "10",
		CookTime:    "20",
		Servings:    "4",
		Difficulty:  model.DifficultyEasy,
		Ingredients: []string{
			"400g spaghetti",
			"3 tablespoons olive oil",
			"4 cloves garlic, sliced",
			"1 can crushed tomatoes",
			"Fresh basil leaves",
			"50g grated parmesan",
		},
		Instructions: []string{
			"Cook the spaghetti in salted boiling water until al dente.",
			"Warm the olive oil and gently fry the garlic until golden.",
			"Add the tomatoes and simmer for 10 minutes.",
			"Toss the drained pasta with the sauce and torn basil.",
			"Serve topped with parmesan.",
		},
		Tips:      []string{"Save a cup of pasta water to loosen the sauce."},
		Tags:      []string{"italian", "pasta", "dinner"},
		Nutrition: model.Nutrition{Calories: "520", Protein: "18g", Carbs: "78g", Fats: "15g"},
	}
}

func chickenSkeleton() *model.Recipe {
	return &model.Recipe{
		Title:       "Herb Roasted Chicken",
		Description: "Juicy chicken thighs roasted with garlic, lemon and fresh herbs.",
		PrepTime:    "15",
		CookTime:    "40",
		Servings:    "4",
		Difficulty:  model.DifficultyMedium,
		Ingredients: []string{
			"8 chicken thighs",
			"2 tablespoons olive oil",
			"1 lemon, sliced",
			"4 cloves garlic, crushed",
			"2 sprigs rosemary",
			"Salt and pepper",
		},
		Instructions: []string{
			"Preheat the oven to 200C.",
			"Rub the chicken with oil, salt and pepper.",
			"Arrange in a roasting tin with lemon, garlic and rosemary.",
			"Roast for 40 minutes until the skin is crisp.",
			"Rest for 5 minutes before serving.",
		},
		Tips:      []string{"Pat the skin dry before seasoning for a crisper finish."},
		Tags:      []string{"chicken", "dinner", "roast"},
		Nutrition: model.Nutrition{Calories: "450", Protein: "38g", Carbs: "4g", Fats: "30g"},
	}
}

func dessertSkeleton() *model.Recipe {
	return &model.Recipe{
		Title:       "Sweet Cake Delight",
		Description: "A light vanilla sponge finished with whipped cream and berries.",
		PrepTime:    "20",
		CookTime:    "30",
		Servings:    "8",
		Difficulty:  model.DifficultyMedium,
		Ingredients: []string{
			"200g flour",
			"200g sugar",
			"200g butter, softened",
			"4 eggs",
			"1 teaspoon vanilla extract",
			"250ml whipping cream",
			"200g mixed berries",
		},
		Instructions: []string{
			"Preheat the oven to 180C and line two cake tins.",
			"Cream the butter and sugar until pale.",
			"Beat in the eggs and vanilla, then fold in the flour.",
			"Bake for 25 to 30 minutes and cool completely.",
			"Sandwich and top with whipped cream and berries.",
		},
		Tips:      []string{"Keep all ingredients at room temperature."},
		Tags:      []string{"dessert", "cake", "baking"},
		Nutrition: model.Nutrition{Calories: "410", Protein: "6g", Carbs: "45g", Fats: "24g"},
	}
}

func vegetarianSkeleton() *model.Recipe {
	return &model.Recipe{
		Title:       "Plant-Powered Bowl",
		Description: "Roasted vegetables, quinoa and chickpeas with a lemon tahini dressing.",
		PrepTime:    "15",
		CookTime:    "25",
		Servings:    "2",
		Difficulty:  model.DifficultyEasy,
		Ingredients: []string{
			"1 cup quinoa",
			"1 can chickpeas, drained",
			"1 sweet potato, cubed",
			"2 cups spinach",
			"2 tablespoons tahini",
			"1 lemon, juiced",
		},
		Instructions: []string{
			"Roast the sweet potato and chickpeas at 200C for 25 minutes.",
			"Cook the quinoa according to the packet.",
			"Whisk the tahini with lemon juice and a splash of water.",
			"Build bowls with spinach, quinoa and the roasted vegetables.",
			"Drizzle with the dressing and serve.",
		},
		Tips:      []string{"Swap the quinoa for brown rice if you prefer."},
		Tags:      []string{"vegetarian", "vegan", "healthy"},
		Nutrition: model.Nutrition{Calories: "480", Protein: "18g", Carbs: "68g", Fats: "15g"},
	}
}

func breakfastSkeleton() *model.Recipe {
	return &model.Recipe{
		Title:       "Sunrise Breakfast Skillet",
		Description: "Crispy potatoes, peppers and eggs cooked together in one pan.",
		PrepTime:    "10",
		CookTime:    "20",
		Servings:    "2",
		Difficulty:  model.DifficultyEasy,
		Ingredients: []string{
			"2 potatoes, diced",
			"1 red pepper, diced",
			"4 eggs",
			"1 tablespoon butter",
			"Chopped chives",
		},
		Instructions: []string{
			"Fry the potatoes in butter until golden, about 12 minutes.",
			"Add the pepper and cook for 3 minutes.",
			"Make four wells and crack in the eggs.",
			"Cover and cook until the whites are set.",
			"Sprinkle with chives and serve from the pan.",
		},
		Tips:      []string{"Parboil the potatoes the night before to save time."},
		Tags:      []string{"breakfast", "eggs", "one-pan"},
		Nutrition: model.Nutrition{Calories: "390", Protein: "17g", Carbs: "36g", Fats: "19g"},
	}
}

func currySkeleton() *model.Recipe {
	return &model.Recipe{
		Title:       "Weeknight Chickpea Curry",
		Description: "A fragrant tomato and coconut curry ready in half an hour.",
		PrepTime:    "10",
		CookTime:    "25",
		Servings:    "4",
		Difficulty:  model.DifficultyEasy,
		Ingredients: []string{
			"2 cans chickpeas, drained",
			"1 onion, chopped",
			"2 tablespoons curry paste",
			"1 can coconut milk",
			"1 can chopped tomatoes",
			"Fresh coriander",
		},
		Instructions: []string{
			"Soften the onion in a little oil.",
			"Stir in the curry paste and cook for 1 minute.",
			"Add the tomatoes, coconut milk and chickpeas.",
			"Simmer for 20 minutes until thickened.",
			"Finish with coriander and serve with rice.",
		},
		Tips:      []string{"A squeeze of lime brightens the sauce."},
		Tags:      []string{"indian", "curry", "vegetarian"},
		Nutrition: model.Nutrition{Calories: "430", Protein: "14g", Carbs: "40g", Fats: "24g"},
	}
}

func tacoSkeleton() *model.Recipe {
	return &model.Recipe{
		Title:       "Street-Style Tacos",
		Description: "Spiced beef tacos with salsa, onion and lime.",
		PrepTime:    "15",
		CookTime:    "15",
		Servings:    "4",
		Difficulty:  model.DifficultyEasy,
		Ingredients: []string{
			"500g minced beef",
			"2 teaspoons chili powder",
			"1 teaspoon cumin",
			"12 small corn tortillas",
			"1 white onion, finely chopped",
			"Salsa and lime wedges",
		},
		Instructions: []string{
			"Brown the beef with the chili powder and cumin.",
			"Warm the tortillas in a dry pan.",
			"Fill each tortilla with beef.",
			"Top with onion and salsa.",
			"Serve with lime wedges.",
		},
		Tips:      []string{"Double up the tortillas so they hold together."},
		Tags:      []string{"mexican", "tacos", "dinner"},
		Nutrition: model.Nutrition{Calories: "510", Protein: "30g", Carbs: "38g", Fats: "26g"},
	}
}
