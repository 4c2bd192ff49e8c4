package service

import (
	"strings"
)

const maxSuggestions = 5

var ingredientDishes = map[string][]string{
	"chicken":   {"Chicken Alfredo", "Chicken Parmesan", "Roast Chicken", "Chicken Curry", "Chicken Soup"},
	"beef":      {"Beef Stew", "Beef Tacos", "Beef Stir-fry", "Beef Burger", "Beef Lasagna"},
	"pork":      {"Pulled Pork", "Pork Chops", "Pork Stir-fry", "Pork Roast", "Pork Tenderloin"},
	"fish":      {"Grilled Fish", "Fish Tacos", "Fish Curry", "Baked Fish", "Fish Stew"},
	"vegetable": {"Vegetable Stir-fry", "Roasted Vegetables", "Vegetable Soup", "Vegetable Curry", "Vegetable Pasta"},
	"pasta":     {"Pasta Carbonara", "Pasta Alfredo", "Pasta Bolognese", "Pasta Primavera", "Pasta Salad"},
	"rice":      {"Fried Rice", "Rice Bowl", "Rice Pilaf", "Risotto", "Rice Pudding"},
	"potato":    {"Mashed Potatoes", "Roasted Potatoes", "Potato Soup", "Potato Salad", "Potato Curry"},
}

// ingredientOrder fixes the lookup order so results do not depend on map
// iteration.
var ingredientOrder = []string{"chicken", "beef", "pork", "fish", "vegetable", "pasta", "rice", "potato"}

var baseDishes = []string{
	"Pasta", "Pizza", "Salad", "Soup", "Stew", "Curry", "Stir-fry", "Casserole",
	"Roast", "Burger", "Sandwich", "Taco", "Burrito", "Bowl", "Risotto", "Paella",
}

// Suggest proposes up to five dish names for a partially typed request.
// Inputs shorter than two characters get no suggestions.
func Suggest(input string) []string {
	in := strings.TrimSpace(input)
	if len([]rune(in)) < 2 {
		return []string{}
	}
	lower := strings.ToLower(in)

	var out []string
	for _, ingredient := range ingredientOrder {
		if strings.Contains(lower, ingredient) {
			out = append(out, ingredientDishes[ingredient]...)
		}
	}

	if len(out) == 0 {
		for _, dish := range baseDishes {
			if strings.Contains(strings.ToLower(dish), lower) {
				out = append(out, dish, dish+" with Vegetables", dish+" with Chicken")
			}
		}
	}

	if len(out) == 0 {
		out = []string{
			in + " Special",
			"Homemade " + in,
			"Traditional " + in,
			"Quick " + in,
			in + " Delight",
		}
	}

	return dedupe(out, maxSuggestions)
}

func dedupe(in []string, limit int) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, limit)
	for _, s := range in {
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}
