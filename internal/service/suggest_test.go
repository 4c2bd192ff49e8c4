package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"too short", "p", []string{}},
		{"blank", "   ", []string{}},
		{
			"ingredient keyword",
			"leftover chicken",
			[]string{"Chicken Alfredo", "Chicken Parmesan", "Roast Chicken", "Chicken Curry", "Chicken Soup"},
		},
		{
			"several ingredients are capped at five",
			"rice and potato",
			[]string{"Fried Rice", "Rice Bowl", "Rice Pilaf", "Risotto", "Rice Pudding"},
		},
		{
			"partial dish name",
			"bur",
			[]string{"Burger", "Burger with Vegetables", "Burger with Chicken", "Burrito", "Burrito with Vegetables"},
		},
		{
			"generic phrases",
			"Shakshuka",
			[]string{"Shakshuka Special", "Homemade Shakshuka", "Traditional Shakshuka", "Quick Shakshuka", "Shakshuka Delight"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.input))
		})
	}
}

func TestSuggest_Dedupes(t *testing.T) {
	got := dedupe([]string{"Risotto", "risotto", "Paella"}, 5)
	assert.Equal(t, []string{"Risotto", "Paella"}, got)
}
