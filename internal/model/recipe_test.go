package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficulty(t *testing.T) {
	assert.True(t, DifficultyHard.Valid())
	assert.False(t, Difficulty("Expert").Valid())
	assert.Equal(t, DifficultyMedium, Difficulty("").OrDefault())
	assert.Equal(t, DifficultyEasy, DifficultyEasy.OrDefault())
}

func TestRecipe_Publishable(t *testing.T) {
	t.Run("needs an ingredient and an instruction", func(t *testing.T) {
		r := Recipe{Ingredients: []string{"flour"}, Instructions: []string{" "}}
		assert.False(t, r.Publishable())

		r.Instructions = []string{"Mix everything"}
		assert.True(t, r.Publishable())
	})

	t.Run("a failed generation is never publishable", func(t *testing.T) {
		r := Recipe{Ingredients: []string{"flour"}, Instructions: []string{"Mix"}, Error: "boom"}
		assert.False(t, r.Publishable())
	})
}

func TestRecipe_Clone(t *testing.T) {
	r := Recipe{Tags: []string{"quick"}, Comments: []Comment{{ID: "c1"}}}
	c := r.Clone()
	c.Tags[0] = "slow"
	c.Comments[0].ID = "c2"

	assert.Equal(t, "quick", r.Tags[0])
	assert.Equal(t, "c1", r.Comments[0].ID)
}

func TestRecipe_HasTag(t *testing.T) {
	r := Recipe{Tags: []string{"Vegan", "Quick"}}
	assert.True(t, r.HasTag("Vegan"))
	assert.False(t, r.HasTag("vegan"), "tags match case-sensitively")
	assert.False(t, r.HasTag("dessert"))
}
