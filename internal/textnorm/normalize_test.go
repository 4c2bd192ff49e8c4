package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty string stays empty", "", ""},
		{"curly single quotes become straight", "Grandma’s ‘best’", "Grandma's 'best'"},
		{"curly double quotes become straight", "“crispy”", `"crispy"`},
		{"dashes become hyphens", "10–15 min — covered", "10-15 min - covered"},
		{"ellipsis becomes three periods", "stir…", "stir..."},
		{"other non-ascii is dropped", "café crème 🍰", "caf crme"},
		{"surrounding whitespace is trimmed", "  \tsalt \n", "salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"“Smoky” chili — extra hot…",
		"Jalapeño poppers",
		"plain ascii text",
		"……",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestInstruction(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"numbered step", "1. Preheat the oven", "Preheat the oven"},
		{"step label", "Step 2: Whisk the eggs", "Whisk the eggs"},
		{"lowercase step label", "step 12: Rest the dough", "Rest the dough"},
		{"parenthesised ordinal", "(3) Fold in the flour", "Fold in the flour"},
		{"bullet glyph", "• Serve warm", "Serve warm"},
		{"no marker", "Season to taste", "Season to taste"},
		{"only the prefix is removed", "1. Bake 2. minutes", "Bake 2. minutes"},
		{"leading decimal is not a step number", "2.5 hours of resting is enough", "2.5 hours of resting is enough"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Instruction(tt.in))
		})
	}
}

func TestIngredient(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bullet", "• 2 cups flour", "2 cups flour"},
		{"asterisk", "* 1 egg", "1 egg"},
		{"hyphen", "- pinch of salt", "pinch of salt"},
		{"middle dot", "· 3 cloves garlic", "3 cloves garlic"},
		{"indented bullet", "   - butter", "butter"},
		{"no bullet", "200g pasta", "200g pasta"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ingredient(tt.in))
		})
	}
}

func TestExtractNumber(t *testing.T) {
	assert.Equal(t, 25, ExtractNumber("25g"))
	assert.Equal(t, 350, ExtractNumber("approx 350 kcal"))
	assert.Equal(t, 0, ExtractNumber("n/a"))
	assert.Equal(t, 0, ExtractNumber(""))
}

func TestLines(t *testing.T) {
	got := Lines([]string{"- flour", "  ", "* sugar", ""}, Ingredient)
	assert.Equal(t, []string{"flour", "sugar"}, got)
}
