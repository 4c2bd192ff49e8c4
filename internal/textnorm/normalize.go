// Package textnorm cleans text returned by generation backends before it is
// stored on a recipe.
package textnorm

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var replacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"–", "-",
	"—", "-",
	"…", "...",
)

var (
	instructionPrefix = regexp.MustCompile(`(?i)^(\d+\.|\s*Step\s*\d+:|\s*\(\d+\)|\s*•)\s*`)
	ingredientPrefix  = regexp.MustCompile(`^(\s*•|\s*\*|\s*-|\s*·)\s*`)
	leadingNumber     = regexp.MustCompile(`\d+`)
	leadingDecimal    = regexp.MustCompile(`^\s*\d+\.\d`)
)

// Normalize maps smart punctuation to ASCII, drops any other non-ASCII rune
// and trims surrounding whitespace.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = replacer.Replace(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Instruction strips a leading step marker ("3. ", "Step 3: ", "(3)", "•")
// and normalizes the remainder. A leading decimal such as "2.5 hours" is kept.
func Instruction(s string) string {
	if s == "" {
		return ""
	}
	if leadingDecimal.MatchString(s) {
		return Normalize(s)
	}
	return Normalize(instructionPrefix.ReplaceAllString(s, ""))
}

// Ingredient strips a leading bullet ("•", "*", "-", "·") and normalizes the
// remainder.
func Ingredient(s string) string {
	if s == "" {
		return ""
	}
	return Normalize(ingredientPrefix.ReplaceAllString(s, ""))
}

// ExtractNumber returns the first run of digits in s, or 0.
func ExtractNumber(s string) int {
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// Lines applies fn to every entry and drops the ones that end up empty.
func Lines(in []string, fn func(string) string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if v := fn(s); v != "" {
			out = append(out, v)
		}
	}
	return out
}
