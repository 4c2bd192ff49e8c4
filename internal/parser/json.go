package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/textnorm"
)

var fencedJSON = regexp.MustCompile("(?is)```json\\s*(.*?)```")

// ExtractJSON pulls a JSON object out of a model reply. A fenced ```json block
// wins; otherwise the span from the first '{' to the last '}' is used.
func ExtractJSON(raw string) (json.RawMessage, error) {
	data, perr := extract(raw)
	if perr != nil {
		return nil, perr
	}
	return data, nil
}

func extract(raw string) (json.RawMessage, *ParseError) {
	candidate := ""
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		candidate = strings.TrimSpace(m[1])
	} else {
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if start == -1 || end <= start {
			return nil, &ParseError{Stage: "extract", Reason: "no candidate span", Err: ErrNoJSON}
		}
		candidate = raw[start : end+1]
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, &ParseError{Stage: "extract", Reason: "candidate is not a JSON object", Err: err}
	}
	return json.RawMessage(candidate), nil
}

// Result is either a decoded recipe or the ParseError explaining why there is
// none.
type Result struct {
	Recipe *model.Recipe
	Err    *ParseError
}

func Success(r *model.Recipe) Result { return Result{Recipe: r} }

func Failure(err *ParseError) Result { return Result{Err: err} }

// OK reports whether the result carries a recipe.
func (r Result) OK() bool { return r.Err == nil && r.Recipe != nil }

// DecodeRecipe extracts and validates a recipe from a model reply. Strings are
// normalized and list entries lose their bullets and step numbers.
func DecodeRecipe(raw string) Result {
	data, perr := extract(raw)
	if perr != nil {
		return Failure(perr)
	}

	var w wireRecipe
	if err := json.Unmarshal(data, &w); err != nil {
		return Failure(&ParseError{Stage: "decode", Reason: "unexpected field types", Err: err})
	}

	r := w.toRecipe()
	if r.Title == "" {
		return Failure(&ParseError{Stage: "decode", Reason: "recipe has no title"})
	}
	return Success(r)
}

type wireRecipe struct {
	Title        FlexString    `json:"title"`
	Name         FlexString    `json:"name"`
	Description  FlexString    `json:"description"`
	PrepTime     FlexString    `json:"prepTime"`
	PrepTimeAlt  FlexString    `json:"prep_time"`
	CookTime     FlexString    `json:"cookTime"`
	CookTimeAlt  FlexString    `json:"cook_time"`
	Servings     FlexString    `json:"servings"`
	Difficulty   FlexString    `json:"difficulty"`
	Ingredients  FlexList      `json:"ingredients"`
	Instructions FlexList      `json:"instructions"`
	Tips         FlexList      `json:"tips"`
	Tags         FlexList      `json:"tags"`
	Nutrition    wireNutrition `json:"nutrition"`
}

type wireNutrition struct {
	Calories FlexString `json:"calories"`
	Protein  FlexString `json:"protein"`
	Carbs    FlexString `json:"carbs"`
	Fats     FlexString `json:"fats"`
	Fat      FlexString `json:"fat"`
}

func (w wireRecipe) toRecipe() *model.Recipe {
	title := firstNonEmpty(w.Title.Value, w.Name.Value)
	return &model.Recipe{
		Title:        textnorm.Normalize(title),
		Description:  textnorm.Normalize(w.Description.Value),
		PrepTime:     minutes(firstNonEmpty(w.PrepTime.Value, w.PrepTimeAlt.Value)),
		CookTime:     minutes(firstNonEmpty(w.CookTime.Value, w.CookTimeAlt.Value)),
		Servings:     minutes(w.Servings.Value),
		Difficulty:   ClassifyDifficulty(w.Difficulty.Value),
		Ingredients:  textnorm.Lines(w.Ingredients, textnorm.Ingredient),
		Instructions: textnorm.Lines(w.Instructions, textnorm.Instruction),
		Tips:         textnorm.Lines(w.Tips, textnorm.Normalize),
		Tags:         textnorm.Lines(w.Tags, textnorm.Normalize),
		Nutrition: model.Nutrition{
			Calories: textnorm.Normalize(w.Nutrition.Calories.Value),
			Protein:  textnorm.Normalize(w.Nutrition.Protein.Value),
			Carbs:    textnorm.Normalize(w.Nutrition.Carbs.Value),
			Fats:     textnorm.Normalize(firstNonEmpty(w.Nutrition.Fats.Value, w.Nutrition.Fat.Value)),
		},
	}
}

// minutes keeps the leading number of values like "15 minutes". Values
// without digits are kept as-is after normalization.
func minutes(s string) string {
	s = textnorm.Normalize(s)
	if n := textnorm.ExtractNumber(s); n > 0 {
		return fmt.Sprintf("%d", n)
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
