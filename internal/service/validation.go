package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pageza/recipeshare/backend/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names so messages match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// RecipeForm is a manually authored recipe.
type RecipeForm struct {
	Title        string          `json:"title" validate:"required,min=3"`
	Description  string          `json:"description" validate:"required,min=10"`
	PrepTime     string          `json:"prepTime" validate:"required"`
	CookTime     string          `json:"cookTime" validate:"required"`
	Servings     string          `json:"servings" validate:"required"`
	Difficulty   string          `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Ingredients  []string        `json:"ingredients" validate:"min=1,dive,min=2"`
	Instructions []string        `json:"instructions" validate:"min=1,dive,min=5"`
	Tips         []string        `json:"tips"`
	Tags         []string        `json:"tags" validate:"dive,min=2"`
	Nutrition    model.Nutrition `json:"nutrition"`
	ImageURL     string          `json:"imageUrl" validate:"omitempty,url"`
}

// normalized trims every field and drops blank list rows, which the form
// leaves behind when a row is added and not filled in.
func (f RecipeForm) normalized() RecipeForm {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.PrepTime = strings.TrimSpace(f.PrepTime)
	f.CookTime = strings.TrimSpace(f.CookTime)
	f.Servings = strings.TrimSpace(f.Servings)
	f.Difficulty = strings.TrimSpace(f.Difficulty)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
	f.Ingredients = compact(f.Ingredients)
	f.Instructions = compact(f.Instructions)
	f.Tips = compact(f.Tips)
	f.Tags = compact(f.Tags)
	return f
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ValidateRecipeForm checks a manually authored recipe and returns the
// cleaned form. The error is always ValidationErrors.
func ValidateRecipeForm(f RecipeForm) (RecipeForm, error) {
	f = f.normalized()
	if err := validateStruct(f); err != nil {
		return f, err
	}
	return f, nil
}

// ProfileUpdate carries the editable profile fields. Nil fields are left
// unchanged.
type ProfileUpdate struct {
	Name            *string `json:"name" validate:"omitempty,min=2,max=80"`
	Bio             *string `json:"bio" validate:"omitempty,max=500"`
	Website         *string `json:"website" validate:"omitempty,url"`
	ProfileImageURL *string `json:"profileImageUrl" validate:"omitempty,url"`
}

// Registration is the demo sign-up form.
type Registration struct {
	Name  string `json:"name" validate:"required,min=2,max=80"`
	Email string `json:"email" validate:"required,email"`
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, FieldError{Field: e.Field(), Message: fieldMessage(e)})
	}
	return out
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("needs at least %s entries", e.Param())
		}
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	default:
		return "is invalid"
	}
}
