package model

// Nutrition holds per-serving values as display strings such as "25g". Each
// value starts with an integer.
type Nutrition struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fats     string `json:"fats"`
}

// DefaultNutrition is applied to saved recipes that arrive without any values.
var DefaultNutrition = Nutrition{
	Calories: "350",
	Protein:  "15g",
	Carbs:    "30g",
	Fats:     "18g",
}

// IsZero reports whether no value has been set.
func (n Nutrition) IsZero() bool {
	return n == Nutrition{}
}
