package parser

import (
	"errors"
	"fmt"
)

// ErrNoJSON is returned when a reply contains nothing that looks like a JSON
// object.
var ErrNoJSON = errors.New("no JSON object found in response")

// ParseError reports a reply that could not be turned into a recipe.
type ParseError struct {
	// Stage is "extract" when no JSON span could be located or parsed and
	// "decode" when the JSON did not describe a usable recipe.
	Stage  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", e.Stage, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", e.Stage, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
