// Package catalog filters and orders recipe collections for browse views.
package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pageza/recipeshare/backend/internal/model"
)

// SortMode selects the ordering applied after filtering.
type SortMode string

const (
	SortNewest   SortMode = "newest"
	SortPopular  SortMode = "popular"
	SortPrepAsc  SortMode = "prep-asc"
	SortPrepDesc SortMode = "prep-desc"
)

// FilterSpec describes the active filters. Empty fields are inactive; an
// empty Sort means newest first.
type FilterSpec struct {
	Text       string           `json:"text,omitempty" form:"q"`
	Difficulty model.Difficulty `json:"difficulty,omitempty" form:"difficulty"`
	Tags       []string         `json:"tags,omitempty" form:"tags"`
	Sort       SortMode         `json:"sort,omitempty" form:"sort"`
}

// InvalidFilterError is returned for a FilterSpec naming an unknown sort mode
// or difficulty.
type InvalidFilterError struct {
	Field string
	Value string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

// Validate rejects unknown sort modes and difficulties.
func (f FilterSpec) Validate() error {
	switch f.Sort {
	case "", SortNewest, SortPopular, SortPrepAsc, SortPrepDesc:
	default:
		return &InvalidFilterError{Field: "sort", Value: string(f.Sort)}
	}
	if f.Difficulty != "" && !f.Difficulty.Valid() {
		return &InvalidFilterError{Field: "difficulty", Value: string(f.Difficulty)}
	}
	return nil
}

// Query returns the recipes matching every active filter, ordered by
// f.Sort. Ties keep their input order. The input slice is not modified.
func Query(recipes []model.Recipe, f FilterSpec) ([]model.Recipe, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	text := strings.ToLower(strings.TrimSpace(f.Text))
	tags := make([]string, 0, len(f.Tags))
	for _, t := range f.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	out := make([]model.Recipe, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		if text != "" && !matchesText(r, text) {
			continue
		}
		if f.Difficulty != "" && r.Difficulty != f.Difficulty {
			continue
		}
		if len(tags) > 0 && !hasAnyTag(r, tags) {
			continue
		}
		out = append(out, *r)
	}

	switch f.Sort {
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Likes > out[j].Likes })
	case SortPrepAsc:
		sort.SliceStable(out, func(i, j int) bool { return TotalMinutes(out[i]) < TotalMinutes(out[j]) })
	case SortPrepDesc:
		sort.SliceStable(out, func(i, j int) bool { return TotalMinutes(out[i]) > TotalMinutes(out[j]) })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out, nil
}

// TotalMinutes is prep plus cook time. Values that do not start with a
// number count as zero.
func TotalMinutes(r model.Recipe) int {
	return leadingInt(r.PrepTime) + leadingInt(r.CookTime)
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func matchesText(r *model.Recipe, text string) bool {
	if strings.Contains(strings.ToLower(r.Title), text) ||
		strings.Contains(strings.ToLower(r.Description), text) {
		return true
	}
	for _, t := range r.Tags {
		if strings.Contains(strings.ToLower(t), text) {
			return true
		}
	}
	return false
}

func hasAnyTag(r *model.Recipe, tags []string) bool {
	for _, t := range tags {
		if r.HasTag(t) {
			return true
		}
	}
	return false
}
