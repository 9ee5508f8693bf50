package recipe

import (
	"fmt"
	"strings"

	"recipe-finder/internal/pkg/common"
)

// Recipe is an immutable catalog entry.
type Recipe struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

// HasTag reports whether tag is present in the recipe's tag set.
func (r Recipe) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// RankedRecipe is a Recipe scored against one query. It is derived per query
// and never persisted.
type RankedRecipe struct {
	Recipe
	MatchPercentage    int      `json:"match_percentage"`
	MatchedIngredients []string `json:"matched_ingredients"`
	MissingIngredients []string `json:"missing_ingredients"`
	IsFullMatch        bool     `json:"is_full_match"`
}

// SuggestedDish is a synthesized dish proposal. It is not a catalog entry.
type SuggestedDish struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Category    string   `json:"category"`
}

// DietaryPreference is one of a fixed set of tags a recipe must carry to be
// eligible for a query.
type DietaryPreference string

const (
	Vegetarian DietaryPreference = "vegetarian"
	Halal      DietaryPreference = "halal"
	Quick      DietaryPreference = "quick"
	Spicy      DietaryPreference = "spicy"
	Breakfast  DietaryPreference = "breakfast"
	Snack      DietaryPreference = "snack"
	Dinner     DietaryPreference = "dinner"
)

var preferenceLabels = map[DietaryPreference]string{
	Vegetarian: "Vegetarian",
	Halal:      "Halal",
	Quick:      "Quick",
	Spicy:      "Spicy",
	Breakfast:  "Breakfast",
	Snack:      "Snack",
	Dinner:     "Dinner",
}

// AllPreferences returns every dietary preference in display order.
func AllPreferences() []DietaryPreference {
	return []DietaryPreference{Vegetarian, Halal, Quick, Spicy, Breakfast, Snack, Dinner}
}

// Label returns the display label of the preference.
func (p DietaryPreference) Label() string {
	if label, ok := preferenceLabels[p]; ok {
		return label
	}
	return string(p)
}

// Valid reports whether p belongs to the closed preference set.
func (p DietaryPreference) Valid() bool {
	_, ok := preferenceLabels[p]
	return ok
}

// ParsePreference parses a preference tag case-insensitively.
func ParsePreference(s string) (DietaryPreference, error) {
	p := DietaryPreference(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", common.ErrUnknownPreference.WithCause(fmt.Errorf("unknown preference %q", s))
	}
	return p, nil
}

// ParsePreferences parses every tag in values, failing on the first unknown one.
func ParsePreferences(values []string) ([]DietaryPreference, error) {
	prefs := make([]DietaryPreference, 0, len(values))
	for _, v := range values {
		p, err := ParsePreference(v)
		if err != nil {
			return nil, err
		}
		prefs = append(prefs, p)
	}
	return prefs, nil
}

func hasPreference(prefs []DietaryPreference, want DietaryPreference) bool {
	for _, p := range prefs {
		if p == want {
			return true
		}
	}
	return false
}
