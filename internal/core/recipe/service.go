package recipe

import (
	"time"

	"recipe-finder/internal/core/ingredient"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// starterIngredients are offered to users who have not entered anything yet.
var starterIngredients = []string{"chicken", "rice", "pasta", "egg", "garlic", "onion", "tomato", "cheese"}

const maxStarters = 6

// FindResult is everything a front end needs to render one query.
type FindResult struct {
	Ingredients    []string       `json:"ingredients"`
	Ranked         []RankedRecipe `json:"-"`
	FullMatches    []RankedRecipe `json:"full_matches"`
	PartialMatches []RankedRecipe `json:"partial_matches"`
	Suggestion     *SuggestedDish `json:"suggestion,omitempty"`
}

// Finder runs queries against a read-only catalog.
type Finder struct {
	catalog   []Recipe
	byID      map[string]int
	suggester *Suggester
}

// NewFinder creates a Finder over catalog. The slice is copied, so later
// changes by the caller are not observed.
func NewFinder(catalog []Recipe, suggester *Suggester) *Finder {
	if suggester == nil {
		suggester = NewSuggester(nil)
	}
	f := &Finder{
		catalog:   make([]Recipe, 0, len(catalog)),
		byID:      make(map[string]int, len(catalog)),
		suggester: suggester,
	}
	for _, r := range catalog {
		if _, dup := f.byID[r.ID]; dup {
			continue
		}
		f.byID[r.ID] = len(f.catalog)
		f.catalog = append(f.catalog, copyRecipe(r))
	}
	return f
}

// Find ranks the catalog for the given ingredients and, when nothing
// qualifies, asks the suggester for a dish.
func (f *Finder) Find(ingredients []string, preferences []DietaryPreference) *FindResult {
	start := time.Now()

	ranked := Rank(f.catalog, ingredients, preferences)
	result := &FindResult{
		Ingredients:    append([]string{}, ingredients...),
		Ranked:         ranked,
		FullMatches:    FullMatches(ranked),
		PartialMatches: PartialMatches(ranked),
	}
	if len(ingredients) > 0 && len(ranked) == 0 {
		result.Suggestion = f.suggester.Suggest(ingredients, preferences)
	}

	common.LogDebug("Recipe query completed",
		zap.Int("ingredient_count", len(ingredients)),
		zap.Int("preference_count", len(preferences)),
		zap.Int("full_matches", len(result.FullMatches)),
		zap.Int("partial_matches", len(result.PartialMatches)),
		zap.Bool("suggested", result.Suggestion != nil),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result
}

// FindRaw parses comma separated input, drops repeats, and runs Find.
func (f *Finder) FindRaw(rawInput string, preferences []DietaryPreference) *FindResult {
	return f.Find(common.UniqueStrings(ingredient.ParseList(rawInput)), preferences)
}

// Recipe looks up a catalog entry by id.
func (f *Finder) Recipe(id string) (Recipe, bool) {
	i, ok := f.byID[id]
	if !ok {
		return Recipe{}, false
	}
	return copyRecipe(f.catalog[i]), true
}

// Catalog returns a copy of the catalog in load order.
func (f *Finder) Catalog() []Recipe {
	out := make([]Recipe, 0, len(f.catalog))
	for _, r := range f.catalog {
		out = append(out, copyRecipe(r))
	}
	return out
}

// MergeIngredients appends newly added ingredients to an existing list,
// skipping any already present.
func MergeIngredients(existing, added []string) []string {
	merged := make([]string, 0, len(existing)+len(added))
	merged = append(merged, existing...)
	merged = append(merged, added...)
	return common.UniqueStrings(merged)
}

// StarterIngredients returns up to six common ingredients the user does not
// have yet.
func StarterIngredients(have []string) []string {
	owned := make(map[string]bool, len(have))
	for _, h := range have {
		owned[ingredient.Normalize(h)] = true
	}
	out := make([]string, 0, maxStarters)
	for _, s := range starterIngredients {
		if owned[s] {
			continue
		}
		out = append(out, s)
		if len(out) == maxStarters {
			break
		}
	}
	return out
}
