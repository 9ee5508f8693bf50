package recipe

import (
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"

	"recipe-finder/internal/pkg/common"
)

// Rand picks a uniformly random index in [0, n).
type Rand interface {
	IntN(n int) int
}

type dishTemplate struct {
	pattern  string
	category string
}

var (
	carbKeywords       = []string{"pasta", "rice", "bread", "potato", "noodles", "tortilla", "oats"}
	proteinKeywords    = []string{"chicken", "beef", "egg", "tofu", "shrimp", "fish", "beans", "chickpeas"}
	vegetarianProteins = []string{"egg", "tofu", "beans", "chickpeas", "paneer", "tempeh"}
	halalProteins      = []string{"chicken", "beef", "egg", "tofu", "fish", "shrimp", "beans"}
	seasoningKeywords  = []string{"salt", "pepper", "paprika", "garlic", "herbs", "cumin", "oregano", "basil", "ginger", "soy sauce", "chili"}

	generalTemplates = []dishTemplate{
		{pattern: "{protein} with {carb}", category: "Main Dish"},
		{pattern: "Sautéed {protein} and {carb}", category: "Quick Meal"},
		{pattern: "{carb} Bowl with {protein}", category: "Bowl"},
		{pattern: "Simple {protein} {carb} Stir-fry", category: "Stir-fry"},
		{pattern: "Homestyle {protein} over {carb}", category: "Comfort Food"},
	}

	quickTemplates = []dishTemplate{
		{pattern: "Quick {protein} {carb}", category: "Quick Meal"},
		{pattern: "5-Minute {protein} with {carb}", category: "Express"},
		{pattern: "Easy {carb} and {protein}", category: "Simple"},
	}
)

const (
	defaultCarb              = "rice"
	defaultProtein           = "chicken"
	defaultVegetarianProtein = "tofu"
	defaultSeasoning         = "garlic"
)

// Suggester synthesizes a dish name from ingredient categories when no
// catalog recipe qualifies.
type Suggester struct {
	rng Rand
}

// NewSuggester returns a Suggester drawing templates from rng. A nil rng uses
// the process-wide random source.
func NewSuggester(rng Rand) *Suggester {
	return &Suggester{rng: rng}
}

// NewSeededSuggester returns a Suggester whose template choices repeat for a
// given seed.
func NewSeededSuggester(seed uint64) *Suggester {
	return NewSuggester(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Suggest proposes a dish from the user's ingredients, or returns nil when the
// ingredients carry no carbohydrate or protein signal. Callers invoke it when
// ranking produced nothing.
func (s *Suggester) Suggest(userIngredients []string, preferences []DietaryPreference) *SuggestedDish {
	if len(userIngredients) == 0 {
		return nil
	}

	vegetarian := hasPreference(preferences, Vegetarian)
	proteins := proteinKeywords
	switch {
	case vegetarian:
		proteins = vegetarianProteins
	case hasPreference(preferences, Halal):
		proteins = halalProteins
	}

	var carb, protein, seasoning string
	for _, raw := range userIngredients {
		item := strings.ToLower(strings.TrimSpace(raw))
		if item == "" {
			continue
		}
		if carb == "" && inCategory(item, carbKeywords) {
			carb = item
		}
		if protein == "" && inCategory(item, proteins) {
			protein = item
		}
		if seasoning == "" && inCategory(item, seasoningKeywords) {
			seasoning = item
		}
	}

	if carb == "" && protein == "" {
		return nil
	}

	if carb == "" {
		carb = defaultCarb
	}
	if protein == "" {
		protein = defaultProtein
		if vegetarian {
			protein = defaultVegetarianProtein
		}
	}
	if seasoning == "" {
		seasoning = defaultSeasoning
	}

	templates := generalTemplates
	if hasPreference(preferences, Quick) {
		templates = quickTemplates
	}
	tmpl := templates[s.intN(len(templates))]

	name := strings.NewReplacer(
		"{protein}", capitalize(protein),
		"{carb}", capitalize(carb),
	).Replace(tmpl.pattern)

	return &SuggestedDish{
		Name:        name,
		Ingredients: common.UniqueStrings([]string{carb, protein, seasoning}),
		Category:    tmpl.category,
	}
}

func (s *Suggester) intN(n int) int {
	if s == nil || s.rng == nil {
		return rand.IntN(n)
	}
	return s.rng.IntN(n)
}

// inCategory uses the same two-way containment rule as ingredient matching.
func inCategory(item string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(item, kw) || strings.Contains(kw, item) {
			return true
		}
	}
	return false
}

// capitalize upper-cases the first letter and leaves the rest untouched.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
