package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceRand returns the queued indexes in order, wrapping around.
type sequenceRand struct {
	values []int
	next   int
	calls  []int
}

func (r *sequenceRand) IntN(n int) int {
	r.calls = append(r.calls, n)
	v := r.values[r.next%len(r.values)]
	r.next++
	return v % n
}

func TestSuggest_NoIngredients(t *testing.T) {
	t.Parallel()

	s := NewSuggester(&sequenceRand{values: []int{0}})
	assert.Nil(t, s.Suggest(nil, nil))
	assert.Nil(t, s.Suggest([]string{}, []DietaryPreference{Quick}))
}

func TestSuggest_SeasoningOnlyReturnsNone(t *testing.T) {
	t.Parallel()

	s := NewSuggester(&sequenceRand{values: []int{0}})
	assert.Nil(t, s.Suggest([]string{"salt"}, nil))
	assert.Nil(t, s.Suggest([]string{"salt", "cumin", "  "}, nil))
}

func TestSuggest_BlankIngredientsCarryNoSignal(t *testing.T) {
	t.Parallel()

	s := NewSuggester(&sequenceRand{values: []int{0}})
	assert.Nil(t, s.Suggest([]string{"", "   "}, nil))
}

func TestSuggest_ChickenAndRice(t *testing.T) {
	t.Parallel()

	rng := &sequenceRand{values: []int{0}}
	dish := NewSuggester(rng).Suggest([]string{"chicken", "rice"}, nil)

	require.NotNil(t, dish)
	assert.Equal(t, "Chicken with Rice", dish.Name)
	assert.Equal(t, "Main Dish", dish.Category)
	assert.Equal(t, []string{"rice", "chicken", "garlic"}, dish.Ingredients)
	assert.Equal(t, []int{len(generalTemplates)}, rng.calls)
}

func TestSuggest_TemplateSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		index    int
		prefs    []DietaryPreference
		wantName string
		wantCat  string
	}{
		{name: "bowl template", index: 2, wantName: "Rice Bowl with Chicken", wantCat: "Bowl"},
		{name: "stir fry template", index: 3, wantName: "Simple Chicken Rice Stir-fry", wantCat: "Stir-fry"},
		{name: "quick pool first", index: 0, prefs: []DietaryPreference{Quick}, wantName: "Quick Chicken Rice", wantCat: "Quick Meal"},
		{name: "quick pool last", index: 2, prefs: []DietaryPreference{Quick}, wantName: "Easy Rice and Chicken", wantCat: "Simple"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			dish := NewSuggester(&sequenceRand{values: []int{tc.index}}).Suggest([]string{"Chicken", "rice"}, tc.prefs)
			require.NotNil(t, dish)
			assert.Equal(t, tc.wantName, dish.Name)
			assert.Equal(t, tc.wantCat, dish.Category)
		})
	}
}

func TestSuggest_QuickUsesShorterPool(t *testing.T) {
	t.Parallel()

	rng := &sequenceRand{values: []int{0}}
	NewSuggester(rng).Suggest([]string{"pasta"}, []DietaryPreference{Quick})
	assert.Equal(t, []int{len(quickTemplates)}, rng.calls)
}

func TestSuggest_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		ingredients []string
		prefs       []DietaryPreference
		want        []string
	}{
		{name: "carb only falls back to chicken", ingredients: []string{"pasta"}, want: []string{"pasta", "chicken", "garlic"}},
		{name: "vegetarian fallback protein is tofu", ingredients: []string{"pasta"}, prefs: []DietaryPreference{Vegetarian}, want: []string{"pasta", "tofu", "garlic"}},
		{name: "protein only falls back to rice", ingredients: []string{"beef"}, want: []string{"rice", "beef", "garlic"}},
		{name: "seasoning picked from input", ingredients: []string{"beef", "paprika", "basil"}, want: []string{"rice", "beef", "paprika"}},
		{name: "first match per pool wins", ingredients: []string{"bread", "pasta", "fish", "tofu"}, want: []string{"bread", "fish", "garlic"}},
		{name: "one ingredient in two pools listed once", ingredients: []string{"egg noodles"}, want: []string{"egg noodles", "garlic"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			dish := NewSuggester(&sequenceRand{values: []int{0}}).Suggest(tc.ingredients, tc.prefs)
			require.NotNil(t, dish)
			assert.Equal(t, tc.want, dish.Ingredients)
		})
	}
}

func TestSuggest_ProteinPools(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		ingredients []string
		prefs       []DietaryPreference
		wantProtein string
		wantNil     bool
	}{
		{name: "general pool accepts chicken", ingredients: []string{"chicken"}, wantProtein: "chicken"},
		{name: "vegetarian pool rejects chicken", ingredients: []string{"chicken"}, prefs: []DietaryPreference{Vegetarian}, wantNil: true},
		{name: "vegetarian pool accepts paneer", ingredients: []string{"paneer"}, prefs: []DietaryPreference{Vegetarian}, wantProtein: "paneer"},
		{name: "general pool rejects paneer", ingredients: []string{"paneer"}, wantNil: true},
		{name: "halal pool rejects chickpeas", ingredients: []string{"chickpeas"}, prefs: []DietaryPreference{Halal}, wantNil: true},
		{name: "halal pool accepts beef", ingredients: []string{"beef"}, prefs: []DietaryPreference{Halal}, wantProtein: "beef"},
		{name: "vegetarian wins over halal", ingredients: []string{"tempeh"}, prefs: []DietaryPreference{Halal, Vegetarian}, wantProtein: "tempeh"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			dish := NewSuggester(&sequenceRand{values: []int{0}}).Suggest(tc.ingredients, tc.prefs)
			if tc.wantNil {
				assert.Nil(t, dish)
				return
			}
			require.NotNil(t, dish)
			assert.Contains(t, dish.Ingredients, tc.wantProtein)
		})
	}
}

func TestSuggest_SubstringClassification(t *testing.T) {
	t.Parallel()

	// the original wording is kept, only the first letter is capitalized
	dish := NewSuggester(&sequenceRand{values: []int{0}}).Suggest([]string{"Chicken Breast", "brown rice"}, nil)
	require.NotNil(t, dish)
	assert.Equal(t, "Chicken breast with Brown rice", dish.Name)
	assert.Equal(t, []string{"brown rice", "chicken breast", "garlic"}, dish.Ingredients)
}

func TestSuggest_RandomSourceStructure(t *testing.T) {
	t.Parallel()

	s := NewSuggester(nil)
	categories := map[string]bool{}
	for _, tmpl := range generalTemplates {
		categories[tmpl.category] = true
	}

	for i := 0; i < 20; i++ {
		dish := s.Suggest([]string{"chicken", "rice"}, nil)
		require.NotNil(t, dish)
		assert.Contains(t, dish.Name, "Chicken")
		assert.Contains(t, dish.Name, "Rice")
		assert.True(t, categories[dish.Category], "unexpected category %q", dish.Category)
	}
}

func TestNewSeededSuggester_Repeatable(t *testing.T) {
	t.Parallel()

	a := NewSeededSuggester(42)
	b := NewSeededSuggester(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Suggest([]string{"tofu", "noodles"}, nil), b.Suggest([]string{"tofu", "noodles"}, nil))
	}
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Rice", capitalize("rice"))
	assert.Equal(t, "Soy sauce", capitalize("soy sauce"))
	assert.Equal(t, "Écrevisse", capitalize("écrevisse"))
	assert.Equal(t, "", capitalize(""))
}
