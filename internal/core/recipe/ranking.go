package recipe

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"recipe-finder/internal/core/ingredient"
)

// MinMatchPercentage is the lowest percentage a recipe needs to be ranked.
const MinMatchPercentage = 50

// Rank scores every catalog recipe that satisfies all preferences against the
// user's ingredients and returns those matching at least MinMatchPercentage,
// ordered by percentage descending and then by name. The catalog is not
// modified.
func Rank(catalog []Recipe, userIngredients []string, preferences []DietaryPreference) []RankedRecipe {
	if len(userIngredients) == 0 {
		return []RankedRecipe{}
	}

	user := make([]string, 0, len(userIngredients))
	for _, u := range userIngredients {
		user = append(user, ingredient.Normalize(u))
	}

	ranked := make([]RankedRecipe, 0, len(catalog))
	for _, r := range catalog {
		if !satisfiesAll(r, preferences) {
			continue
		}
		scored, ok := score(r, user)
		if !ok || scored.MatchPercentage < MinMatchPercentage {
			continue
		}
		ranked = append(ranked, scored)
	}

	// collators are not safe for concurrent use
	col := collate.New(language.English)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchPercentage != ranked[j].MatchPercentage {
			return ranked[i].MatchPercentage > ranked[j].MatchPercentage
		}
		return col.CompareString(ranked[i].Name, ranked[j].Name) < 0
	})

	return ranked
}

// satisfiesAll applies AND semantics: every preference must be a recipe tag.
func satisfiesAll(r Recipe, preferences []DietaryPreference) bool {
	for _, p := range preferences {
		if !r.HasTag(string(p)) {
			return false
		}
	}
	return true
}

// score classifies each recipe ingredient as matched or missing against the
// canonical user ingredients. Recipes without ingredients are never scored.
func score(r Recipe, user []string) (RankedRecipe, bool) {
	total := len(r.Ingredients)
	if total == 0 {
		return RankedRecipe{}, false
	}

	matched := make([]string, 0, total)
	missing := make([]string, 0, total)
	for _, required := range r.Ingredients {
		canonical := ingredient.Normalize(required)
		found := false
		for _, u := range user {
			if ingredient.MatchesCanonical(u, canonical) {
				found = true
				break
			}
		}
		if found {
			matched = append(matched, required)
		} else {
			missing = append(missing, required)
		}
	}

	pct := percentage(len(matched), total)
	return RankedRecipe{
		Recipe:             copyRecipe(r),
		MatchPercentage:    pct,
		MatchedIngredients: matched,
		MissingIngredients: missing,
		IsFullMatch:        pct == 100,
	}, true
}

// percentage is round(100 * part / total) with halves rounded up, computed in
// integers.
func percentage(part, total int) int {
	return (200*part + total) / (2 * total)
}

func copyRecipe(r Recipe) Recipe {
	out := r
	out.Ingredients = append([]string{}, r.Ingredients...)
	out.Tags = append([]string{}, r.Tags...)
	return out
}

// FullMatches keeps the ranked recipes with every ingredient matched, in order.
func FullMatches(ranked []RankedRecipe) []RankedRecipe {
	out := make([]RankedRecipe, 0, len(ranked))
	for _, r := range ranked {
		if r.IsFullMatch {
			out = append(out, r)
		}
	}
	return out
}

// PartialMatches keeps the ranked recipes that are not full matches, in order.
func PartialMatches(ranked []RankedRecipe) []RankedRecipe {
	out := make([]RankedRecipe, 0, len(ranked))
	for _, r := range ranked {
		if !r.IsFullMatch {
			out = append(out, r)
		}
	}
	return out
}
