package ingredient

import "strings"

// Matches reports whether a user supplied ingredient satisfies a recipe
// ingredient. Both sides are normalized; they match when the canonical forms
// are equal or either contains the other ("pepper" satisfies "bell pepper").
// The containment rule is deliberately loose and accepts false positives on
// short tokens.
func Matches(userIngredient, recipeIngredient string) bool {
	return MatchesCanonical(Normalize(userIngredient), Normalize(recipeIngredient))
}

// MatchesCanonical is Matches for inputs that are already canonical forms.
// An empty form is contained in every other form, so it matches everything;
// callers that build lists drop empty forms first (see ParseList).
func MatchesCanonical(user, recipe string) bool {
	return user == recipe || strings.Contains(recipe, user) || strings.Contains(user, recipe)
}
