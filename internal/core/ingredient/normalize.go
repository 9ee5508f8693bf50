// Package ingredient canonicalizes free-text ingredient names and decides
// whether two ingredient names refer to the same thing.
package ingredient

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const unitPattern = `cups?|tbsp|tsp|oz|lb|g|kg|ml|l`

var (
	// optional quantity, then an optional unit that must end on a word boundary
	// so "garlic" keeps its leading "g"
	leadingMeasure = regexp.MustCompile(`^(?:\d+(?:[./]\d+)?)?\s*(?:(?:` + unitPattern + `)\b)?\s*`)

	// a trailing unit has to be its own token: "oil" keeps its "l"
	trailingMeasure = regexp.MustCompile(`\s+(?:\d+(?:[./]\d+)?\s*)?(?:` + unitPattern + `)$`)
)

// synonyms maps irregular plurals onto their canonical form.
var synonyms = map[string]string{
	"tomatoes":  "tomato",
	"potatoes":  "potato",
	"onions":    "onion",
	"carrots":   "carrot",
	"eggs":      "egg",
	"mushrooms": "mushroom",
	"peppers":   "bell pepper",
	"noodles":   "noodles",
	"beans":     "beans",
	"chickpeas": "chickpeas",
}

// massNouns are plurals conventionally used as mass nouns; they keep their "s".
var massNouns = map[string]bool{
	"noodles":   true,
	"beans":     true,
	"chickpeas": true,
	"oats":      true,
}

// Normalize returns the canonical form of a free-text ingredient. It is pure
// and idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	current := text
	for {
		next := canonicalize(current)
		if next == current {
			return next
		}
		current = next
	}
}

// canonicalize runs one pass of the normalization pipeline. Every pass either
// shortens the string or lands on a synonym target, and synonym targets are
// fixed points, so Normalize always terminates.
func canonicalize(text string) string {
	s := strings.TrimSpace(strings.ToLower(norm.NFC.String(text)))

	s = strings.TrimSpace(leadingMeasure.ReplaceAllString(s, ""))
	s = strings.TrimSpace(trailingMeasure.ReplaceAllString(s, ""))

	if canonical, ok := synonyms[s]; ok {
		return canonical
	}

	if !massNouns[s] && len(s) > 3 && strings.HasSuffix(s, "s") {
		singular := s[:len(s)-1]
		if !strings.HasSuffix(singular, "s") {
			s = singular
		}
	}

	return s
}

// ParseList splits comma separated input into canonical ingredient names,
// dropping segments that normalize to nothing. Order is preserved and
// duplicates are kept.
func ParseList(rawInput string) []string {
	if strings.TrimSpace(rawInput) == "" {
		return []string{}
	}

	segments := strings.Split(rawInput, ",")
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if canonical := Normalize(segment); canonical != "" {
			out = append(out, canonical)
		}
	}
	return out
}
