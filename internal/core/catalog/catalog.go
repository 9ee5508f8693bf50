// Package catalog loads the static recipe catalog.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

//go:embed recipes.json
var embedded []byte

var (
	ErrMissingID   = errors.New("recipe without id")
	ErrDuplicateID = errors.New("duplicate recipe id")
)

// Load reads the catalog at path, or the embedded catalog when path is empty.
func Load(path string) ([]recipe.Recipe, error) {
	if path == "" {
		recipes, err := Decode(bytes.NewReader(embedded))
		if err != nil {
			return nil, fmt.Errorf("embedded catalog: %w", err)
		}
		common.LogInfo("Catalog loaded", zap.String("source", "embedded"), zap.Int("recipe_count", len(recipes)))
		return recipes, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	recipes, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	common.LogInfo("Catalog loaded", zap.String("source", path), zap.Int("recipe_count", len(recipes)))
	return recipes, nil
}

// Decode parses a JSON array of recipes. Unknown fields, blank ids and
// repeated ids are rejected.
func Decode(r io.Reader) ([]recipe.Recipe, error) {
	var recipes []recipe.Recipe
	if err := common.DecodeJSONStrict(r, &recipes); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(recipes))
	for i := range recipes {
		rec := &recipes[i]
		if strings.TrimSpace(rec.ID) == "" {
			return nil, fmt.Errorf("entry %d (%q): %w", i, rec.Name, ErrMissingID)
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("entry %d: %w: %s", i, ErrDuplicateID, rec.ID)
		}
		seen[rec.ID] = struct{}{}

		if rec.Ingredients == nil {
			rec.Ingredients = []string{}
		}
		if rec.Tags == nil {
			rec.Tags = []string{}
		}
	}
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}
	return recipes, nil
}
