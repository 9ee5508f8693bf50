// Package favorites persists the set of recipes a user has saved.
package favorites

import (
	"context"
	"fmt"

	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/infrastructure/config"
)

// Store is a keyed collection of recipe snapshots. Add of an id already
// present keeps the first snapshot; Remove of an unknown id is a no-op.
type Store interface {
	Get(ctx context.Context, id string) (recipe.Recipe, bool, error)
	Contains(ctx context.Context, id string) (bool, error)
	Add(ctx context.Context, r recipe.Recipe) error
	Remove(ctx context.Context, id string) error
	// Toggle adds r when absent and removes it otherwise, reporting whether
	// it was added.
	Toggle(ctx context.Context, r recipe.Recipe) (bool, error)
	// List returns the saved recipes in the order they were added.
	List(ctx context.Context) ([]recipe.Recipe, error)
	Ping(ctx context.Context) error
	Close() error
}

// New builds the store selected by cfg.Backend.
func New(ctx context.Context, cfg config.FavoritesConfig) (Store, error) {
	switch cfg.Backend {
	case "", config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendRedis:
		return NewRedisStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown favorites backend %q", cfg.Backend)
	}
}
