package favorites

import (
	"context"
	"sync"

	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// MemoryStore keeps favorites in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]recipe.Recipe
	order   []string
}

func NewMemoryStore() *MemoryStore {
	common.LogInfo("Favorites store initialized", zap.String("backend", "memory"))
	return &MemoryStore{entries: make(map[string]recipe.Recipe)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (recipe.Recipe, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.entries[id]
	if !ok {
		return recipe.Recipe{}, false, nil
	}
	return cloneRecipe(r), true, nil
}

func (m *MemoryStore) Contains(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[id]
	return ok, nil
}

func (m *MemoryStore) Add(_ context.Context, r recipe.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.addLocked(r)
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removeLocked(id)
	return nil
}

func (m *MemoryStore) Toggle(_ context.Context, r recipe.Recipe) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[r.ID]; ok {
		m.removeLocked(r.ID)
		return false, nil
	}
	m.addLocked(r)
	return true, nil
}

func (m *MemoryStore) List(_ context.Context) ([]recipe.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]recipe.Recipe, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, cloneRecipe(m.entries[id]))
	}
	return out, nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

// Close drops every entry.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	common.LogInfo("Favorites store closed", zap.String("backend", "memory"), zap.Int("size", len(m.order)))
	m.entries = make(map[string]recipe.Recipe)
	m.order = nil
	return nil
}

func (m *MemoryStore) addLocked(r recipe.Recipe) {
	if _, ok := m.entries[r.ID]; ok {
		return
	}
	m.entries[r.ID] = cloneRecipe(r)
	m.order = append(m.order, r.ID)
	common.LogDebug("Favorite added", zap.String("recipe_id", r.ID), zap.Int("size", len(m.order)))
}

func (m *MemoryStore) removeLocked(id string) {
	if _, ok := m.entries[id]; !ok {
		return
	}
	delete(m.entries, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	common.LogDebug("Favorite removed", zap.String("recipe_id", id), zap.Int("size", len(m.order)))
}

func cloneRecipe(r recipe.Recipe) recipe.Recipe {
	r.Ingredients = append([]string{}, r.Ingredients...)
	r.Tags = append([]string{}, r.Tags...)
	return r
}
