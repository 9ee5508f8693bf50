package favorites

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	favoriteStore "recipe-finder/internal/core/favorites"
	recipeService "recipe-finder/internal/core/recipe"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// deletingStore simulates a DELETE that lands right after every Add.
type deletingStore struct {
	*favoriteStore.MemoryStore
}

func (s deletingStore) Add(ctx context.Context, r recipeService.Recipe) error {
	if err := s.MemoryStore.Add(ctx, r); err != nil {
		return err
	}
	return s.MemoryStore.Remove(ctx, r.ID)
}

func newRouter(store favoriteStore.Store) *gin.Engine {
	finder := recipeService.NewFinder([]recipeService.Recipe{{
		ID:          "1",
		Name:        "Egg Fried Rice",
		Ingredients: []string{"egg", "rice", "soy sauce"},
		Tags:        []string{"quick"},
	}}, recipeService.NewSuggester(nil))

	h := NewHandler(store, finder)
	router := gin.New()
	router.PUT("/favorites/:id", h.HandlePut)
	return router
}

func put(t *testing.T, router http.Handler, id string) StatusResponse {
	t.Helper()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/favorites/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandlePut_SavesCatalogRecipe(t *testing.T) {
	resp := put(t, newRouter(favoriteStore.NewMemoryStore()), "1")

	assert.True(t, resp.Favorite)
	require.NotNil(t, resp.Recipe)
	assert.Equal(t, "Egg Fried Rice", resp.Recipe.Name)
}

func TestHandlePut_ConcurrentDeleteReportsNotFavorite(t *testing.T) {
	resp := put(t, newRouter(deletingStore{favoriteStore.NewMemoryStore()}), "1")

	assert.Equal(t, "1", resp.ID)
	assert.False(t, resp.Favorite)
	assert.Nil(t, resp.Recipe)
}
