package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.POST("/api/v1/recipes/match", func(c *gin.Context) {
		var req struct {
			Input       string   `json:"input"`
			Preferences []string `json:"preferences"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, common.ErrorResponse{Code: common.ErrCodeInvalidRequest, Message: "invalid request"})
			return
		}
		if len(req.Preferences) > 0 && req.Preferences[0] == "keto" {
			c.JSON(http.StatusBadRequest, common.ErrorResponse{Code: "UNKNOWN_PREFERENCE", Message: "unknown dietary preference"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"ingredients": []string{req.Input},
			"full_matches": []gin.H{{
				"id": "1", "name": "Egg Fried Rice", "ingredients": []string{"egg", "rice"},
				"match_percentage": 100, "is_full_match": true,
			}},
			"partial_matches": []gin.H{},
		})
	})
	router.GET("/api/v1/recipes/:id", func(c *gin.Context) {
		if c.Param("id") != "1" {
			c.JSON(http.StatusNotFound, common.ErrorResponse{Code: "RECIPE_NOT_FOUND", Message: "recipe not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": "1", "name": "Egg Fried Rice"})
	})
	router.GET("/api/v1/favorites", func(c *gin.Context) {
		c.JSON(http.StatusOK, []gin.H{{"id": "1", "name": "Egg Fried Rice"}})
	})
	router.POST("/api/v1/favorites/:id/toggle", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "favorite": true})
	})
	router.GET("/broken", func(c *gin.Context) {
		c.String(http.StatusBadGateway, "upstream down")
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Match(t *testing.T) {
	c := New(newServer(t).URL + "/")

	result, err := c.Match(context.Background(), "egg", []string{"quick"})
	require.NoError(t, err)
	assert.Equal(t, []string{"egg"}, result.Ingredients)
	require.Len(t, result.FullMatches, 1)
	assert.Equal(t, "Egg Fried Rice", result.FullMatches[0].Name)
	assert.Equal(t, 100, result.FullMatches[0].MatchPercentage)
	assert.Empty(t, result.PartialMatches)
	assert.Nil(t, result.Suggestion)
}

func TestClient_APIError(t *testing.T) {
	c := New(newServer(t).URL)

	_, err := c.Match(context.Background(), "egg", []string{"keto"})
	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "UNKNOWN_PREFERENCE", apiErr.Code)

	_, err = c.Recipe(context.Background(), "999")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "RECIPE_NOT_FOUND", apiErr.Code)
}

func TestClient_NonJSONError(t *testing.T) {
	c := New(newServer(t).URL)

	resp, err := c.http.R().Get("/broken")
	err = check(resp, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream down", apiErr.Message)
}

func TestClient_RecipeAndFavorites(t *testing.T) {
	c := New(newServer(t).URL)
	ctx := context.Background()

	r, err := c.Recipe(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Egg Fried Rice", r.Name)

	list, err := c.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	fav, err := c.ToggleFavorite(ctx, "1")
	require.NoError(t, err)
	assert.True(t, fav)
}

func TestClient_Unreachable(t *testing.T) {
	srv := newServer(t)
	c := New(srv.URL)
	srv.Close()

	_, err := c.Favorites(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
