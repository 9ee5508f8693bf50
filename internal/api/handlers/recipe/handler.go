package recipe

import (
	"net/http"
	"strings"

	"recipe-finder/internal/api/handlers"
	"recipe-finder/internal/core/ingredient"
	recipeService "recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MatchRequest carries the user's pantry. Ingredients already split by the
// client go in Ingredients; free text like "eggs, 2 cups rice" goes in Input.
// Both are normalized and merged.
type MatchRequest struct {
	Ingredients []string `json:"ingredients"`
	Input       string   `json:"input"`
	Preferences []string `json:"preferences"`
}

type PreferenceResponse struct {
	ID    recipeService.DietaryPreference `json:"id"`
	Label string                          `json:"label"`
}

type Handler struct {
	finder *recipeService.Finder
}

func NewHandler(finder *recipeService.Finder) *Handler {
	return &Handler{finder: finder}
}

// HandleMatch ranks the catalog against the request's ingredients.
func (h *Handler) HandleMatch(c *gin.Context) {
	var req MatchRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	prefs, err := recipeService.ParsePreferences(req.Preferences)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	listed := make([]string, 0, len(req.Ingredients))
	for _, item := range req.Ingredients {
		if canonical := ingredient.Normalize(item); canonical != "" {
			listed = append(listed, canonical)
		}
	}
	ingredients := recipeService.MergeIngredients(listed, ingredient.ParseList(req.Input))

	result := h.finder.Find(ingredients, prefs)

	common.LogInfo("Recipe match served",
		zap.String("request_id", requestid.Get(c)),
		zap.Int("ingredient_count", len(ingredients)),
		zap.Int("match_count", len(result.Ranked)),
		zap.Bool("suggested", result.Suggestion != nil),
	)

	c.JSON(http.StatusOK, result)
}

func (h *Handler) HandleListRecipes(c *gin.Context) {
	c.JSON(http.StatusOK, h.finder.Catalog())
}

func (h *Handler) HandleGetRecipe(c *gin.Context) {
	id := c.Param("id")
	r, ok := h.finder.Recipe(id)
	if !ok {
		handlers.RespondError(c, common.ErrRecipeNotFound)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) HandleListPreferences(c *gin.Context) {
	all := recipeService.AllPreferences()
	out := make([]PreferenceResponse, 0, len(all))
	for _, p := range all {
		out = append(out, PreferenceResponse{ID: p, Label: p.Label()})
	}
	c.JSON(http.StatusOK, out)
}

// HandleStarters suggests common ingredients the user has not added yet.
// The have query parameter is comma separated.
func (h *Handler) HandleStarters(c *gin.Context) {
	var have []string
	if raw := strings.TrimSpace(c.Query("have")); raw != "" {
		have = ingredient.ParseList(raw)
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": recipeService.StarterIngredients(have)})
}
