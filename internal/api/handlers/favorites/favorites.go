package favorites

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"recipe-finder/internal/api/handlers"
	favoriteStore "recipe-finder/internal/core/favorites"
	recipeService "recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatusResponse reports whether a recipe is a favorite after a mutation.
type StatusResponse struct {
	ID       string                `json:"id"`
	Favorite bool                  `json:"favorite"`
	Recipe   *recipeService.Recipe `json:"recipe,omitempty"`
}

type Handler struct {
	store  favoriteStore.Store
	finder *recipeService.Finder
}

func NewHandler(store favoriteStore.Store, finder *recipeService.Finder) *Handler {
	return &Handler{store: store, finder: finder}
}

func (h *Handler) HandleList(c *gin.Context) {
	list, err := h.store.List(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) HandleGet(c *gin.Context) {
	r, ok, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	if !ok {
		handlers.RespondError(c, common.ErrNotFound.WithMessage("recipe is not a favorite"))
		return
	}
	c.JSON(http.StatusOK, r)
}

// HandlePut saves a favorite. Catalog recipes are stored by id; anything
// else, such as a suggested dish, needs its snapshot in the body.
func (h *Handler) HandlePut(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	r, err := h.resolve(c, id)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	if err := h.store.Add(ctx, r); err != nil {
		handlers.RespondError(c, err)
		return
	}

	stored, found, err := h.store.Get(ctx, id)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	if !found {
		// removed by a concurrent request after the add
		h.logMutation(c, "Favorite removed before save completed", id, false)
		c.JSON(http.StatusOK, StatusResponse{ID: id, Favorite: false})
		return
	}
	h.logMutation(c, "Favorite saved", id, true)
	c.JSON(http.StatusOK, StatusResponse{ID: id, Favorite: true, Recipe: &stored})
}

func (h *Handler) HandleDelete(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.Remove(c.Request.Context(), id); err != nil {
		handlers.RespondError(c, err)
		return
	}
	h.logMutation(c, "Favorite removed", id, false)
	c.JSON(http.StatusOK, StatusResponse{ID: id, Favorite: false})
}

// HandleToggle flips the favorite state of a recipe.
func (h *Handler) HandleToggle(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	r, err := h.resolve(c, id)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	added, err := h.store.Toggle(ctx, r)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	resp := StatusResponse{ID: id, Favorite: added}
	if added {
		resp.Recipe = &r
	}
	h.logMutation(c, "Favorite toggled", id, added)
	c.JSON(http.StatusOK, resp)
}

// resolve finds the recipe for id in the catalog, then in the request body,
// then among the existing favorites.
func (h *Handler) resolve(c *gin.Context, id string) (recipeService.Recipe, error) {
	if r, ok := h.finder.Recipe(id); ok {
		return r, nil
	}

	snapshot, ok, err := readSnapshot(c)
	if err != nil {
		return recipeService.Recipe{}, err
	}
	if ok {
		if snapshot.ID == "" {
			snapshot.ID = id
		}
		if snapshot.ID != id {
			return recipeService.Recipe{}, common.ErrInvalidRequest.WithCause(
				fmt.Errorf("body id %q does not match path id %q", snapshot.ID, id))
		}
		if strings.TrimSpace(snapshot.Name) == "" {
			return recipeService.Recipe{}, common.ErrInvalidRequest.WithCause(fmt.Errorf("recipe name is required"))
		}
		return snapshot, nil
	}

	existing, found, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		return recipeService.Recipe{}, err
	}
	if !found {
		return recipeService.Recipe{}, common.ErrRecipeNotFound
	}
	return existing, nil
}

func readSnapshot(c *gin.Context) (recipeService.Recipe, bool, error) {
	var r recipeService.Recipe
	if c.Request.Body == nil {
		return r, false, nil
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return r, false, common.ErrRequestTooLarge.WithCause(err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return r, false, nil
	}
	if err := common.ParseJSONBytesStrict(body, &r); err != nil {
		return r, false, common.ErrInvalidRequest.WithCause(err)
	}
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return r, true, nil
}

func (h *Handler) logMutation(c *gin.Context, msg, id string, favorite bool) {
	common.LogInfo(msg,
		zap.String("request_id", requestid.Get(c)),
		zap.String("recipe_id", id),
		zap.Bool("favorite", favorite),
	)
}
