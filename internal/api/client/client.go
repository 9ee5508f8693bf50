// Package client is a typed HTTP client for the recipe finder API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"recipe-finder/internal/api/handlers/favorites"
	recipeHandler "recipe-finder/internal/api/handlers/recipe"
	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx response from the server.
type APIError struct {
	Status int
	common.ErrorResponse
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

// MatchResult mirrors the body of POST /api/v1/recipes/match.
type MatchResult struct {
	Ingredients    []string              `json:"ingredients"`
	FullMatches    []recipe.RankedRecipe `json:"full_matches"`
	PartialMatches []recipe.RankedRecipe `json:"partial_matches"`
	Suggestion     *recipe.SuggestedDish `json:"suggestion,omitempty"`
}

type Client struct {
	http *resty.Client
}

// New returns a client for the server at baseURL.
func New(baseURL string) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

// Match asks the server to rank recipes for free-text input.
func (c *Client) Match(ctx context.Context, input string, preferences []string) (*MatchResult, error) {
	var result MatchResult
	resp, err := c.request(ctx).
		SetBody(recipeHandler.MatchRequest{Input: input, Preferences: preferences}).
		SetResult(&result).
		Post("/api/v1/recipes/match")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Recipe(ctx context.Context, id string) (*recipe.Recipe, error) {
	var r recipe.Recipe
	resp, err := c.request(ctx).
		SetResult(&r).
		Get("/api/v1/recipes/" + url.PathEscape(id))
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) Favorites(ctx context.Context) ([]recipe.Recipe, error) {
	var list []recipe.Recipe
	resp, err := c.request(ctx).
		SetResult(&list).
		Get("/api/v1/favorites")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return list, nil
}

// ToggleFavorite flips the favorite state of a catalog recipe and reports
// whether it is now a favorite.
func (c *Client) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	var status favorites.StatusResponse
	resp, err := c.request(ctx).
		SetResult(&status).
		Post("/api/v1/favorites/" + url.PathEscape(id) + "/toggle")
	if err := check(resp, err); err != nil {
		return false, err
	}
	return status.Favorite, nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", common.GenerateUUID()).
		SetError(&common.ErrorResponse{})
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.IsSuccess() {
		return nil
	}
	apiErr := &APIError{Status: resp.StatusCode()}
	if body, ok := resp.Error().(*common.ErrorResponse); ok && body != nil && body.Code != "" {
		apiErr.ErrorResponse = *body
	} else {
		apiErr.Code = http.StatusText(resp.StatusCode())
		apiErr.Message = strings.TrimSpace(resp.String())
	}
	return apiErr
}
