package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomError_IsMatchesByCode(t *testing.T) {
	cause := errors.New("redis: connection refused")
	err := fmt.Errorf("toggle favorite: %w", ErrFavoritesUnavailable.WithCause(cause))

	assert.True(t, errors.Is(err, ErrFavoritesUnavailable))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrRecipeNotFound))
}

func TestCustomError_Error(t *testing.T) {
	assert.Equal(t, "recipe not found", ErrRecipeNotFound.Error())
	assert.Equal(t, "recipe not found: id r9", ErrRecipeNotFound.WithCause(errors.New("id r9")).Error())
	assert.Equal(t, "no such recipe", ErrRecipeNotFound.WithMessage("no such recipe").Error())
}

func TestCustomError_CopiesDoNotMutateOriginal(t *testing.T) {
	_ = ErrInvalidRequest.WithCause(errors.New("bad")).WithMessage("changed")

	assert.Nil(t, ErrInvalidRequest.Err)
	assert.Equal(t, "invalid request", ErrInvalidRequest.Message)
}

func TestToResponse(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		debug      bool
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{
			name:       "custom error",
			err:        ErrUnknownPreference.WithCause(errors.New(`unknown preference "keto"`)),
			wantStatus: http.StatusBadRequest,
			wantCode:   "UNKNOWN_PREFERENCE",
		},
		{
			name:       "details only in debug",
			err:        ErrUnknownPreference.WithCause(errors.New(`unknown preference "keto"`)),
			debug:      true,
			wantStatus: http.StatusBadRequest,
			wantCode:   "UNKNOWN_PREFERENCE",
			wantDetail: `unknown preference "keto"`,
		},
		{
			name:       "wrapped custom error",
			err:        fmt.Errorf("lookup: %w", ErrRecipeNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "RECIPE_NOT_FOUND",
		},
		{
			name:       "plain error becomes internal",
			err:        errors.New("boom"),
			debug:      true,
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodeInternalError,
			wantDetail: "boom",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := ToResponse(tc.err, tc.debug)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantCode, resp.Code)
			assert.Equal(t, tc.wantDetail, resp.Details)
			assert.NotEmpty(t, resp.Message)
		})
	}
}
