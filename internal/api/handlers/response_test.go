package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(t *testing.T, ctx context.Context, err error) (int, common.ErrorResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

	RespondError(c, err)

	var resp common.ErrorResponse
	require.NoError(t, common.ParseJSONBytes(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestRespondError(t *testing.T) {
	expired, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	tests := []struct {
		name       string
		ctx        context.Context
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "domain error keeps its status",
			ctx:        context.Background(),
			err:        common.ErrRecipeNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "RECIPE_NOT_FOUND",
		},
		{
			name:       "deadline in the error chain",
			ctx:        context.Background(),
			err:        common.ErrFavoritesUnavailable.WithCause(fmt.Errorf("hget: %w", context.DeadlineExceeded)),
			wantStatus: http.StatusRequestTimeout,
			wantCode:   common.ErrCodeRequestTimeout,
		},
		{
			name:       "request context already past its deadline",
			ctx:        expired,
			err:        common.ErrFavoritesUnavailable.WithCause(fmt.Errorf("i/o timeout")),
			wantStatus: http.StatusRequestTimeout,
			wantCode:   common.ErrCodeRequestTimeout,
		},
		{
			name:       "plain errors become internal errors",
			ctx:        context.Background(),
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   common.ErrCodeInternalError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := respond(t, tc.ctx, tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantCode, resp.Code)
		})
	}
}
