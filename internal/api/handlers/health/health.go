package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const readinessTimeout = 2 * time.Second

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Version     string                 `json:"version"`
	RecipeCount int                    `json:"recipe_count"`
	Runtime     map[string]interface{} `json:"runtime"`
}

type Handler struct {
	version     string
	recipeCount int
	favorites   Pinger
}

func NewHandler(version string, recipeCount int, favorites Pinger) *Handler {
	return &Handler{version: version, recipeCount: recipeCount, favorites: favorites}
}

// HealthCheck reports version, catalog size and runtime statistics.
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, HealthResponse{
		Status:      "ok",
		Timestamp:   time.Now(),
		Version:     h.version,
		RecipeCount: h.recipeCount,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	})
}

// ReadinessCheck fails while the favorites backend is unreachable.
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.favorites != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := h.favorites.Ping(ctx); err != nil {
			common.LogWarn("Readiness check failed", zap.Error(err))
			status, resp := common.ToResponse(
				common.ErrServiceUnavailable.WithMessage("favorites store unreachable").WithCause(err),
				gin.IsDebugging(),
			)
			c.JSON(status, resp)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
