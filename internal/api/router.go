package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	favoritesHandler "recipe-finder/internal/api/handlers/favorites"
	"recipe-finder/internal/api/handlers/health"
	recipeHandler "recipe-finder/internal/api/handlers/recipe"
	"recipe-finder/internal/api/middleware"
	"recipe-finder/internal/core/favorites"
	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

// SetupRouter wires middleware and routes around an already built finder and
// favorites store.
func SetupRouter(cfg *config.Config, finder *recipe.Finder, store favorites.Store) (*gin.Engine, error) {
	if cfg == nil || finder == nil || store == nil {
		return nil, errors.New("router requires config, finder and favorites store")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())
	corsConfig := cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 || (len(corsConfig.AllowOrigins) == 1 && corsConfig.AllowOrigins[0] == "*") {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Timeout(requestTimeout))

	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		status, resp := common.ToResponse(common.ErrNotFound, false)
		c.JSON(status, resp)
	})
	router.NoMethod(func(c *gin.Context) {
		status, resp := common.ToResponse(common.ErrMethodNotAllowed, false)
		c.JSON(status, resp)
	})

	catalogSize := len(finder.Catalog())
	healthHandler := health.NewHandler(cfg.App.Version, catalogSize, store)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	recipes := recipeHandler.NewHandler(finder)
	favs := favoritesHandler.NewHandler(store, finder)
	dedup := middleware.NewDeduplicator(cfg.DedupWindow)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/preferences", recipes.HandleListPreferences)
		v1.GET("/ingredients/starters", recipes.HandleStarters)

		recipeGroup := v1.Group("/recipes")
		{
			recipeGroup.GET("", recipes.HandleListRecipes)
			recipeGroup.GET("/:id", recipes.HandleGetRecipe)
			recipeGroup.POST("/match", recipes.HandleMatch)
		}

		favoriteGroup := v1.Group("/favorites")
		favoriteGroup.Use(dedup.Handler())
		{
			favoriteGroup.GET("", favs.HandleList)
			favoriteGroup.GET("/:id", favs.HandleGet)
			favoriteGroup.PUT("/:id", favs.HandlePut)
			favoriteGroup.DELETE("/:id", favs.HandleDelete)
			favoriteGroup.POST("/:id/toggle", favs.HandleToggle)
		}
	}

	common.LogInfo("Router setup completed",
		zap.Int("recipe_count", catalogSize),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("dedup_window", cfg.DedupWindow),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}

// NewServer builds the HTTP server for router using the configured timeouts.
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}
