package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"recipe-finder/internal/api"
	"recipe-finder/internal/core/catalog"
	"recipe-finder/internal/core/favorites"
	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.LogLevel, common.LoggerOptions{
		FilePath: cfg.LogFile,
		Color:    cfg.App.Debug,
	}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("Configuration loaded",
		zap.String("env", cfg.App.Env),
		zap.String("catalog_path", cfg.Catalog.Path),
		zap.String("favorites_backend", cfg.Favorites.Backend),
		zap.String("redis_url", cfg.Favorites.RedisURL),
		zap.Uint64("suggestion_seed", cfg.Suggestion.Seed),
		zap.String("log_file", cfg.LogFile),
	)

	recipes, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		common.LogFatal("Failed to load catalog", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Favorites.Timeout+cfg.Server.ShutdownTimeout)
	store, err := favorites.New(ctx, cfg.Favorites)
	cancel()
	if err != nil {
		common.LogFatal("Failed to initialize favorites store", zap.Error(err))
	}
	defer store.Close()

	suggester := recipe.NewSuggester(nil)
	if cfg.Suggestion.Seed != 0 {
		suggester = recipe.NewSeededSuggester(cfg.Suggestion.Seed)
	}
	finder := recipe.NewFinder(recipes, suggester)

	router, err := api.SetupRouter(cfg, finder, store)
	if err != nil {
		common.LogFatal("Failed to setup router", zap.Error(err))
	}
	srv := api.NewServer(cfg, router)

	go func() {
		common.LogInfo("Starting service",
			zap.String("version", cfg.App.Version),
			zap.String("addr", srv.Addr),
			zap.Int("recipe_count", len(recipes)),
			zap.Bool("debug", cfg.App.Debug),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	common.LogInfo("Server exited")
}
