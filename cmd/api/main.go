package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dev-abhisheks/recipe-app-api/internal/config"
	"github.com/dev-abhisheks/recipe-app-api/internal/handler"
	"github.com/dev-abhisheks/recipe-app-api/internal/repository"
	"github.com/dev-abhisheks/recipe-app-api/internal/service"
	"github.com/dev-abhisheks/recipe-app-api/internal/validation"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	validate := validation.New()

	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)

	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.JWTExpiry)
	tagService := service.NewTagService(tagRepo, validate)
	ingredientService := service.NewIngredientService(ingredientRepo, validate)
	recipeService := service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, validate)

	r := handler.NewRouter(
		handler.NewUserHandler(authService),
		handler.NewTagHandler(tagService),
		handler.NewIngredientHandler(ingredientService),
		handler.NewRecipeHandler(recipeService),
		cfg.JWTSecret,
		cfg.AllowedOrigins,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
