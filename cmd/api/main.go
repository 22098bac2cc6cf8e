package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pageza/healthymeal/backend/config"
	"github.com/pageza/healthymeal/backend/internal/api"
	"github.com/pageza/healthymeal/backend/internal/database"
	"github.com/pageza/healthymeal/backend/internal/middleware"
	"github.com/pageza/healthymeal/backend/internal/router"
	"github.com/pageza/healthymeal/backend/internal/server"
	"github.com/pageza/healthymeal/backend/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Starting in %s environment", cfg.Environment)

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	generator, err := service.NewGeneratorFromConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to create recipe generator: %v", err)
	}

	// Initialize services
	drafts := service.NewRedisDraftStore(redisClient, service.DraftTTL)
	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTExpiry, service.NewRedisTokenRevoker(redisClient))
	preferenceService := service.NewPreferenceService(db)
	recipeService := service.NewRecipeService(db, drafts)
	generationService := service.NewGenerationService(preferenceService, generator, drafts)
	limiter := middleware.NewGenerationRateLimiter(middleware.NewRedisCounterStore(redisClient), cfg.AIGenerationLimit, cfg.AIGenerationWindow)

	handlers := router.Handlers{
		Health:      api.NewHealthHandler(db),
		Auth:        api.NewAuthHandler(authService),
		Preferences: api.NewPreferenceHandler(preferenceService, authService),
		Recipes:     api.NewRecipeHandler(recipeService, generationService, authService, limiter),
	}

	if cfg.ExportEnabled() {
		s3Cfg, err := config.NewS3Config(context.Background(), cfg.S3BucketName, cfg.AWSRegion)
		if err != nil {
			log.Fatalf("Failed to configure S3: %v", err)
		}
		handlers.Export = api.NewExportHandler(service.NewExportService(recipeService, s3Cfg), authService)
		log.Printf("Recipe export enabled to bucket %s", cfg.S3BucketName)
	}

	srv := server.New(cfg, router.SetupRouter(cfg.CORSOrigins, handlers))

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	// Gracefully shutdown the server
	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
