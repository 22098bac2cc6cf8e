package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/healthymeal/backend/config"
	"github.com/pageza/healthymeal/backend/internal/database"
	"github.com/pageza/healthymeal/backend/internal/seed"
	"github.com/pageza/healthymeal/backend/internal/service"
)

func main() {
	email := flag.String("email", "demo@example.com", "email of the demo user owning the recipes")
	password := flag.String("password", "demo-password", "password of the demo user")
	count := flag.Int("count", 10, "number of recipes to generate")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTExpiry, service.NewRedisTokenRevoker(redisClient))
	user, err := seed.EnsureUser(ctx, authService, *email, *password)
	if err != nil {
		log.Fatalf("Failed to prepare demo user: %v", err)
	}

	saved, err := seed.SeedRecipes(ctx, generator, service.NewRecipeService(db, nil), user, *count)
	if err != nil {
		log.Fatalf("Seeding stopped after %d recipes: %v", saved, err)
	}
	log.Printf("Successfully seeded %d of %d recipes for %s", saved, *count, user.Email)
}
