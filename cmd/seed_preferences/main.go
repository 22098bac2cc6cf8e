package main

import (
	"flag"
	"log"

	"github.com/pageza/healthymeal/backend/config"
	"github.com/pageza/healthymeal/backend/internal/database"
	"github.com/pageza/healthymeal/backend/internal/seed"
)

func main() {
	file := flag.String("file", "seed/preferences.yaml", "YAML file with the preference dictionary")
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

	names, err := seed.LoadPreferenceNames(*file)
	if err != nil {
		log.Fatalf("Failed to load preferences: %v", err)
	}

	created, err := seed.UpsertPreferences(db, names)
	if err != nil {
		log.Fatalf("Failed to seed preferences: %v", err)
	}
	log.Printf("Seeded %d new preferences (%d in file)", created, len(names))
}
