package main

import (
	"flag"
	"log"

	"github.com/pageza/healthymeal/backend/config"
	"github.com/pageza/healthymeal/backend/internal/database"
)

func main() {
	dir := flag.String("dir", "migrations", "directory containing the .sql migration files")
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

	if err := database.RunMigrations(db, *dir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("All migrations applied successfully.")
}
