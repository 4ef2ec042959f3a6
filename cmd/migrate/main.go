package main

// Apply the documents schema:
//   go run ./cmd/migrate

import (
	"context"
	"log"
	"os"

	"docqa-backend/internal/shared/config"
	"docqa-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL is required")
		os.Exit(1)
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	names, err := db.MigrationNames()
	if err != nil {
		log.Printf("failed to list migrations: %v", err)
		os.Exit(1)
	}
	log.Printf("applying %d embedded migrations: %v", len(names), names)

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
}
