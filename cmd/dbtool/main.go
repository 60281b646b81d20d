package main

import (
	"context"
	"database/sql"
	"delivery-dispatch-service/internal/adapters/repositories"
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/platform/db"
	"fmt"
	"log"
	"os"
	"strings"
)

// dbtool creates the PostgreSQL schema and seeds it from the CSV files.
func main() {
	config.LoadEnv()

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	src := repositories.NewCSVSource(
		config.Get("LOCATIONS_CSV", "data/locations.csv"),
		config.Get("DISTANCES_CSV", "data/distances.csv"),
		config.Get("PACKAGES_CSV", "data/packages.csv"),
	)
	if err := initAndSeed(ctx, conn, src); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, db *sql.DB, src *repositories.CSVSource) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, db); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	if err := repositories.SeedFromCSV(ctx, db, src); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Println("Seeding complete.")

	return nil
}
