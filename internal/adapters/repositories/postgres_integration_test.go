//go:build postgres_integration

package repositories

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func TestPostgresSeedAndRead(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping integration test")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	ctx := t.Context()
	if err := InitSchema(ctx, db); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	if err := SeedFromCSV(ctx, db, testdataSource()); err != nil {
		t.Fatalf("SeedFromCSV: %v", err)
	}

	src := NewPostgresSource(db)
	locations, err := src.ListLocations(ctx)
	if err != nil {
		t.Fatalf("ListLocations: %v", err)
	}
	matrix, err := src.DistanceMatrix(ctx)
	if err != nil {
		t.Fatalf("DistanceMatrix: %v", err)
	}
	if len(matrix) != len(locations) || matrix[4][0] != 2.2 {
		t.Fatalf("matrix = %v", matrix)
	}
	pkgs, err := src.ListPackages(ctx)
	if err != nil {
		t.Fatalf("ListPackages: %v", err)
	}
	if len(pkgs) < 5 {
		t.Fatalf("packages = %d, want at least 5", len(pkgs))
	}
}
