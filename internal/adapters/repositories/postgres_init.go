package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the PostgreSQL database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		idx INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL UNIQUE,
		zipcode TEXT NOT NULL
	);
	`

	createDistancesQuery := `
	CREATE TABLE IF NOT EXISTS distances (
		row_idx INTEGER NOT NULL REFERENCES locations(idx),
		col_idx INTEGER NOT NULL REFERENCES locations(idx),
		miles DOUBLE PRECISION NOT NULL CHECK (miles >= 0),
		PRIMARY KEY (row_idx, col_idx)
	);
	`

	createPackagesQuery := `
	CREATE TABLE IF NOT EXISTS packages (
		package_id INTEGER PRIMARY KEY,
		address TEXT NOT NULL,
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		zipcode TEXT NOT NULL DEFAULT '',
		deadline TEXT NOT NULL DEFAULT 'EOD',
		weight INTEGER NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT ''
	);
	`

	statements := []string{
		createLocationsQuery,
		createDistancesQuery,
		createPackagesQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database from the flat files, replacing rows with the same keys.
func SeedFromCSV(ctx context.Context, db *sql.DB, src *CSVSource) error {
	locations, err := src.ListLocations(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	matrix, err := src.DistanceMatrix(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	packages, err := src.ListPackages(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, loc := range locations {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO locations (idx, name, address, zipcode)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (idx) DO UPDATE
		SET name = EXCLUDED.name,
			address = EXCLUDED.address,
			zipcode = EXCLUDED.zipcode;
		`, i, loc.Name, loc.Address, loc.Zipcode)
		if err != nil {
			return fmt.Errorf("seed: insert location idx=%d: %w", i, err)
		}
	}

	distStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO distances (row_idx, col_idx, miles)
	VALUES ($1, $2, $3)
	ON CONFLICT (row_idx, col_idx) DO UPDATE
	SET miles = EXCLUDED.miles;
	`)
	if err != nil {
		return fmt.Errorf("seed: prepare distance insert: %w", err)
	}
	defer distStmt.Close()

	for r, row := range matrix {
		for c, miles := range row {
			if _, err := distStmt.ExecContext(ctx, r, c, miles); err != nil {
				return fmt.Errorf("seed: insert distance (%d, %d): %w", r, c, err)
			}
		}
	}

	pkgStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO packages (package_id, address, city, state, zipcode, deadline, weight, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (package_id) DO UPDATE
	SET address = EXCLUDED.address,
		city = EXCLUDED.city,
		state = EXCLUDED.state,
		zipcode = EXCLUDED.zipcode,
		deadline = EXCLUDED.deadline,
		weight = EXCLUDED.weight,
		notes = EXCLUDED.notes;
	`)
	if err != nil {
		return fmt.Errorf("seed: prepare package insert: %w", err)
	}
	defer pkgStmt.Close()

	for _, p := range packages {
		_, err := pkgStmt.ExecContext(ctx, p.PackageID, p.Address, p.City, p.State, p.Zipcode, p.Deadline, p.Weight, p.Notes)
		if err != nil {
			return fmt.Errorf("seed: insert package_id=%d: %w", p.PackageID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}
