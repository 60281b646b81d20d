package repositories

import (
	"context"
	"database/sql"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/platform/obs"
	"errors"
	"fmt"
)

// PostgreSQL-backed implementation of the NetworkSource and PackageRepository ports.
type PostgresSource struct{ DB *sql.DB }

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{DB: db}
}

func (s *PostgresSource) ListLocations(ctx context.Context) (_ []domain.Location, err error) {
	defer obs.Time(ctx, "postgres.ListLocations")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres source: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT name, address, zipcode
	FROM locations
	ORDER BY idx;
	`)
	if err != nil {
		return nil, fmt.Errorf("list locations: query locations table: %w", err)
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		var loc domain.Location
		if err := rows.Scan(&loc.Name, &loc.Address, &loc.Zipcode); err != nil {
			return nil, fmt.Errorf("list locations: scan row: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: row iteration: %w", err)
	}

	return locations, nil
}

// DistanceMatrix rebuilds the lower-triangular matrix from (row, col) cells.
// Location indices must be exactly 0..n-1 and every cell below the diagonal
// must be present; a gap is an error, never a zero-mile edge.
func (s *PostgresSource) DistanceMatrix(ctx context.Context) (_ [][]float64, err error) {
	defer obs.Time(ctx, "postgres.DistanceMatrix")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres source: DB is nil")
	}

	var n, lo, hi int
	err = s.DB.QueryRowContext(ctx, `
	SELECT COUNT(*), COALESCE(MIN(idx), 0), COALESCE(MAX(idx), -1)
	FROM locations;
	`).Scan(&n, &lo, &hi)
	if err != nil {
		return nil, fmt.Errorf("distance matrix: count locations: %w", err)
	}
	if n > 0 && (lo != 0 || hi != n-1) {
		return nil, fmt.Errorf("distance matrix: location idx spans %d..%d, want 0..%d", lo, hi, n-1)
	}

	matrix := make([][]float64, n)
	seen := make([][]bool, n)
	for i := range matrix {
		matrix[i] = make([]float64, i+1)
		seen[i] = make([]bool, i+1)
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT row_idx, col_idx, miles
	FROM distances
	WHERE col_idx <= row_idx
	ORDER BY row_idx, col_idx;
	`)
	if err != nil {
		return nil, fmt.Errorf("distance matrix: query distances table: %w", err)
	}
	defer rows.Close()

	filled := 0
	for rows.Next() {
		var r, c int
		var miles float64
		if err := rows.Scan(&r, &c, &miles); err != nil {
			return nil, fmt.Errorf("distance matrix: scan row: %w", err)
		}
		if r < 0 || r >= n || c < 0 || c > r {
			return nil, fmt.Errorf("distance matrix: cell (%d, %d) outside %d locations", r, c, n)
		}
		matrix[r][c] = miles
		if c < r && !seen[r][c] {
			seen[r][c] = true
			filled++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("distance matrix: row iteration: %w", err)
	}

	if want := n * (n - 1) / 2; filled != want {
		for r := range seen {
			for c := 0; c < r; c++ {
				if !seen[r][c] {
					return nil, fmt.Errorf("distance matrix: cell (%d, %d) missing, %d of %d present: %w", r, c, filled, want, domain.ErrNotFound)
				}
			}
		}
	}

	return matrix, nil
}

func (s *PostgresSource) ListPackages(ctx context.Context) (_ []*domain.Package, err error) {
	defer obs.Time(ctx, "postgres.ListPackages")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres source: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		package_id,
		address,
		city,
		state,
		zipcode,
		deadline,
		weight,
		notes
	FROM packages
	ORDER BY package_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list packages: query packages table: %w", err)
	}
	defer rows.Close()

	packages := make([]*domain.Package, 0, 64)
	for rows.Next() {
		p := &domain.Package{}
		err := rows.Scan(&p.PackageID, &p.Address, &p.City, &p.State, &p.Zipcode, &p.Deadline, &p.Weight, &p.Notes)
		if err != nil {
			return nil, fmt.Errorf("list packages: scan row: %w", err)
		}
		packages = append(packages, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list packages: row iteration: %w", err)
	}

	return packages, nil
}
