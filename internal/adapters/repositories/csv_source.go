package repositories

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSVSource reads the delivery network and packages from flat files.
//
// Files carry no header row:
//   - locations: name, address, zipcode
//   - distances: lower-triangular matrix, one row per location
//   - packages:  id, address, city, state, zipcode, deadline, weight, notes
type CSVSource struct {
	LocationsPath string
	DistancesPath string
	PackagesPath  string
}

func NewCSVSource(locationsPath, distancesPath, packagesPath string) *CSVSource {
	return &CSVSource{
		LocationsPath: locationsPath,
		DistancesPath: distancesPath,
		PackagesPath:  packagesPath,
	}
}

func readRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// Return locations in file order. The first row is the hub.
func (s *CSVSource) ListLocations(ctx context.Context) ([]domain.Location, error) {
	records, err := readRecords(s.LocationsPath)
	if err != nil {
		return nil, fmt.Errorf("list locations: read %q: %w", s.LocationsPath, err)
	}

	locations := make([]domain.Location, 0, len(records))
	for i, rec := range records {
		if len(rec) < 3 {
			return nil, fmt.Errorf("list locations: line %d: want 3 fields, got %d", i+1, len(rec))
		}
		addr := strings.TrimSpace(rec[1])
		if addr == "" {
			return nil, fmt.Errorf("list locations: line %d: address cannot be empty", i+1)
		}
		locations = append(locations, domain.Location{
			Name:    strings.TrimSpace(rec[0]),
			Address: addr,
			Zipcode: strings.TrimSpace(rec[2]),
		})
	}

	return locations, nil
}

// Return the lower-triangular matrix. Blank cells above the diagonal are
// dropped, so row i holds at most i+1 values.
func (s *CSVSource) DistanceMatrix(ctx context.Context) ([][]float64, error) {
	records, err := readRecords(s.DistancesPath)
	if err != nil {
		return nil, fmt.Errorf("distance matrix: read %q: %w", s.DistancesPath, err)
	}

	matrix := make([][]float64, 0, len(records))
	for i, rec := range records {
		row := make([]float64, 0, i+1)
		for j := 0; j <= i && j < len(rec); j++ {
			cell := strings.TrimSpace(rec[j])
			if cell == "" {
				break
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("distance matrix: line %d col %d: %w", i+1, j+1, err)
			}
			row = append(row, v)
		}
		matrix = append(matrix, row)
	}

	return matrix, nil
}

// Return packages in file order.
func (s *CSVSource) ListPackages(ctx context.Context) ([]*domain.Package, error) {
	records, err := readRecords(s.PackagesPath)
	if err != nil {
		return nil, fmt.Errorf("list packages: read %q: %w", s.PackagesPath, err)
	}

	packages := make([]*domain.Package, 0, len(records))
	for i, rec := range records {
		if len(rec) < 6 {
			return nil, fmt.Errorf("list packages: line %d: want at least 6 fields, got %d", i+1, len(rec))
		}
		id, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("list packages: line %d: invalid package id %q", i+1, rec[0])
		}

		pkg := &domain.Package{
			PackageID: id,
			Address:   strings.TrimSpace(rec[1]),
			City:      strings.TrimSpace(rec[2]),
			State:     strings.TrimSpace(rec[3]),
			Zipcode:   strings.TrimSpace(rec[4]),
			Deadline:  strings.TrimSpace(rec[5]),
		}
		if len(rec) > 6 && strings.TrimSpace(rec[6]) != "" {
			w, err := strconv.Atoi(strings.TrimSpace(rec[6]))
			if err != nil {
				return nil, fmt.Errorf("list packages: line %d: invalid weight %q", i+1, rec[6])
			}
			pkg.Weight = w
		}
		if len(rec) > 7 {
			pkg.Notes = strings.TrimSpace(rec[7])
		}
		if pkg.Address == "" {
			return nil, fmt.Errorf("list packages: package_id=%d has empty address", id)
		}
		packages = append(packages, pkg)
	}

	return packages, nil
}
