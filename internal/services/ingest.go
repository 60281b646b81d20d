package services

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/graph"
	"delivery-dispatch-service/internal/platform/obs"
	"delivery-dispatch-service/internal/ports"
	"fmt"
	"log"
)

// BuildGraph reads the delivery network and precomputes all-pairs distances.
func BuildGraph(ctx context.Context, src ports.NetworkSource) (_ *graph.Graph, err error) {
	defer obs.Time(ctx, "graph.build")(&err)

	locations, err := src.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("build graph: list locations: %w", err)
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("build graph: no locations: %w", domain.ErrNotFound)
	}

	matrix, err := src.DistanceMatrix(ctx)
	if err != nil {
		return nil, fmt.Errorf("build graph: distance matrix: %w", err)
	}

	return graph.Build(locations, matrix)
}

// LoadPackages classifies each package into a deadline tier and inserts it
// into the store. Duplicate ids keep the first package and are logged.
func LoadPackages(
	ctx context.Context,
	repo ports.PackageRepository,
	store ports.PackageStore,
	markers domain.DeadlineMarkers,
) (_ int, err error) {
	defer obs.Time(ctx, "packages.load")(&err)

	pkgs, err := repo.ListPackages(ctx)
	if err != nil {
		return 0, fmt.Errorf("load packages: list packages: %w", err)
	}

	inserted := 0
	for _, pkg := range pkgs {
		pkg.Tier = markers.Classify(pkg.Deadline)
		pkg.ResetStatus()
		if !store.Insert(pkg) {
			log.Printf("load packages: duplicate package_id=%d skipped", pkg.PackageID)
			continue
		}
		inserted++
	}

	return inserted, nil
}
