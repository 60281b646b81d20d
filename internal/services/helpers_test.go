package services

import (
	"delivery-dispatch-service/internal/adapters/store"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/graph"
	"testing"
	"time"
)

var testDay = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func mustGraph(t *testing.T, addresses []string, matrix [][]float64) *graph.Graph {
	t.Helper()

	locations := make([]domain.Location, 0, len(addresses))
	for _, a := range addresses {
		locations = append(locations, domain.Location{Name: a, Address: a})
	}
	g, err := graph.Build(locations, matrix)
	if err != nil {
		t.Fatalf("build graph: unexpected error: %v", err)
	}
	return g
}

func newPackage(id int, address, deadline string) *domain.Package {
	return &domain.Package{
		PackageID: id,
		Address:   address,
		Deadline:  deadline,
		Tier:      domain.DefaultDeadlineMarkers.Classify(deadline),
	}
}

func mustStore(t *testing.T, pkgs ...*domain.Package) *store.HashTable {
	t.Helper()

	h := store.NewHashTable(0)
	for _, p := range pkgs {
		if !h.Insert(p) {
			t.Fatalf("insert package %d failed", p.PackageID)
		}
	}
	return h
}

func mustLoad(t *testing.T, truck *domain.Truck, pkgs ...*domain.Package) {
	t.Helper()

	if err := truck.LoadMultiple(pkgs); err != nil {
		t.Fatalf("load truck %d: unexpected error: %v", truck.TruckID, err)
	}
}

func stopOrder(plan *domain.RoutePlan) []string {
	out := make([]string, 0, len(plan.Stops))
	for _, s := range plan.Stops {
		out = append(out, s.Destination)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
