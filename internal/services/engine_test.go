package services

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"errors"
	"strings"
	"testing"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	fleet, _ := newTestFleet(t, "P")
	return &Engine{Graph: fleet.Dispatcher.Graph, Store: fleet.Store, Fleet: fleet}
}

func TestEngineRunDayIsDeterministic(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	cutoff, err := e.ParseCutoff("0945")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := e.RunDay(ctx, cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := e.RunDay(ctx, cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first.Packages) != len(second.Packages) {
		t.Fatalf("package counts differ: %d vs %d", len(first.Packages), len(second.Packages))
	}
	for i := range first.Packages {
		if first.Packages[i] != second.Packages[i] {
			t.Errorf("package %d: %+v vs %+v", first.Packages[i].PackageID, first.Packages[i], second.Packages[i])
		}
	}
	for i := range first.Trucks {
		if first.Trucks[i] != second.Trucks[i] {
			t.Errorf("truck %d: %+v vs %+v", first.Trucks[i].TruckID, first.Trucks[i], second.Trucks[i])
		}
	}
	if first.TotalDistanceMiles != second.TotalDistanceMiles {
		t.Fatalf("total distance %v vs %v", first.TotalDistanceMiles, second.TotalDistanceMiles)
	}
	if first.RunID == second.RunID {
		t.Fatalf("run ids should differ between runs")
	}
}

func TestEngineFullDayThenEarlierCutoff(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	full, err := e.RunDay(ctx, at(17, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range full.Packages {
		if !strings.HasPrefix(p.Status, "DELIVERED:") {
			t.Fatalf("package %d status = %s at end of day", p.PackageID, p.Status)
		}
	}
	if !full.CompletedAt.Equal(at(9, 55)) {
		t.Fatalf("completed at %v, want 09:55", full.CompletedAt)
	}

	// A later query for an earlier time starts again from a clean hub.
	p, snap, err := e.PackageStatus(ctx, 3, at(9, 45))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != "AT_HUB" {
		t.Fatalf("package 3 at 09:45 = %s, want AT_HUB", p.Status)
	}
	if got, _ := snap.Package(3); got != p || !snap.At.Equal(at(9, 45)) {
		t.Fatalf("snapshot at %v holds %+v, want %+v", snap.At, got, p)
	}
}

func TestEngineErrors(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	if _, _, err := e.PackageStatus(ctx, 404, at(12, 0)); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown package error = %v, want ErrNotFound", err)
	}
	if _, err := e.RunDay(ctx, at(8, 0)); !errors.Is(err, domain.ErrInvalidTimeInput) {
		t.Fatalf("cutoff at start error = %v, want ErrInvalidTimeInput", err)
	}
	for _, in := range []string{"0800", "0759", "9am", "2500"} {
		if _, err := e.ParseCutoff(in); !errors.Is(err, domain.ErrInvalidTimeInput) {
			t.Errorf("ParseCutoff(%q) error = %v, want ErrInvalidTimeInput", in, err)
		}
	}
}

func TestEngineFingerprintTracksInputs(t *testing.T) {
	a := newTestEngine(t)
	b := newTestEngine(t)

	fp := a.Fingerprint()
	if fp == "" || fp != b.Fingerprint() {
		t.Fatalf("fingerprints %q and %q should match for identical inputs", fp, b.Fingerprint())
	}

	if _, err := a.RunDay(context.Background(), at(12, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := a.Fingerprint(); got != fp {
		t.Fatalf("fingerprint changed after a run: %q vs %q", got, fp)
	}

	fleet, _ := newTestFleet(t, "S")
	other := &Engine{Graph: fleet.Dispatcher.Graph, Store: fleet.Store, Fleet: fleet}
	if other.Fingerprint() == fp {
		t.Fatalf("fingerprint should differ when a package address changes")
	}

	fleet, _ = newTestFleet(t, "P")
	fleet.Plan.Drivers = 3
	other = &Engine{Graph: fleet.Dispatcher.Graph, Store: fleet.Store, Fleet: fleet}
	if other.Fingerprint() == fp {
		t.Fatalf("fingerprint should differ when the fleet plan changes")
	}
}
