package domain

import (
	"errors"
	"testing"
	"time"
)

func TestTruckLoadCapacity(t *testing.T) {
	truck := NewTruck(1, 0)

	for i := 1; i <= DefaultTruckCapacity; i++ {
		if err := truck.Load(&Package{PackageID: i}); err != nil {
			t.Fatalf("load package %d: unexpected error: %v", i, err)
		}
	}

	extra := &Package{PackageID: 17}
	err := truck.Load(extra)
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("17th load error = %v, want ErrCapacityExceeded", err)
	}
	if len(truck.Packages) != DefaultTruckCapacity {
		t.Fatalf("loaded = %d, want %d", len(truck.Packages), DefaultTruckCapacity)
	}
	if extra.Status.State != AtHub {
		t.Fatalf("refused package status = %s, want AT_HUB", extra.Status)
	}
}

func TestTruckLoadRefusesPackageNotAtHub(t *testing.T) {
	pkg := &Package{PackageID: 1}
	t1 := NewTruck(1, 16)
	t2 := NewTruck(2, 16)

	if err := t1.Load(pkg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := pkg.Status.String(); got != "EN_ROUTE:1" {
		t.Fatalf("status = %q, want EN_ROUTE:1", got)
	}

	if err := t2.Load(pkg); !errors.Is(err, ErrInvalidLoadState) {
		t.Fatalf("second truck load error = %v, want ErrInvalidLoadState", err)
	}
	if err := t1.Load(pkg); !errors.Is(err, ErrInvalidLoadState) {
		t.Fatalf("duplicate load error = %v, want ErrInvalidLoadState", err)
	}
	if err := t1.Load(nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("nil load error = %v, want ErrNotFound", err)
	}
	if len(t2.Packages) != 0 {
		t.Fatalf("truck 2 holds %d packages, want 0", len(t2.Packages))
	}
}

func TestTruckDeliverAndReset(t *testing.T) {
	at := time.Date(2026, 1, 1, 9, 12, 30, 0, time.UTC)
	pkg1 := &Package{PackageID: 1}
	pkg2 := &Package{PackageID: 2}

	truck := NewTruck(3, 16)
	if err := truck.LoadMultiple([]*Package{pkg1, pkg2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := truck.Deliver(pkg1, at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	truck.Drive(4.5)

	if got := pkg1.Status.String(); got != "DELIVERED:09:12:30" {
		t.Fatalf("status = %q, want DELIVERED:09:12:30", got)
	}
	if len(truck.Packages) != 1 || truck.Packages[0] != pkg2 {
		t.Fatalf("remaining packages = %v, want [pkg2]", truck.Packages)
	}
	if err := truck.Deliver(pkg1, at); !errors.Is(err, ErrNotFound) {
		t.Fatalf("redeliver error = %v, want ErrNotFound", err)
	}

	truck.Reset()
	if len(truck.Packages) != 0 || truck.Distance != 0 {
		t.Fatalf("after reset: packages=%d distance=%v", len(truck.Packages), truck.Distance)
	}
}

func TestPackageStatusMonotonic(t *testing.T) {
	at := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	pkg := &Package{PackageID: 9}

	if err := pkg.MarkDelivered(at); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("AT_HUB -> DELIVERED error = %v, want ErrInvalidTransition", err)
	}
	if err := pkg.MarkEnRoute(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := pkg.MarkDelivered(at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := pkg.MarkEnRoute(2); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("DELIVERED -> EN_ROUTE error = %v, want ErrInvalidTransition", err)
	}
	if pkg.Status.State != Delivered {
		t.Fatalf("status = %s, want delivered", pkg.Status)
	}

	pkg.ResetStatus()
	if pkg.Status.String() != "AT_HUB" {
		t.Fatalf("status after reset = %s, want AT_HUB", pkg.Status)
	}
}

func TestDeadlineMarkersClassify(t *testing.T) {
	tests := []struct {
		deadline string
		want     Tier
	}{
		{"9:00 AM", TierEarly},
		{"10:30 AM", TierMid},
		{"EOD", TierEOD},
		{"", TierEOD},
	}

	for _, tt := range tests {
		if got := DefaultDeadlineMarkers.Classify(tt.deadline); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.deadline, got, tt.want)
		}
	}
}
