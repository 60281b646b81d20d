package services

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"testing"
)

// Round trips at 0.5 mi/min from an 08:00 start: P returns at 09:40, Q at
// 09:55, S at 10:05. R is one mile from the hub.
func fleetGraphAddresses() ([]string, [][]float64) {
	return []string{"H", "P", "Q", "R", "S"}, [][]float64{
		{0},
		{25, 0},
		{28.75, 3.75, 0},
		{1, 25, 28.75, 0},
		{31.25, 6.25, 2.5, 31.25, 0},
	}
}

func newTestFleet(t *testing.T, addrTruck1 string) (*Fleet, []*domain.Package) {
	t.Helper()

	addrs, matrix := fleetGraphAddresses()
	g := mustGraph(t, addrs, matrix)

	pkgs := []*domain.Package{
		newPackage(1, addrTruck1, "EOD"),
		newPackage(2, "Q", "EOD"),
		newPackage(3, "R", "EOD"),
	}
	plan := FleetPlan{
		DayStart:             at(8, 0),
		DayEnd:               at(17, 0),
		Drivers:              2,
		ConstrainedDeparture: at(9, 50),
		Capacity:             16,
		Vehicles: []VehicleAssignment{
			{TruckID: 1, PackageIDs: []int{1}},
			{TruckID: 2, PackageIDs: []int{2}},
			{TruckID: 3, PackageIDs: []int{3}},
		},
	}
	d := NewDispatcher(g, domain.NewSimClock(0.5))
	return NewFleet(d, mustStore(t, pkgs...), plan), pkgs
}

func TestFleetConstrainedVehicleWaitsForGate(t *testing.T) {
	fleet, pkgs := newTestFleet(t, "P")

	res, err := fleet.Run(context.Background(), at(17, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Plans) != 3 {
		t.Fatalf("plans = %d, want 3", len(res.Plans))
	}
	if got := res.Plans[0].CompletedAt; !got.Equal(at(9, 40)) {
		t.Fatalf("truck 1 completed at %v, want 09:40", got)
	}
	if got := res.Plans[1].CompletedAt; !got.Equal(at(9, 55)) {
		t.Fatalf("truck 2 completed at %v, want 09:55", got)
	}
	// The first driver is back at 09:40, so the gate time binds.
	if got := res.Plans[2].DepartAt; !got.Equal(at(9, 50)) {
		t.Fatalf("truck 3 departed at %v, want 09:50", got)
	}
	if got := pkgs[2].Status.String(); got != "DELIVERED:09:52:00" {
		t.Fatalf("package 3 status = %q, want DELIVERED:09:52:00", got)
	}
	if !res.CompletedAt.Equal(at(9, 55)) {
		t.Fatalf("day completed at %v, want 09:55", res.CompletedAt)
	}
}

func TestFleetConstrainedVehicleWaitsForDriver(t *testing.T) {
	fleet, _ := newTestFleet(t, "S")

	res, err := fleet.Run(context.Background(), at(17, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := res.Plans[0].CompletedAt; !got.Equal(at(10, 5)) {
		t.Fatalf("truck 1 completed at %v, want 10:05", got)
	}
	// Both drivers are out past the gate; truck 3 takes the one back at 09:55.
	if got := res.Plans[2].DepartAt; !got.Equal(at(9, 55)) {
		t.Fatalf("truck 3 departed at %v, want 09:55", got)
	}
	if !res.CompletedAt.Equal(at(10, 5)) {
		t.Fatalf("day completed at %v, want 10:05", res.CompletedAt)
	}
}

func TestFleetCutoffBeforeGate(t *testing.T) {
	fleet, pkgs := newTestFleet(t, "P")

	cutoff := at(9, 45)
	res, err := fleet.Run(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.CompletedAt.Equal(cutoff) {
		t.Fatalf("completed at %v, want %v", res.CompletedAt, cutoff)
	}
	if len(res.Plans) != 2 {
		t.Fatalf("plans = %d, want 2 (truck 3 never departs)", len(res.Plans))
	}
	if got := pkgs[0].Status.String(); got != "DELIVERED:08:50:00" {
		t.Fatalf("package 1 status = %q, want DELIVERED:08:50:00", got)
	}
	if got := pkgs[1].Status.String(); got != "DELIVERED:08:57:30" {
		t.Fatalf("package 2 status = %q, want DELIVERED:08:57:30", got)
	}
	if pkgs[2].Status.State != domain.AtHub {
		t.Fatalf("package 3 status = %s, want AT_HUB", pkgs[2].Status)
	}
	if !res.Plans[1].CutOff {
		t.Fatalf("truck 2 should be cut off on its way back")
	}
	// 28.75 out plus 47.5 minutes of the return leg.
	if got := fleet.Trucks[1].Distance; got != 52.5 {
		t.Fatalf("truck 2 distance = %v, want 52.5", got)
	}
	if got := fleet.Trucks[2].Distance; got != 0 {
		t.Fatalf("truck 3 distance = %v, want 0", got)
	}
}

func TestFleetLoadRespectsCapacity(t *testing.T) {
	addrs, matrix := fleetGraphAddresses()
	g := mustGraph(t, addrs, matrix)

	var pkgs []*domain.Package
	var ids []int
	for id := 1; id <= 17; id++ {
		pkgs = append(pkgs, newPackage(id, "R", "EOD"))
		ids = append(ids, id)
	}
	plan := FleetPlan{
		DayStart: at(8, 0),
		DayEnd:   at(17, 0),
		Drivers:  1,
		Vehicles: []VehicleAssignment{{TruckID: 1, PackageIDs: append(ids, 99)}},
	}
	fleet := NewFleet(NewDispatcher(g, domain.NewSimClock(0.5)), mustStore(t, pkgs...), plan)

	if _, err := fleet.Run(context.Background(), at(17, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, p := range pkgs[:16] {
		if p.Status.State != domain.Delivered {
			t.Fatalf("package %d status = %s, want delivered", p.PackageID, p.Status)
		}
	}
	if pkgs[16].Status.State != domain.AtHub {
		t.Fatalf("17th package status = %s, want AT_HUB", pkgs[16].Status)
	}
}
