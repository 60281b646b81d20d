package services

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/platform/obs"
	"delivery-dispatch-service/internal/ports"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// VehicleAssignment is the externally supplied load list of one truck.
type VehicleAssignment struct {
	TruckID    int
	PackageIDs []int
}

// FleetPlan describes one simulated delivery day.
//
// Vehicles take drivers in order. The first Drivers vehicles leave at
// DayStart; every later vehicle waits for a free driver and may not leave
// before ConstrainedDeparture.
type FleetPlan struct {
	DayStart             time.Time
	DayEnd               time.Time
	Drivers              int
	ConstrainedDeparture time.Time
	Capacity             int
	Vehicles             []VehicleAssignment
}

// FleetResult is the outcome of one simulated day up to a cutoff.
type FleetResult struct {
	CompletedAt time.Time
	Plans       []*domain.RoutePlan
}

// Fleet sequences the trucks of a FleetPlan over one day.
type Fleet struct {
	Dispatcher *Dispatcher
	Store      ports.PackageStore
	Plan       FleetPlan
	Trucks     []*domain.Truck
}

func NewFleet(dispatcher *Dispatcher, store ports.PackageStore, plan FleetPlan) *Fleet {
	trucks := make([]*domain.Truck, 0, len(plan.Vehicles))
	for _, v := range plan.Vehicles {
		trucks = append(trucks, domain.NewTruck(v.TruckID, plan.Capacity))
	}
	return &Fleet{
		Dispatcher: dispatcher,
		Store:      store,
		Plan:       plan,
		Trucks:     trucks,
	}
}

// Reset empties every truck and returns all packages to the hub.
func (f *Fleet) Reset() {
	for _, t := range f.Trucks {
		t.Reset()
	}
	f.Store.ResetAllStatus()
}

// Run loads and dispatches the trucks up to cutoff and returns the latest
// completion time, capped at cutoff.
//
// Vehicles with a driver at day start are dispatched concurrently; their
// package sets are disjoint and the graph is read-only, so the outcome matches
// a sequential run. A waiting vehicle departs at the later of
// ConstrainedDeparture and the earliest time a driver returns. If cutoff falls
// before ConstrainedDeparture the waiting vehicle never leaves and the day
// ends at cutoff.
func (f *Fleet) Run(ctx context.Context, cutoff time.Time) (_ *FleetResult, err error) {
	defer obs.Time(ctx, "fleet.run")(&err)

	if f.Dispatcher == nil || f.Store == nil {
		return nil, errors.New("fleet run: dispatcher and store must be non-nil")
	}
	if len(f.Trucks) != len(f.Plan.Vehicles) {
		return nil, fmt.Errorf("fleet run: %d trucks for %d vehicle assignments", len(f.Trucks), len(f.Plan.Vehicles))
	}

	result := &FleetResult{Plans: make([]*domain.RoutePlan, 0, len(f.Trucks))}
	if len(f.Trucks) == 0 {
		result.CompletedAt = domain.Cap(f.Plan.DayStart, cutoff)
		return result, nil
	}

	drivers := f.Plan.Drivers
	if drivers <= 0 || drivers > len(f.Trucks) {
		drivers = len(f.Trucks)
	}

	for i := 0; i < drivers; i++ {
		LoadAssignment(f.Trucks[i], f.Store, f.Plan.Vehicles[i].PackageIDs)
	}

	first := make([]*domain.RoutePlan, drivers)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < drivers; i++ {
		g.Go(func() error {
			plan, err := f.Dispatcher.Dispatch(gctx, f.Trucks[i], f.Plan.DayStart, cutoff)
			if err != nil {
				return fmt.Errorf("fleet run: truck %d: %w", f.Trucks[i].TruckID, err)
			}
			first[i] = plan
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	result.Plans = append(result.Plans, first...)

	// Time at which each driver is next free.
	freeAt := make([]time.Time, drivers)
	for i, p := range first {
		freeAt[i] = p.CompletedAt
	}

	earliestGate := domain.Later(f.Plan.DayStart, f.Plan.ConstrainedDeparture)
	for i := drivers; i < len(f.Trucks); i++ {
		if cutoff.Before(earliestGate) {
			result.CompletedAt = cutoff
			return result, nil
		}

		// Earliest-free driver: finishes at 9:40 and 9:55 with a 9:50 gate depart at 9:50.
		driver := 0
		for k := 1; k < len(freeAt); k++ {
			if freeAt[k].Before(freeAt[driver]) {
				driver = k
			}
		}
		departAt := domain.Later(earliestGate, freeAt[driver])

		LoadAssignment(f.Trucks[i], f.Store, f.Plan.Vehicles[i].PackageIDs)
		plan, err := f.Dispatcher.Dispatch(ctx, f.Trucks[i], departAt, cutoff)
		if err != nil {
			return nil, fmt.Errorf("fleet run: truck %d: %w", f.Trucks[i].TruckID, err)
		}
		result.Plans = append(result.Plans, plan)
		freeAt[driver] = plan.CompletedAt
	}

	done := result.Plans[0].CompletedAt
	for _, p := range result.Plans[1:] {
		done = domain.Later(done, p.CompletedAt)
	}
	result.CompletedAt = domain.Cap(done, cutoff)

	return result, nil
}
