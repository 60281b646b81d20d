package services

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/graph"
	"delivery-dispatch-service/internal/platform/obs"
	"delivery-dispatch-service/internal/ports"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Engine owns the state of one simulated delivery day: the graph, the package
// store and the fleet. Every query resets that state and replays the day up
// to the requested time.
//
// Engine is not safe for concurrent use; callers serialize access.
type Engine struct {
	Graph *graph.Graph
	Store ports.PackageStore
	Fleet *Fleet

	fpOnce      sync.Once
	fingerprint string
}

func NewEngine(g *graph.Graph, store ports.PackageStore, plan FleetPlan, clock domain.SimClock) *Engine {
	return &Engine{
		Graph: g,
		Store: store,
		Fleet: NewFleet(NewDispatcher(g, clock), store, plan),
	}
}

// Reset empties the trucks and returns every package to the hub.
func (e *Engine) Reset() { e.Fleet.Reset() }

// ParseCutoff parses an "HHMM" time on the simulated day. The cutoff must
// fall after the day starts.
func (e *Engine) ParseCutoff(hhmm string) (time.Time, error) {
	start := e.Fleet.Plan.DayStart
	t, err := domain.ParseWallClock(start, hhmm)
	if err != nil {
		return time.Time{}, err
	}
	if !t.After(start) {
		return time.Time{}, fmt.Errorf("cutoff %s must be after %s: %w", hhmm, start.Format("1504"), domain.ErrInvalidTimeInput)
	}
	return t, nil
}

// RunDay resets the day and simulates it up to cutoff. A zero cutoff runs to
// the end of the day.
func (e *Engine) RunDay(ctx context.Context, cutoff time.Time) (_ *domain.Snapshot, err error) {
	defer obs.Time(ctx, "engine.run_day")(&err)

	if cutoff.IsZero() {
		cutoff = e.Fleet.Plan.DayEnd
	}
	if !cutoff.After(e.Fleet.Plan.DayStart) {
		return nil, fmt.Errorf("run day: cutoff %s: %w", cutoff.Format(time.TimeOnly), domain.ErrInvalidTimeInput)
	}

	e.Reset()
	res, err := e.Fleet.Run(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("run day: %w", err)
	}

	return e.snapshot(cutoff, res.CompletedAt), nil
}

// PackageStatus reports one package's status at cutoff together with the
// snapshot of the run that produced it.
func (e *Engine) PackageStatus(ctx context.Context, id int, cutoff time.Time) (domain.PackageSnapshot, *domain.Snapshot, error) {
	if _, ok := e.Store.Find(id); !ok {
		return domain.PackageSnapshot{}, nil, fmt.Errorf("package status: package %d: %w", id, domain.ErrNotFound)
	}

	snap, err := e.RunDay(ctx, cutoff)
	if err != nil {
		return domain.PackageSnapshot{}, nil, fmt.Errorf("package status: %w", err)
	}

	p, _ := snap.Package(id)
	return p, snap, nil
}

// Fingerprint identifies the day's inputs: network, packages, fleet plan and
// speed. Runs with equal fingerprints and cutoffs produce the same snapshot.
func (e *Engine) Fingerprint() string {
	e.fpOnce.Do(func() {
		d := xxhash.New()

		locs := e.Graph.Locations()
		for i, a := range locs {
			fmt.Fprintf(d, "L|%s|%s|%s\n", a.Name, a.Address, a.Zipcode)
			for _, b := range locs[:i] {
				miles, _ := e.Graph.Distance(a.Address, b.Address)
				fmt.Fprintf(d, "D|%s|%s|%g\n", a.Address, b.Address, miles)
			}
		}
		for _, p := range e.Store.All() {
			fmt.Fprintf(d, "P|%d|%s|%s|%s\n", p.PackageID, p.Address, p.Deadline, p.Tier)
		}

		plan := e.Fleet.Plan
		fmt.Fprintf(d, "F|%s|%s|%d|%s|%d|%g\n",
			plan.DayStart.Format(time.RFC3339), plan.DayEnd.Format(time.RFC3339), plan.Drivers,
			plan.ConstrainedDeparture.Format(time.RFC3339), plan.Capacity, e.Fleet.Dispatcher.Clock.Speed)
		for _, v := range plan.Vehicles {
			fmt.Fprintf(d, "V|%d|%v\n", v.TruckID, v.PackageIDs)
		}

		e.fingerprint = strconv.FormatUint(d.Sum64(), 16)
	})
	return e.fingerprint
}

func (e *Engine) snapshot(at, completedAt time.Time) *domain.Snapshot {
	snap := &domain.Snapshot{
		RunID:       uuid.NewString(),
		At:          at,
		CompletedAt: completedAt,
	}

	for _, pkg := range e.Store.All() {
		snap.Packages = append(snap.Packages, domain.PackageSnapshot{
			PackageID: pkg.PackageID,
			Address:   pkg.Address,
			Deadline:  pkg.Deadline,
			Status:    pkg.Status.String(),
		})
	}
	for _, t := range e.Fleet.Trucks {
		snap.Trucks = append(snap.Trucks, domain.TruckSnapshot{TruckID: t.TruckID, DistanceMiles: t.Distance})
		snap.TotalDistanceMiles += t.Distance
	}

	return snap
}
