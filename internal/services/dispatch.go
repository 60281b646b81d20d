package services

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/graph"
	"delivery-dispatch-service/internal/metrics"
	"delivery-dispatch-service/internal/platform/obs"
	"errors"
	"fmt"
	"slices"
	"time"
)

// Dispatcher drives one loaded truck through its stops over a precomputed graph.
// The graph must be fully built before the first Dispatch; it is only read here.
type Dispatcher struct {
	Graph *graph.Graph
	Clock domain.SimClock
}

func NewDispatcher(g *graph.Graph, clock domain.SimClock) *Dispatcher {
	return &Dispatcher{Graph: g, Clock: clock}
}

// Destinations grouped by deadline tier, indexed by domain.Tier.
type tierQueues [3][]string

// classifyStops places every destination in exactly one tier, in load order.
//
// Tiering is per destination: one early-deadline package pulls its whole stop
// into the early tier, even when other packages for that address could wait.
func classifyStops(g *graph.Graph, packages []*domain.Package) (tierQueues, error) {
	var q tierQueues
	for _, pkg := range packages {
		loc, ok := g.LookupByAddress(pkg.Address)
		if !ok {
			return q, fmt.Errorf("package %d address %q: %w", pkg.PackageID, pkg.Address, domain.ErrNotFound)
		}
		addr := loc.Address

		inEarly := slices.Contains(q[domain.TierEarly], addr)
		inMid := slices.Contains(q[domain.TierMid], addr)

		switch pkg.Tier {
		case domain.TierEarly:
			if !inEarly {
				q[domain.TierMid] = remove(q[domain.TierMid], addr)
				q[domain.TierEOD] = remove(q[domain.TierEOD], addr)
				q[domain.TierEarly] = append(q[domain.TierEarly], addr)
			}
		case domain.TierMid:
			if !inEarly && !inMid {
				q[domain.TierEOD] = remove(q[domain.TierEOD], addr)
				q[domain.TierMid] = append(q[domain.TierMid], addr)
			}
		default:
			if !inEarly && !inMid && !slices.Contains(q[domain.TierEOD], addr) {
				q[domain.TierEOD] = append(q[domain.TierEOD], addr)
			}
		}
	}
	return q, nil
}

func remove(list []string, addr string) []string {
	if i := slices.Index(list, addr); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return list
}

// nearest picks the closest queued destination from the current location.
// Ties keep the first index; there is no second criterion.
func (d *Dispatcher) nearest(from string, queue []string) (int, float64, error) {
	best := 0
	bestMiles, ok := d.Graph.Distance(from, queue[0])
	if !ok {
		return 0, 0, fmt.Errorf("missing distance from %q to %q", from, queue[0])
	}
	for i := 1; i < len(queue); i++ {
		miles, ok := d.Graph.Distance(from, queue[i])
		if !ok {
			return 0, 0, fmt.Errorf("missing distance from %q to %q", from, queue[i])
		}
		if miles < bestMiles {
			best, bestMiles = i, miles
		}
	}
	return best, bestMiles, nil
}

// Dispatch simulates the truck's route between begin and end.
//
// Stops are visited tier by tier (early, mid, end of day), nearest first within
// the active tier, then the truck heads back to the hub. Before each leg the
// remaining budget is checked; when a leg does not fit the truck covers what it
// can, the clock stops at end and undelivered packages stay en route.
// The plan's CompletedAt is the earlier of the hub return and end.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	truck *domain.Truck,
	begin time.Time,
	end time.Time,
) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "route.dispatch")(&err)

	if truck == nil {
		return nil, errors.New("dispatch: truck must be non-nil")
	}

	plan := &domain.RoutePlan{
		TruckID:  truck.TruckID,
		DepartAt: begin,
		Stops:    []domain.RouteStop{},
	}

	if len(truck.Packages) == 0 {
		plan.CompletedAt = begin
		metrics.RoutesDispatched.WithLabelValues("empty").Inc()
		return plan, nil
	}

	hub, ok := d.Graph.Hub()
	if !ok {
		return nil, errors.New("dispatch: graph has no hub location")
	}

	queues, err := classifyStops(d.Graph, truck.Packages)
	if err != nil {
		return nil, fmt.Errorf("dispatch: truck %d: %w", truck.TruckID, err)
	}

	currentLocation := hub.Address
	currentTime := begin
	remaining := domain.BudgetMinutes(begin, end)
	startMiles := truck.Distance

	for tier := domain.TierEarly; tier <= domain.TierEOD; {
		queue := queues[tier]
		if len(queue) == 0 {
			tier++
			continue
		}

		next, miles, err := d.nearest(currentLocation, queue)
		if err != nil {
			return nil, fmt.Errorf("dispatch: truck %d: %w", truck.TruckID, err)
		}

		if !d.Clock.CanDrive(miles, remaining) {
			d.cutOff(truck, plan, remaining, end, startMiles)
			return plan, nil
		}

		truck.Drive(miles)
		remaining -= d.Clock.TravelMinutes(miles)
		currentTime = currentTime.Add(d.Clock.TravelDuration(miles))
		currentLocation = queue[next]

		stop, err := deliverAt(truck, currentLocation, currentTime)
		if err != nil {
			return nil, fmt.Errorf("dispatch: %w", err)
		}
		stop.Tier = tier
		plan.Stops = append(plan.Stops, stop)

		queues[tier] = slices.Delete(queue, next, next+1)
	}

	back, ok := d.Graph.Distance(currentLocation, hub.Address)
	if !ok {
		return nil, fmt.Errorf("dispatch: truck %d: missing return leg from %q to %q", truck.TruckID, currentLocation, hub.Address)
	}
	if !d.Clock.CanDrive(back, remaining) {
		d.cutOff(truck, plan, remaining, end, startMiles)
		return plan, nil
	}

	truck.Drive(back)
	currentTime = currentTime.Add(d.Clock.TravelDuration(back))

	plan.CompletedAt = domain.Cap(currentTime, end)
	plan.ReturnedToHub = true
	plan.DistanceMiles = truck.Distance - startMiles

	metrics.RoutesDispatched.WithLabelValues("completed").Inc()
	metrics.RouteDistance.Observe(plan.DistanceMiles)
	return plan, nil
}

// cutOff moves the truck as far as the remaining minutes allow and stops the
// clock at end.
func (d *Dispatcher) cutOff(truck *domain.Truck, plan *domain.RoutePlan, remaining float64, end time.Time, startMiles float64) {
	truck.Drive(d.Clock.Reach(remaining))

	plan.CompletedAt = end
	plan.CutOff = true
	plan.DistanceMiles = truck.Distance - startMiles

	metrics.RoutesDispatched.WithLabelValues("cutoff").Inc()
	metrics.RouteDistance.Observe(plan.DistanceMiles)
}

// deliverAt unloads every package bound for address.
func deliverAt(truck *domain.Truck, address string, at time.Time) (domain.RouteStop, error) {
	stop := domain.RouteStop{Destination: address, ArriveAt: at}

	var due []*domain.Package
	for _, pkg := range truck.Packages {
		if pkg.Address == address {
			due = append(due, pkg)
		}
	}
	for _, pkg := range due {
		if err := truck.Deliver(pkg, at); err != nil {
			return stop, err
		}
		stop.PackageIDs = append(stop.PackageIDs, pkg.PackageID)
		metrics.PackagesDelivered.Inc()
	}
	return stop, nil
}
