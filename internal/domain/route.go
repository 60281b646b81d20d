package domain

import "time"

// Represents a single stop in a delivery route.
// A RouteStop corresponds to arriving at a destination at a simulated time
// and delivering every loaded package bound for it.
type RouteStop struct {
	Destination string
	Tier        Tier
	ArriveAt    time.Time
	PackageIDs  []int
}

// Represents the dispatched route of a single truck.
// CompletedAt is the earlier of the hub return and the day cutoff; CutOff
// reports that the budget ran out before the route finished.
type RoutePlan struct {
	TruckID       int
	DepartAt      time.Time
	Stops         []RouteStop
	DistanceMiles float64
	CompletedAt   time.Time
	ReturnedToHub bool
	CutOff        bool
}
