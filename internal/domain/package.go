package domain

import (
	"fmt"
	"strings"
	"time"
)

// Deadline tier of a package, in delivery priority order.
type Tier int

const (
	TierEarly Tier = iota // earliest cutoff, e.g. 9:00
	TierMid               // mid-morning cutoff, e.g. 10:30
	TierEOD               // end of day, no hard deadline
)

func (t Tier) String() string {
	switch t {
	case TierEarly:
		return "A"
	case TierMid:
		return "B"
	default:
		return "C"
	}
}

// DeadlineMarkers are the substrings that place a deadline text into a tier.
type DeadlineMarkers struct {
	Early string `yaml:"early"`
	Mid   string `yaml:"mid"`
}

var DefaultDeadlineMarkers = DeadlineMarkers{Early: "9:00", Mid: "10:30"}

// Classify maps free-form deadline text ("9:00 AM", "EOD", ...) to a tier.
func (m DeadlineMarkers) Classify(deadline string) Tier {
	switch {
	case m.Early != "" && strings.Contains(deadline, m.Early):
		return TierEarly
	case m.Mid != "" && strings.Contains(deadline, m.Mid):
		return TierMid
	default:
		return TierEOD
	}
}

type StatusState int

const (
	AtHub StatusState = iota
	EnRoute
	Delivered
)

// Delivery status of a package. VehicleID is set while en route,
// DeliveredAt once delivered.
type Status struct {
	State       StatusState
	VehicleID   int
	DeliveredAt time.Time
}

func (s Status) String() string {
	switch s.State {
	case EnRoute:
		return fmt.Sprintf("EN_ROUTE:%d", s.VehicleID)
	case Delivered:
		return "DELIVERED:" + s.DeliveredAt.Format(time.TimeOnly)
	default:
		return "AT_HUB"
	}
}

// Represents a single delivery unit handled by the system.
// Status only moves forward (AT_HUB -> EN_ROUTE -> DELIVERED) until the
// day is reset.
type Package struct {
	PackageID int
	Address   string
	City      string
	State     string
	Zipcode   string
	Deadline  string
	Tier      Tier
	Weight    int
	Notes     string
	Status    Status
}

// MarkEnRoute records that the package was loaded on a vehicle.
func (p *Package) MarkEnRoute(vehicleID int) error {
	if p.Status.State != AtHub {
		return fmt.Errorf("package %d: %s -> EN_ROUTE: %w", p.PackageID, p.Status, ErrInvalidTransition)
	}
	p.Status = Status{State: EnRoute, VehicleID: vehicleID}
	return nil
}

// MarkDelivered records the simulated delivery time.
func (p *Package) MarkDelivered(at time.Time) error {
	if p.Status.State != EnRoute {
		return fmt.Errorf("package %d: %s -> DELIVERED: %w", p.PackageID, p.Status, ErrInvalidTransition)
	}
	p.Status = Status{State: Delivered, VehicleID: p.Status.VehicleID, DeliveredAt: at}
	return nil
}

// ResetStatus returns the package to the hub for a new simulated day.
func (p *Package) ResetStatus() {
	p.Status = Status{State: AtHub}
}
