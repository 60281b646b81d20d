package domain

import (
	"fmt"
	"slices"
	"time"
)

const DefaultTruckCapacity = 16

// Delivery truck holding loaded packages and the distance driven today.
// Packages are shared with the package store; the truck never owns them.
type Truck struct {
	TruckID  int
	Capacity int
	Packages []*Package
	Distance float64
}

func NewTruck(id int, capacity int) *Truck {
	if capacity <= 0 {
		capacity = DefaultTruckCapacity
	}
	return &Truck{
		TruckID:  id,
		Capacity: capacity,
	}
}

// Load a single package onto the truck and mark it en route.
// Packages that are not at the hub, or already aboard, are refused.
func (t *Truck) Load(pkg *Package) error {
	if pkg == nil {
		return fmt.Errorf("load truck: truck %d: nil package: %w", t.TruckID, ErrNotFound)
	}
	if slices.Contains(t.Packages, pkg) {
		return fmt.Errorf("load truck: truck %d: package %d already loaded: %w", t.TruckID, pkg.PackageID, ErrInvalidLoadState)
	}
	if len(t.Packages) >= t.Capacity {
		return fmt.Errorf("load truck: truck %d is at full capacity (capacity=%d): %w", t.TruckID, t.Capacity, ErrCapacityExceeded)
	}
	if pkg.Status.State != AtHub {
		return fmt.Errorf("load truck: truck %d: package %d is %s: %w", t.TruckID, pkg.PackageID, pkg.Status, ErrInvalidLoadState)
	}
	if err := pkg.MarkEnRoute(t.TruckID); err != nil {
		return fmt.Errorf("load truck: %w", err)
	}
	t.Packages = append(t.Packages, pkg)
	return nil
}

// Load multiple packages onto the truck, stopping at the first refusal.
func (t *Truck) LoadMultiple(pkgs []*Package) error {
	for _, pkg := range pkgs {
		if err := t.Load(pkg); err != nil {
			return err
		}
	}

	return nil
}

// Deliver removes a loaded package and stamps its delivery time.
func (t *Truck) Deliver(pkg *Package, at time.Time) error {
	i := slices.Index(t.Packages, pkg)
	if i < 0 {
		return fmt.Errorf("deliver: truck %d: package %d not aboard: %w", t.TruckID, pkg.PackageID, ErrNotFound)
	}
	if err := pkg.MarkDelivered(at); err != nil {
		return fmt.Errorf("deliver: %w", err)
	}
	t.Packages = slices.Delete(t.Packages, i, i+1)
	return nil
}

func (t *Truck) Drive(miles float64) { t.Distance += miles }

// Unload all packages from the truck.
func (t *Truck) Clear() {
	t.Packages = nil
}

// Reset prepares the truck for a new simulated day.
func (t *Truck) Reset() {
	t.Clear()
	t.Distance = 0
}
