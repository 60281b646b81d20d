package services

import (
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/metrics"
	"delivery-dispatch-service/internal/ports"
	"errors"
	"log"
)

// LoadAssignment loads the externally assigned package ids onto a truck, in
// order, and returns how many were loaded.
//
// Unknown ids and refused loads (full truck, package not at the hub) are
// logged and skipped rather than failing the day.
func LoadAssignment(truck *domain.Truck, store ports.PackageStore, packageIDs []int) int {
	loaded := 0
	for _, id := range packageIDs {
		pkg, ok := store.Find(id)
		if !ok {
			metrics.LoadRefusals.WithLabelValues("not_found").Inc()
			log.Printf("load assignment: truck=%d package_id=%d err=not found", truck.TruckID, id)
			continue
		}

		if err := truck.Load(pkg); err != nil {
			metrics.LoadRefusals.WithLabelValues(refusalReason(err)).Inc()
			log.Printf("load assignment: truck=%d package_id=%d err=%v", truck.TruckID, id, err)
			continue
		}
		loaded++
	}

	return loaded
}

func refusalReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "capacity"
	case errors.Is(err, domain.ErrInvalidLoadState):
		return "state"
	default:
		return "other"
	}
}
