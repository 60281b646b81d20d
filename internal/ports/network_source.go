package ports

import (
	"context"
	"delivery-dispatch-service/internal/domain"
)

// Port: supplies the delivery network the graph is built from.
type NetworkSource interface {
	// Return locations in matrix order. The first one is the hub.
	ListLocations(ctx context.Context) ([]domain.Location, error)
	// Return the lower-triangular distance matrix indexed like ListLocations.
	DistanceMatrix(ctx context.Context) ([][]float64, error)
}
