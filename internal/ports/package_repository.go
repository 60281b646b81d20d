package ports

import (
	"context"
	"delivery-dispatch-service/internal/domain"
)

// Port: a boundary for retrieving Package entities from a data source.
type PackageRepository interface {
	// Retrieve all packages of the delivery day, in source order.
	ListPackages(ctx context.Context) ([]*domain.Package, error)
}
