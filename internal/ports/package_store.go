package ports

import "delivery-dispatch-service/internal/domain"

// Keyed package lookup shared by the fleet and the query surface.
// Packages are returned by reference so status changes are visible to every
// holder.
type PackageStore interface {
	// Insert reports false when the id is already present.
	Insert(pkg *domain.Package) bool
	Find(id int) (*domain.Package, bool)
	// ResetAllStatus returns every package to AT_HUB.
	ResetAllStatus()
	// All returns the packages ordered by id.
	All() []*domain.Package
}
