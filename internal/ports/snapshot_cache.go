package ports

import (
	"context"
	"delivery-dispatch-service/internal/domain"
)

// Optional cache of simulation snapshots keyed by cutoff.
// Runs are deterministic, so a snapshot stays valid until the input data changes.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (*domain.Snapshot, bool, error)
	Put(ctx context.Context, key string, snap *domain.Snapshot) error
}
