package domain

import "time"

type PackageSnapshot struct {
	PackageID int    `json:"package_id"`
	Address   string `json:"address"`
	Deadline  string `json:"deadline"`
	Status    string `json:"status"`
}

type TruckSnapshot struct {
	TruckID       int     `json:"truck_id"`
	DistanceMiles float64 `json:"distance_miles"`
}

// State of every package and truck at a cutoff of the simulated day.
type Snapshot struct {
	RunID              string            `json:"run_id"`
	At                 time.Time         `json:"at"`
	CompletedAt        time.Time         `json:"completed_at"`
	Packages           []PackageSnapshot `json:"packages"`
	Trucks             []TruckSnapshot   `json:"trucks"`
	TotalDistanceMiles float64           `json:"total_distance_miles"`
}

// Package returns the snapshot entry for id.
func (s *Snapshot) Package(id int) (PackageSnapshot, bool) {
	for _, p := range s.Packages {
		if p.PackageID == id {
			return p, true
		}
	}
	return PackageSnapshot{}, false
}
