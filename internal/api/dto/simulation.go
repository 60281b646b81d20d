package dto

import "time"

type PackageResponse struct {
	PackageID int    `json:"package_id"`
	Address   string `json:"address"`
	Deadline  string `json:"deadline"`
	Status    string `json:"status"`
}

type TruckResponse struct {
	TruckID       int     `json:"truck_id"`
	DistanceMiles float64 `json:"distance_miles"`
}

type SimulationResponse struct {
	RunID              string            `json:"run_id"`
	At                 time.Time         `json:"at"`
	CompletedAt        time.Time         `json:"completed_at"`
	TotalDistanceMiles float64           `json:"total_distance_miles"`
	Trucks             []TruckResponse   `json:"trucks"`
	Packages           []PackageResponse `json:"packages"`
}
