package config

import (
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/services"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type VehicleFile struct {
	TruckID  int   `yaml:"truck_id"`
	Packages []int `yaml:"packages"`
}

// FleetFile is the YAML description of a delivery day. Times are 24-hour
// "HHMM" strings.
type FleetFile struct {
	Speed                float64                `yaml:"speed"`
	DayStart             string                 `yaml:"day_start"`
	DayEnd               string                 `yaml:"day_end"`
	Drivers              int                    `yaml:"drivers"`
	ConstrainedDeparture string                 `yaml:"constrained_departure"`
	Capacity             int                    `yaml:"capacity"`
	DeadlineMarkers      domain.DeadlineMarkers `yaml:"deadline_markers"`
	Vehicles             []VehicleFile          `yaml:"vehicles"`
}

// DefaultFleet is the three-truck, two-driver day the service ships with.
func DefaultFleet() FleetFile {
	return FleetFile{
		Speed:                domain.DefaultSpeed,
		DayStart:             "0800",
		DayEnd:               "1700",
		Drivers:              2,
		ConstrainedDeparture: "0950",
		Capacity:             domain.DefaultTruckCapacity,
		DeadlineMarkers:      domain.DefaultDeadlineMarkers,
		Vehicles: []VehicleFile{
			{TruckID: 1, Packages: []int{13, 14, 15, 16, 19, 20, 21, 34, 39}},
			{TruckID: 2, Packages: []int{1, 3, 5, 7, 8, 11, 12, 18, 22, 23, 24, 29, 30, 36, 37, 38}},
			{TruckID: 3, Packages: []int{2, 4, 6, 9, 10, 17, 25, 26, 27, 28, 31, 32, 33, 35, 40}},
		},
	}
}

// LoadFleet reads a fleet file over the defaults. An empty path returns the
// defaults.
func LoadFleet(path string) (FleetFile, error) {
	f := DefaultFleet()
	if path == "" {
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return FleetFile{}, fmt.Errorf("load fleet: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return FleetFile{}, fmt.Errorf("load fleet: parse %q: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return FleetFile{}, fmt.Errorf("load fleet: %q: %w", path, err)
	}
	return f, nil
}

func (f FleetFile) Validate() error {
	if f.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %v", f.Speed)
	}
	if f.Drivers < 0 {
		return fmt.Errorf("drivers must not be negative, got %d", f.Drivers)
	}
	if len(f.Vehicles) == 0 {
		return errors.New("at least one vehicle is required")
	}
	seen := make(map[int]struct{}, len(f.Vehicles))
	for _, v := range f.Vehicles {
		if _, ok := seen[v.TruckID]; ok {
			return fmt.Errorf("duplicate truck_id %d", v.TruckID)
		}
		seen[v.TruckID] = struct{}{}
	}
	return nil
}

func (f FleetFile) Clock() domain.SimClock { return domain.NewSimClock(f.Speed) }

// Plan resolves the file's wall-clock times on day.
func (f FleetFile) Plan(day time.Time) (services.FleetPlan, error) {
	start, err := domain.ParseWallClock(day, f.DayStart)
	if err != nil {
		return services.FleetPlan{}, fmt.Errorf("fleet plan: day_start: %w", err)
	}
	end, err := domain.ParseWallClock(day, f.DayEnd)
	if err != nil {
		return services.FleetPlan{}, fmt.Errorf("fleet plan: day_end: %w", err)
	}
	if !end.After(start) {
		return services.FleetPlan{}, fmt.Errorf("fleet plan: day_end %s must be after day_start %s: %w", f.DayEnd, f.DayStart, domain.ErrInvalidTimeInput)
	}

	gate := start
	if f.ConstrainedDeparture != "" {
		gate, err = domain.ParseWallClock(day, f.ConstrainedDeparture)
		if err != nil {
			return services.FleetPlan{}, fmt.Errorf("fleet plan: constrained_departure: %w", err)
		}
	}

	plan := services.FleetPlan{
		DayStart:             start,
		DayEnd:               end,
		Drivers:              f.Drivers,
		ConstrainedDeparture: gate,
		Capacity:             f.Capacity,
	}
	for _, v := range f.Vehicles {
		plan.Vehicles = append(plan.Vehicles, services.VehicleAssignment{
			TruckID:    v.TruckID,
			PackageIDs: append([]int(nil), v.Packages...),
		})
	}
	return plan, nil
}
