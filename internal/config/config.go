package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration read from the environment.
type Config struct {
	Port         string
	DataSource   string // "csv" or "postgres"
	DatabaseURL  string
	LocationsCSV string
	DistancesCSV string
	PackagesCSV  string
	FleetPath    string
	RedisURL     string
	SnapshotTTL  time.Duration
	RateLimit    float64
	RateBurst    int
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadEnv loads a .env file when present. Missing files are not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Load reads the configuration, loading .env first.
func Load() (Config, error) {
	LoadEnv()

	cfg := Config{
		Port:         Get("PORT", "8080"),
		DataSource:   strings.ToLower(Get("DATA_SOURCE", "csv")),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		LocationsCSV: Get("LOCATIONS_CSV", "data/locations.csv"),
		DistancesCSV: Get("DISTANCES_CSV", "data/distances.csv"),
		PackagesCSV:  Get("PACKAGES_CSV", "data/packages.csv"),
		FleetPath:    os.Getenv("FLEET_PATH"),
		RedisURL:     os.Getenv("REDIS_URL"),
	}

	ttl, err := time.ParseDuration(Get("SNAPSHOT_TTL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: SNAPSHOT_TTL: %w", err)
	}
	cfg.SnapshotTTL = ttl

	rate, err := strconv.ParseFloat(Get("RATE_LIMIT", "20"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("load config: RATE_LIMIT: %w", err)
	}
	cfg.RateLimit = rate

	burst, err := strconv.Atoi(Get("RATE_BURST", "40"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: RATE_BURST: %w", err)
	}
	cfg.RateBurst = burst

	switch cfg.DataSource {
	case "csv":
	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return Config{}, fmt.Errorf("load config: DATABASE_URL is required for DATA_SOURCE=postgres")
		}
	default:
		return Config{}, fmt.Errorf("load config: unknown DATA_SOURCE %q", cfg.DataSource)
	}

	return cfg, nil
}
