package main

import (
	"context"
	"delivery-dispatch-service/internal/adapters/cache"
	"delivery-dispatch-service/internal/adapters/repositories"
	"delivery-dispatch-service/internal/adapters/store"
	"delivery-dispatch-service/internal/api"
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/metrics"
	"delivery-dispatch-service/internal/platform/db"
	"delivery-dispatch-service/internal/ports"
	"delivery-dispatch-service/internal/services"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// main is the application composition root.
// It wires concrete adapters (CSV or PostgreSQL, Redis) behind ports, builds the
// routing engine once and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	fleetFile, err := config.LoadFleet(cfg.FleetPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	network, packages, closeSource, err := openSources(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeSource()

	engine, err := buildEngine(ctx, network, packages, fleetFile)
	if err != nil {
		log.Fatal(err)
	}

	var snapshots ports.SnapshotCache
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisSnapshotCache(cfg.RedisURL, cfg.SnapshotTTL)
		if err != nil {
			log.Fatal(err)
		}
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			log.Printf("redis unavailable, snapshots will not be cached: %v", err)
		} else {
			snapshots = rc
		}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	metrics.RegisterDefault()
	router := api.NewRouter(engine, snapshots, limiter)

	log.Printf("Server listening addr=:%s source=%s", cfg.Port, cfg.DataSource)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openSources(ctx context.Context, cfg config.Config) (ports.NetworkSource, ports.PackageRepository, func(), error) {
	if cfg.DataSource == "postgres" {
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		src := repositories.NewPostgresSource(conn)
		return src, src, func() { _ = conn.Close() }, nil
	}

	src := repositories.NewCSVSource(cfg.LocationsCSV, cfg.DistancesCSV, cfg.PackagesCSV)
	return src, src, func() {}, nil
}

func buildEngine(
	ctx context.Context,
	network ports.NetworkSource,
	packages ports.PackageRepository,
	fleetFile config.FleetFile,
) (*services.Engine, error) {
	g, err := services.BuildGraph(ctx, network)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}

	pkgStore := store.NewHashTable(0)
	n, err := services.LoadPackages(ctx, packages, pkgStore, fleetFile.DeadlineMarkers)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}

	today := time.Now()
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.Local)
	plan, err := fleetFile.Plan(day)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}

	engine := services.NewEngine(g, pkgStore, plan, fleetFile.Clock())
	log.Printf("engine ready locations=%d packages=%d trucks=%d drivers=%d fingerprint=%s",
		g.Len(), n, len(plan.Vehicles), plan.Drivers, engine.Fingerprint())
	return engine, nil
}
