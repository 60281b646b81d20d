package api

import (
	"delivery-dispatch-service/internal/api/handlers"
	"delivery-dispatch-service/internal/metrics"
	"delivery-dispatch-service/internal/ports"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// cache and limiter are optional.
func NewRouter(engine handlers.DayRunner, cache ports.SnapshotCache, limiter *rate.Limiter) http.Handler {
	mux := http.NewServeMux()

	simHandler := &handlers.SimulationHandler{
		Engine: engine,
		Cache:  cache,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/simulations", simHandler.Simulate)
	mux.HandleFunc("/packages/{id}", simHandler.PackageStatus)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	var h http.Handler = loggingMiddleware(mux)
	if limiter != nil {
		h = rateLimitMiddleware(limiter, h)
	}
	return requestIDMiddleware(h)
}
