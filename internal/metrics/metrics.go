package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// RoutesDispatched counts dispatched routes by outcome (completed, cutoff, empty)
	RoutesDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "routes_dispatched_total", Help: "Dispatched truck routes by outcome."},
		[]string{"outcome"},
	)
	// RouteDistance records miles driven per dispatched route
	RouteDistance = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "route_distance_miles", Help: "Miles driven per dispatched route.", Buckets: []float64{5, 10, 20, 30, 40, 60, 80, 120}},
	)
	// PackagesDelivered counts simulated deliveries
	PackagesDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "packages_delivered_total", Help: "Simulated package deliveries."},
	)
	// LoadRefusals counts packages a truck refused to load, by reason
	LoadRefusals = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "package_load_refusals_total", Help: "Packages refused at load time by reason."},
		[]string{"reason"},
	)
	// SimulationRuns counts day simulations served, by source (engine, cache)
	SimulationRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "simulation_runs_total", Help: "Day simulations served by source."},
		[]string{"source"},
	)
)

// RegisterDefault registers collectors to the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(RoutesDispatched)
		Registry.MustRegister(RouteDistance)
		Registry.MustRegister(PackagesDelivered)
		Registry.MustRegister(LoadRefusals)
		Registry.MustRegister(SimulationRuns)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
