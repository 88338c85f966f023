package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// Solves counts planner runs by merge mode and outcome (solved, cached, invalid, error).
	Solves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "planner_solves_total", Help: "Planner runs by merge mode and outcome."},
		[]string{"mode", "outcome"},
	)
	SolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "planner_solve_duration_seconds", Help: "Time spent solving one dataset.", Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5}},
		[]string{"mode"},
	)
	RoutesPerSolution = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "planner_routes_per_solution", Help: "Number of truck routes in a solution.", Buckets: prometheus.LinearBuckets(1, 2, 10)},
	)
	DistanceCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "planner_distance_cache_lookups_total", Help: "Distance matrix rows served from cache or computed."},
		[]string{"result"},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on Registry. Safe to call repeatedly.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Solves)
		Registry.MustRegister(SolveDuration)
		Registry.MustRegister(RoutesPerSolution)
		Registry.MustRegister(DistanceCacheLookups)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
