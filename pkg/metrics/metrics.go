package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SolveMetrics encapsulates Prometheus instrumentation for solve runs.
// The engine exposes no network surface itself; the host application mounts
// Handler() wherever it serves its own endpoints.
type SolveMetrics struct {
	registry      *prometheus.Registry
	handler       http.Handler
	solveTotal    *prometheus.CounterVec
	solveDuration prometheus.Observer
	candidates    prometheus.Histogram
	branches      prometheus.Histogram
}

// NewSolveMetrics registers the solver collectors on a private registry.
func NewSolveMetrics() *SolveMetrics {
	registry := prometheus.NewRegistry()

	solveTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_solves_total",
		Help: "Total number of solve runs by final status",
	}, []string{"status"})

	solveDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_solve_duration_seconds",
		Help:    "Wall-clock duration of solve runs",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
	})

	candidates := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_solve_candidates",
		Help:    "Admissible candidate tuples per solve run",
		Buckets: prometheus.ExponentialBuckets(10, 4, 8),
	})

	branches := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_solve_branches",
		Help:    "Search nodes explored per solve run",
		Buckets: prometheus.ExponentialBuckets(10, 4, 10),
	})

	registry.MustRegister(solveTotal, solveDuration, candidates, branches)

	return &SolveMetrics{
		registry:      registry,
		handler:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		solveTotal:    solveTotal,
		solveDuration: solveDuration,
		candidates:    candidates,
		branches:      branches,
	}
}

// Handler exposes the Prometheus HTTP handler for the host application.
func (m *SolveMetrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveSolve records the outcome of one solve run.
func (m *SolveMetrics) ObserveSolve(status string, duration time.Duration, candidates, branches int64) {
	if m == nil {
		return
	}
	m.solveTotal.WithLabelValues(status).Inc()
	m.solveDuration.Observe(duration.Seconds())
	m.candidates.Observe(float64(candidates))
	m.branches.Observe(float64(branches))
}
