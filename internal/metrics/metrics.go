// Package metrics exposes solver and HTTP activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/rootcalc/internal/rootfind"
)

const namespace = "rootcalc"

// Recorder owns a private registry so several recorders (one per test, one
// per server) never collide on registration.
type Recorder struct {
	registry *prometheus.Registry

	solves         *prometheus.CounterVec
	iterations     *prometheus.HistogramVec
	solveDuration  *prometheus.HistogramVec
	finalError     *prometheus.GaugeVec
	requests       *prometheus.CounterVec
	activeRequests prometheus.Gauge
	requestLatency *prometheus.HistogramVec
}

// NewRecorder creates a recorder with the solver, HTTP and Go runtime
// collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Number of solver runs by method and outcome.",
		}, []string{"method", "outcome"}),
		iterations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_iterations",
			Help:      "Iterations performed per solver run.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100, 500, 1000},
		}, []string{"method"}),
		solveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time per solver run.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"method"}),
		finalError: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_final_error",
			Help:      "Final error of the last converged run per method.",
		}, []string{"method"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "HTTP requests by path and status code.",
		}, []string{"path", "code"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_requests",
			Help:      "HTTP requests currently being served.",
		}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
	}
	r.registry.MustRegister(
		r.solves, r.iterations, r.solveDuration, r.finalError,
		r.requests, r.activeRequests, r.requestLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveSolve records one solver run.
func (r *Recorder) ObserveSolve(result rootfind.SolveResult, duration time.Duration) {
	method := string(result.Method)
	r.solves.WithLabelValues(method, string(result.Outcome)).Inc()
	r.iterations.WithLabelValues(method).Observe(float64(result.IterationCount))
	r.solveDuration.WithLabelValues(method).Observe(duration.Seconds())
	if result.Converged {
		r.finalError.WithLabelValues(method).Set(result.FinalError)
	}
}

// IncrementActiveRequests marks the start of an HTTP request.
func (r *Recorder) IncrementActiveRequests() { r.activeRequests.Inc() }

// DecrementActiveRequests marks the end of an HTTP request.
func (r *Recorder) DecrementActiveRequests() { r.activeRequests.Dec() }

// ObserveRequest records a finished HTTP request.
func (r *Recorder) ObserveRequest(path string, code int, duration time.Duration) {
	r.requests.WithLabelValues(path, strconv.Itoa(code)).Inc()
	r.requestLatency.WithLabelValues(path).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry returns the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
