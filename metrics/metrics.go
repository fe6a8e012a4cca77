// Package metrics exposes Prometheus counters for the HTTP API and script runs.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run outcomes.
const (
	OutcomeSuccess  = `success`
	OutcomeFailure  = `failure`
	OutcomeNotFound = `not_found`
	OutcomeError    = `error`
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scripthub",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scripthub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	scriptRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scripthub",
			Subsystem: "script",
			Name:      "runs_total",
			Help:      "Script runs by outcome.",
		},
		[]string{"outcome"},
	)
	scriptDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scripthub",
			Subsystem: "script",
			Name:      "run_duration_seconds",
			Help:      "Script run duration in seconds.",
			Buckets:   []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 300, 900},
		},
		[]string{"outcome"},
	)
	catalogLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scripthub",
			Subsystem: "catalog",
			Name:      "loads_total",
			Help:      "Catalog listings by result.",
		},
		[]string{"success"},
	)
)

// Register registers all collectors with the default registry. It is safe to call repeatedly.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, scriptRuns, scriptDuration, catalogLoads)
	})
}

// Handler returns the exposition handler for the default registry.
func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	Register()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

// RecordRun counts one run request by outcome. Script paths come from callers
// and are never used as label values.
func RecordRun(outcome string, duration time.Duration) {
	Register()
	scriptRuns.WithLabelValues(outcome).Inc()
	scriptDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func RecordCatalogLoad(success bool) {
	Register()
	catalogLoads.WithLabelValues(strconv.FormatBool(success)).Inc()
}
