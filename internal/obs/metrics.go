// Package obs exposes Prometheus metrics for the Storymap API.
package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	authzDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authz_decisions_total",
			Help: "Authorization decisions by check and outcome.",
		},
		[]string{"check", "result"},
	)

	spatialQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spatial_queries_total",
			Help: "Spatial searches by backend, kind, and outcome.",
		},
		[]string{"backend", "kind", "result"},
	)

	spatialQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spatial_query_duration_seconds",
			Help:    "Spatial search latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "kind"},
	)
)

// Init registers all metrics with the default registry.
func Init() {
	prometheus.MustRegister(
		httpInFlight,
		httpRequestsTotal,
		httpRequestDuration,
		authzDecisionsTotal,
		spatialQueriesTotal,
		spatialQueryDuration,
	)
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// AuthzDecision counts one middleware check outcome.
func AuthzDecision(check string, allowed bool) {
	result := "denied"
	if allowed {
		result = "granted"
	}
	authzDecisionsTotal.WithLabelValues(check, result).Inc()
}

// SpatialQuery records one search against a backend.
func SpatialQuery(backend, kind string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	spatialQueriesTotal.WithLabelValues(backend, kind, result).Inc()
	if err == nil {
		spatialQueryDuration.WithLabelValues(backend, kind).Observe(time.Since(start).Seconds())
	}
}

// Instrument wraps a handler with RPS, latency, and in-flight measurements.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInFlight.Inc()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		status := strconv.Itoa(sw.code)
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpInFlight.Dec()
	})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
