// Package observability provides Prometheus metrics, health checks, and logging.
//
// Uses github.com/prometheus/client_golang - the official Prometheus client.
// Chosen for its maturity, wide adoption, and seamless integration with
// the Prometheus ecosystem (Grafana, Alertmanager, etc.).
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
// Metrics are automatically registered via promauto.
//
// Key metrics for monitoring:
//   - operation_results_total: Per-operation success/error outcome rate
//   - http_requests_total: Request rate by route and status
//   - http_request_duration_seconds: Latency distribution
type Metrics struct {
	OperationResults    *prometheus.CounterVec
	EntitiesActive      prometheus.Gauge
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all Prometheus metrics.
// The namespace prefixes all metric names (e.g., "skeleton_http_requests_total").
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		OperationResults: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_results_total",
			Help:      "Total operation results by operation name and outcome (success or error code)",
		}, []string{"operation", "outcome"}),
		EntitiesActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entities_active",
			Help:      "Current number of entities held in the store",
		}),
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method and path",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

// RecordOperationResult counts one service operation outcome. The outcome is
// "success" or an error code such as "NOT_FOUND".
func (m *Metrics) RecordOperationResult(operation, outcome string) {
	m.OperationResults.WithLabelValues(operation, outcome).Inc()
}

// statusRecorder captures the status code written by the wrapped handler so
// the request counter can label by it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// Middleware observes every request into HTTPRequestsTotal and
// HTTPRequestDuration. The path label uses the chi route pattern
// (e.g. /api/v1/entities/{id}) so per-entity URLs do not explode
// the label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := chi.RouteContext(r.Context()).RoutePattern()
		if path == "" {
			path = r.URL.Path
		}

		m.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
