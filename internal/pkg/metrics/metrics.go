package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
)

// Metrics holds the application collectors on a private registry.
// All methods are safe on a nil receiver.
type Metrics struct {
	registry         *prometheus.Registry
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	rosterOperations *prometheus.CounterVec
	externalCalls    *prometheus.CounterVec
	purgedCodes      prometheus.Counter
}

// New registers the collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kindergarten",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kindergarten",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		rosterOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kindergarten",
			Name:      "roster_operations_total",
			Help:      "Roster operations by kind and outcome.",
		}, []string{"operation", "outcome"}),
		externalCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kindergarten",
			Name:      "external_calls_total",
			Help:      "Calls to the media host, SMS provider and inference API by outcome.",
		}, []string{"provider", "outcome"}),
		purgedCodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kindergarten",
			Name:      "verification_codes_purged_total",
			Help:      "Expired verification codes removed by the purge job.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
		m.rosterOperations,
		m.externalCalls,
		m.purgedCodes,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRequest records one HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveRoster records a roster operation outcome
func (m *Metrics) ObserveRoster(operation string, err error) {
	if m == nil {
		return
	}
	m.rosterOperations.WithLabelValues(operation, Outcome(err)).Inc()
}

// ObserveExternal records a call to an external provider
func (m *Metrics) ObserveExternal(provider string, err error) {
	if m == nil {
		return
	}
	m.externalCalls.WithLabelValues(provider, Outcome(err)).Inc()
}

// AddPurgedCodes records codes removed by the purge job
func (m *Metrics) AddPurgedCodes(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.purgedCodes.Add(float64(n))
}

// Outcome classifies err into a low-cardinality label
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case apperrors.Is(err, apperrors.ErrValidation):
		return "invalid"
	case apperrors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case apperrors.Is(err, apperrors.ErrConflict):
		return "conflict"
	case apperrors.Is(err, apperrors.ErrUpstream):
		return "upstream_error"
	default:
		return "error"
	}
}
