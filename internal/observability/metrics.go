package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the gateway's Prometheus collectors on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errors          *prometheus.CounterVec
	sources         *prometheus.CounterVec
	fanOutFailures  prometheus.Counter
	cacheLookups    *prometheus.CounterVec
}

// NewMetrics registers all collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "support_gateway",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "support_gateway",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "support_gateway",
			Name:      "http_errors_total",
			Help:      "Error envelopes returned, by route and code.",
		}, []string{"route", "method", "code"}),
		sources: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "support_gateway",
			Name:      "accessor_source_total",
			Help:      "Which strategy produced each accessor result.",
		}, []string{"accessor", "source"}),
		fanOutFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "support_gateway",
			Name:      "partner_fanout_failures_total",
			Help:      "Per-partner campus fetches that failed during fallback.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "support_gateway",
			Name:      "query_cache_lookups_total",
			Help:      "Query cache lookups by kind and result.",
		}, []string{"kind", "result"}),
	}
	m.registry.MustRegister(
		m.requests, m.requestDuration, m.errors, m.sources, m.fanOutFailures, m.cacheLookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordRequest counts a served request.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError counts an error envelope.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(route, method, code).Inc()
}

// RecordSource counts which strategy answered an accessor call.
func (m *Metrics) RecordSource(accessor, source string) {
	if m == nil {
		return
	}
	m.sources.WithLabelValues(accessor, source).Inc()
}

// RecordFanOutFailures adds failed per-partner fetches.
func (m *Metrics) RecordFanOutFailures(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.fanOutFailures.Add(float64(n))
}

// RecordCacheLookup counts a query cache hit or miss.
func (m *Metrics) RecordCacheLookup(kind string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(kind, result).Inc()
}
