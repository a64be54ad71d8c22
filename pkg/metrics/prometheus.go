package metrics

import (
	"github.com/RuvinSL/seo-auditor/pkg/interfaces"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements metrics collection using Prometheus
type PrometheusCollector struct {
	serviceName string

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Audit metrics
	auditsTotal       *prometheus.CounterVec
	auditDuration     *prometheus.HistogramVec
	pageFetchesTotal  *prometheus.CounterVec
	pageFetchDuration *prometheus.HistogramVec
	pageSpeedTotal    *prometheus.CounterVec
	pageSpeedDuration *prometheus.HistogramVec
}

// NewPrometheusCollector creates a new Prometheus metrics collector
func NewPrometheusCollector(serviceName string) *PrometheusCollector {
	constLabels := prometheus.Labels{"service": serviceName}

	return &PrometheusCollector{
		serviceName: serviceName,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests",
				ConstLabels: constLabels,
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request duration in seconds",
				ConstLabels: constLabels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "http_requests_in_flight",
				Help:        "Number of HTTP requests currently being processed",
				ConstLabels: constLabels,
			},
		),

		auditsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "seo_audits_total",
				Help:        "Total number of audit runs by outcome",
				ConstLabels: constLabels,
			},
			[]string{"status"},
		),

		auditDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "seo_audit_duration_seconds",
				Help:        "Audit run duration in seconds",
				ConstLabels: constLabels,
				Buckets:     []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"status"},
		),

		pageFetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "seo_page_fetches_total",
				Help:        "Total number of page fetches",
				ConstLabels: constLabels,
			},
			[]string{"status"},
		),

		pageFetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "seo_page_fetch_duration_seconds",
				Help:        "Page fetch duration in seconds",
				ConstLabels: constLabels,
				Buckets:     []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15},
			},
			[]string{"status"},
		),

		pageSpeedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "pagespeed_lookups_total",
				Help:        "Total number of PageSpeed lookups",
				ConstLabels: constLabels,
			},
			[]string{"status"},
		),

		pageSpeedDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "pagespeed_lookup_duration_seconds",
				Help:        "PageSpeed lookup duration in seconds",
				ConstLabels: constLabels,
				Buckets:     []float64{0.01, 1, 5, 10, 30, 60},
			},
			[]string{"status"},
		),
	}
}

// GetCollectors returns all Prometheus collectors for registration
func (p *PrometheusCollector) GetCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		p.httpRequestsTotal,
		p.httpRequestDuration,
		p.httpRequestsInFlight,
		p.auditsTotal,
		p.auditDuration,
		p.pageFetchesTotal,
		p.pageFetchDuration,
		p.pageSpeedTotal,
		p.pageSpeedDuration,
	}
}

// RecordRequest records HTTP request metrics
func (p *PrometheusCollector) RecordRequest(method, path string, statusCode int, duration float64) {
	status := statusCodeToString(statusCode)

	p.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	p.httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
}

// RecordAudit records one finished audit run by report status
func (p *PrometheusCollector) RecordAudit(status string, duration float64) {
	p.auditsTotal.WithLabelValues(status).Inc()
	p.auditDuration.WithLabelValues(status).Observe(duration)
}

// RecordPageFetch records one page fetch
func (p *PrometheusCollector) RecordPageFetch(success bool, duration float64) {
	status := "success"
	if !success {
		status = "failure"
	}

	p.pageFetchesTotal.WithLabelValues(status).Inc()
	p.pageFetchDuration.WithLabelValues(status).Observe(duration)
}

// RecordPageSpeed records one PageSpeed lookup (success, failure or cached)
func (p *PrometheusCollector) RecordPageSpeed(status string, duration float64) {
	p.pageSpeedTotal.WithLabelValues(status).Inc()
	p.pageSpeedDuration.WithLabelValues(status).Observe(duration)
}

// IncRequestsInFlight increments the in-flight requests gauge
func (p *PrometheusCollector) IncRequestsInFlight() {
	p.httpRequestsInFlight.Inc()
}

// DecRequestsInFlight decrements the in-flight requests gauge
func (p *PrometheusCollector) DecRequestsInFlight() {
	p.httpRequestsInFlight.Dec()
}

// statusCodeToString converts HTTP status code to string category
func statusCodeToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}

// Collector is the registrable form of the collector
type Collector interface {
	interfaces.MetricsCollector
	GetCollectors() []prometheus.Collector
}

// NopCollector discards all metrics
type NopCollector struct{}

func (NopCollector) RecordRequest(method, path string, statusCode int, duration float64) {}
func (NopCollector) RecordAudit(status string, duration float64)                         {}
func (NopCollector) RecordPageFetch(success bool, duration float64)                      {}
func (NopCollector) RecordPageSpeed(status string, duration float64)                     {}

var (
	_ interfaces.MetricsCollector = (*PrometheusCollector)(nil)
	_ interfaces.MetricsCollector = NopCollector{}
	_ Collector                   = (*PrometheusCollector)(nil)
)
