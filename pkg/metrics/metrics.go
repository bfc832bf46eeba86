// Package metrics exposes Prometheus instrumentation for the HTTP layer and
// for quote lifecycle events.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "quotation"

// Export formats recorded by ExportRendered.
const (
	ExportPDF  = "pdf"
	ExportXLSX = "xlsx"
)

// Metrics holds every collector of the process. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	quotes       *prometheus.CounterVec
	recalcs      prometheus.Counter
	exports      *prometheus.CounterVec
	conflicts    prometheus.Counter
}

// New registers the collectors on a fresh registry.
func New(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "HTTP requests by method, route and status code.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request latency by method and route.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "quotes_total",
			Help:        "Quote lifecycle events by action.",
			ConstLabels: constLabels,
		}, []string{"action"}),
		recalcs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "quote_recalculations_total",
			Help:        "Times quote totals were recomputed.",
			ConstLabels: constLabels,
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "exports_total",
			Help:        "Rendered documents by format.",
			ConstLabels: constLabels,
		}, []string{"format"}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "quote_number_conflicts_total",
			Help:        "Quote inserts rejected by the unique number constraint.",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.quotes,
		m.recalcs,
		m.exports,
		m.conflicts,
	)

	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// QuoteEvent counts a quote lifecycle action such as "created" or "deleted".
func (m *Metrics) QuoteEvent(action string) {
	if m == nil {
		return
	}
	m.quotes.WithLabelValues(action).Inc()
}

// TotalsRecalculated counts one recomputation of a quote's totals.
func (m *Metrics) TotalsRecalculated() {
	if m == nil {
		return
	}
	m.recalcs.Inc()
}

// ExportRendered counts one generated document.
func (m *Metrics) ExportRendered(format string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format).Inc()
}

// NumberConflict counts a rejected duplicate quote number.
func (m *Metrics) NumberConflict() {
	if m == nil {
		return
	}
	m.conflicts.Inc()
}
