// Package metrics exposes Prometheus counters for HTTP traffic and order outcomes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "southern_spoon"

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

func NewServerMetrics(reg prometheus.Registerer) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})

	reg.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

// OrderMetrics counts how order attempts end
type OrderMetrics struct {
	committed   *prometheus.CounterVec
	duplicates  prometheus.Counter
	rejected    *prometheus.CounterVec
	saveFailure prometheus.Counter
}

func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	m := &OrderMetrics{
		committed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_committed_total",
			Help:      "Orders written to the store.",
		}, []string{"override"}),
		duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_duplicate_total",
			Help:      "Submissions stopped by the duplicate-order guard.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_rejected_total",
			Help:      "Submissions rejected by validation.",
		}, []string{"reason"}),
		saveFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_save_failures_total",
			Help:      "Orders the store failed to persist.",
		}),
	}
	reg.MustRegister(m.committed, m.duplicates, m.rejected, m.saveFailure)
	return m
}

func (m *OrderMetrics) Committed(override bool) {
	label := "false"
	if override {
		label = "true"
	}
	m.committed.WithLabelValues(label).Inc()
}

func (m *OrderMetrics) Duplicate()             { m.duplicates.Inc() }
func (m *OrderMetrics) Rejected(reason string) { m.rejected.WithLabelValues(reason).Inc() }
func (m *OrderMetrics) SaveFailed()            { m.saveFailure.Inc() }

// Handler serves the metrics gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
