package monitoring

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
	"github.com/turtacn/apiecho/internal/config"
)

// Metrics owns the Prometheus registry and the instruments describing /api traffic.
// All instruments are safe for concurrent use.
type Metrics struct {
	registry *prometheus.Registry

	RequestCount   *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec
	RequestSize    prometheus.Summary
	InProgress     prometheus.Gauge
}

// NewMetrics creates the instruments on a dedicated registry.
func NewMetrics(cfg *config.MetricsConfig) *Metrics {
	reg := prometheus.NewRegistry()
	if cfg != nil && cfg.RuntimeCollectors {
		reg.MustRegister(collectors.NewGoCollector())
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		RequestCount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP Requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		RequestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_latency_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		RequestSize: factory.NewSummary(
			prometheus.SummaryOpts{
				Name: "http_request_size_bytes",
				Help: "HTTP request body size in bytes",
			},
		),
		InProgress: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "Number of HTTP requests currently being handled",
			},
		),
	}
}

// Registry exposes the underlying registry, e.g. to register extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// TrackInProgress increments the in-flight gauge and returns the matching decrement.
// Callers defer the returned func so every exit path releases the slot.
func (m *Metrics) TrackInProgress() func() {
	m.InProgress.Inc()
	return m.InProgress.Dec
}

// CountRequest increments the request counter for one completed request.
func (m *Metrics) CountRequest(method, endpoint string, status int) {
	m.RequestCount.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
}

// ObserveRequest records latency, body size and the request count for one completed request.
func (m *Metrics) ObserveRequest(method, endpoint string, status int, elapsed time.Duration, size int) {
	m.RequestLatency.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
	m.RequestSize.Observe(float64(size))
	m.CountRequest(method, endpoint, status)
}

// Render writes a point-in-time snapshot of every registered metric in the
// Prometheus text exposition format.
func (m *Metrics) Render(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	var buf bytes.Buffer
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return fmt.Errorf("failed to encode metric family %s: %w", mf.GetName(), err)
		}
	}
	_, err = w.Write(buf.Bytes())
	return err
}
