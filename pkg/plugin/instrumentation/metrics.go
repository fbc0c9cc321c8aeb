package instrumentation

import (
	"time"

	"github.com/amusasrd/WeatherGetter/pkg/weather"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	requestsActive  prometheus.Gauge
}

// NewMetrics registers the plugin metrics with reg. Every datasource instance
// calls this, so collectors that are already registered are reused.
func NewMetrics(reg prometheus.Registerer, pluginID string) *Metrics {
	return &Metrics{
		requestDuration: register(reg, prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "grafana_plugin",
				Subsystem: pluginID,
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "status"},
		)),
		requestsTotal: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "grafana_plugin",
				Subsystem: pluginID,
				Name:      "requests_total",
				Help:      "Total number of requests.",
			},
			[]string{"operation"},
		)),
		errorsTotal: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "grafana_plugin",
				Subsystem: pluginID,
				Name:      "errors_total",
				Help:      "Total number of errors by weather error kind.",
			},
			[]string{"operation", "error_type"},
		)),
		requestsActive: register(reg, prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "grafana_plugin",
				Subsystem: pluginID,
				Name:      "requests_active",
				Help:      "Current number of active requests.",
			},
		)),
	}
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// RecordRequest records metrics for a request
func (m *Metrics) RecordRequest(operation string, start time.Time, err error) {
	duration := time.Since(start).Seconds()
	status := "success"
	if err != nil {
		status = "error"
		m.errorsTotal.WithLabelValues(operation, weather.KindOf(err).String()).Inc()
	}
	m.requestDuration.WithLabelValues(operation, status).Observe(duration)
	m.requestsTotal.WithLabelValues(operation).Inc()
}

// Begin marks a request as active until the returned func is called.
func (m *Metrics) Begin() func() {
	m.requestsActive.Inc()
	return m.requestsActive.Dec
}
