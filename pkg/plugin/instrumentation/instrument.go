package instrumentation

import (
	"context"

	"github.com/grafana/grafana-plugin-sdk-go/backend/log"
	"github.com/grafana/grafana-plugin-sdk-go/backend/tracing"
	"github.com/prometheus/client_golang/prometheus"
)

// Instrumentation holds all instrumentation tools
type Instrumentation struct {
	Logger  *Logger
	Metrics *Metrics
	Tracing *TracingHelper
}

// New creates the instrumentation for one datasource instance. Metrics go to
// reg, spans to the SDK's default tracer.
func New(pluginID string, logger log.Logger, reg prometheus.Registerer) *Instrumentation {
	return &Instrumentation{
		Logger:  NewLogger(logger),
		Metrics: NewMetrics(reg, pluginID),
		Tracing: NewTracingHelper(tracing.DefaultTracer()),
	}
}

// WithContext adds context to logging and tracing
func (i *Instrumentation) WithContext(ctx context.Context) *Instrumentation {
	return &Instrumentation{
		Logger:  i.Logger.FromContext(ctx),
		Metrics: i.Metrics,
		Tracing: i.Tracing,
	}
}
