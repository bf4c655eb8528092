package observability

import (
	"context"

	"github.com/aretw0/blockflow/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records simulation activity as Prometheus metrics.
type Metrics struct {
	Steps       prometheus.Counter
	Invocations *prometheus.CounterVec
	Failures    *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blockflow_steps_total",
			Help: "Total number of simulated time steps",
		}),
		Invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blockflow_block_invocations_total",
				Help: "Total number of completed block invocations",
			},
			[]string{"block"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blockflow_block_failures_total",
				Help: "Total number of failed block invocations",
			},
			[]string{"block"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "blockflow_block_duration_seconds",
				Help:    "Duration of block invocations",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"block"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Steps, m.Invocations, m.Failures, m.Duration)
	}
	return m
}

// Hooks returns lifecycle hooks that update the metrics.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepStart: func(ctx context.Context, e *domain.StepEvent) {
			m.Steps.Inc()
		},
		OnBlockLeave: func(ctx context.Context, e *domain.BlockEvent) {
			m.Invocations.WithLabelValues(e.Block).Inc()
			m.Duration.WithLabelValues(e.Block).Observe(e.Duration.Seconds())
		},
		OnBlockError: func(ctx context.Context, e *domain.BlockEvent) {
			m.Failures.WithLabelValues(e.Block).Inc()
		},
	}
}
