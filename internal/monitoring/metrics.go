package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the script execution engine.
type Metrics struct {
	// Invocation metrics
	ExecutionsTotal   *prometheus.CounterVec
	ExecutionDuration *prometheus.HistogramVec
	ExecutionsActive  prometheus.Gauge

	// Console metrics
	ConsoleEntries prometheus.Counter

	// Executor metrics
	SlotWaits prometheus.Counter
}

// NewMetrics creates a metrics collector registered on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ExecutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engine_script_executions_total",
				Help: "Total number of script executions by outcome",
			},
			[]string{"outcome"},
		),
		ExecutionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "engine_script_execution_duration_seconds",
				Help:    "Script execution duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"outcome"},
		),
		ExecutionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "engine_script_executions_active",
				Help: "Number of script executions currently running",
			},
		),
		ConsoleEntries: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "engine_script_console_entries_total",
				Help: "Total number of console entries emitted by scripts",
			},
		),
		SlotWaits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "engine_executor_slot_waits_total",
				Help: "Total number of invocations that waited for an executor slot",
			},
		),
	}
}

// RecordExecution records a completed invocation.
func (m *Metrics) RecordExecution(outcome string, duration time.Duration, consoleEntries int) {
	m.ExecutionsTotal.WithLabelValues(outcome).Inc()
	m.ExecutionDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	if consoleEntries > 0 {
		m.ConsoleEntries.Add(float64(consoleEntries))
	}
}
