package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordExecution(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordExecution("completed", 5*time.Millisecond, 2)
	m.RecordExecution("completed", 7*time.Millisecond, 0)
	m.RecordExecution("timeout", 100*time.Millisecond, 0)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ExecutionsTotal.WithLabelValues("completed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ExecutionsTotal.WithLabelValues("timeout")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.ConsoleEntries))
}

func TestMetricsRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.RecordExecution("completed", time.Millisecond, 0)
	m.ExecutionsActive.Inc()
	m.SlotWaits.Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"engine_script_executions_total",
		"engine_script_execution_duration_seconds",
		"engine_script_executions_active",
		"engine_script_console_entries_total",
		"engine_executor_slot_waits_total",
	} {
		assert.True(t, names[want], "metric %s not registered", want)
	}
}
