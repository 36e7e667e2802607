/*
Package monitoring provides Prometheus metrics for the script execution
engine.

# Metrics

- Execution counts and latency histograms, labeled by outcome
- Currently running executions (gauge)
- Console entries emitted by scripts
- Executor slot contention

# Usage

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	// After each invocation
	metrics.RecordExecution("completed", elapsed, len(result.ConsoleLogs))

Metrics are registered on the provided Registerer, never on the global
default registry, so tests can use isolated registries.
*/
package monitoring
