// Package config provides 12-factor configuration management for the
// Formweave script execution engine.
//
// Configuration is loaded from environment variables with sensible defaults.
//
// Configuration Sections:
//   - Engine: sandbox execution limits (timeout, memory, pool size)
//   - Logging: log level and output format
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("default timeout: %dms\n", cfg.Engine.DefaultTimeoutMs)
//
// Environment Variables:
//   - SANDBOX_TIMEOUT_MS, SANDBOX_MAX_TIMEOUT_MS
//   - SANDBOX_MAX_MEMORY_MB, SANDBOX_MAX_STACK, SANDBOX_POOL_SIZE
//   - LOG_LEVEL, LOG_DEV
package config
