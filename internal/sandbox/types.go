package sandbox

import (
	"time"

	"github.com/formweave/backend/internal/helpers"
)

// Config defines per-engine execution limits.
type Config struct {
	DefaultTimeout time.Duration // Applied when a request carries no timeout
	MaxTimeout     time.Duration // Hard cap on requested timeouts
	MaxMemoryMB    int64         // Heap growth budget per invocation
	MaxCallStack   int           // goja call stack depth cap
}

// DefaultConfig returns safe default limits.
func DefaultConfig() Config {
	return Config{
		DefaultTimeout: 5 * time.Second,
		MaxTimeout:     30 * time.Second,
		MaxMemoryMB:    64,
		MaxCallStack:   1024,
	}
}

// Request describes a single script invocation.
type Request struct {
	// Code is the body of the JS Transform block. It is compiled as a
	// function body, so plain `return expr;` works.
	Code string `json:"code"`

	// Input is the JSON-representable value the script receives as its
	// first parameter. Deep-copied before it crosses the boundary.
	Input interface{} `json:"input"`

	// Context is the read-only execution metadata attached by the
	// workflow runner. The engine treats it as an opaque JSON value.
	Context interface{} `json:"context"`

	// TimeoutMs bounds wall-clock execution. Zero means the engine
	// default.
	TimeoutMs int `json:"timeoutMs"`

	// ConsoleEnabled controls whether console output is captured. When
	// false, console calls are no-ops and ConsoleLogs stays empty.
	ConsoleEnabled bool `json:"consoleEnabled"`

	// Helpers overrides the process-wide helper library. Nil means the
	// engine's library.
	Helpers *helpers.Library `json:"-"`
}

// BlockContext is the execution metadata shape produced by the workflow
// runner. Callers may pass it as Request.Context; the engine never
// inspects or mutates it.
type BlockContext struct {
	WorkflowID string                 `json:"workflowId"`
	RunID      string                 `json:"runId"`
	Phase      string                 `json:"phase"`
	SectionID  string                 `json:"sectionId,omitempty"`
	Answers    map[string]interface{} `json:"answers,omitempty"`
}

// LogEntry is one captured console call.
type LogEntry struct {
	Level string `json:"level"` // log, warn, error
	Args  string `json:"args"`  // serialized arguments, space-separated
}

// Result is the outcome of one invocation. Failures are data, never
// escaping exceptions: OK is false and Error carries the classified tag.
type Result struct {
	OK              bool        `json:"ok"`
	Output          interface{} `json:"output,omitempty"`
	ExecutionTimeMs int64       `json:"executionTimeMs"`
	Error           *Error      `json:"error,omitempty"`
	ConsoleLogs     []LogEntry  `json:"consoleLogs"`
}
