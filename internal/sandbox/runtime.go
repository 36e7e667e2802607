package sandbox

import (
	"context"
	"time"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/formweave/backend/internal/helpers"
	"github.com/formweave/backend/internal/logging"
	"github.com/formweave/backend/internal/monitoring"
)

const scriptName = "transform.js"

// Engine compiles and runs JS Transform blocks. Every invocation gets a
// fresh goja VM with its own heap and globals, torn down when the call
// returns; nothing a script binds is observable by any other invocation.
type Engine struct {
	config  Config
	library *helpers.Library
	log     *logging.Logger
	metrics *monitoring.Metrics
}

// New creates an engine. A nil library falls back to the standard
// catalog; a nil logger disables logging.
func New(cfg Config, lib *helpers.Library, log *logging.Logger) *Engine {
	def := DefaultConfig()
	if cfg.DefaultTimeout <= 0 {
		cfg.DefaultTimeout = def.DefaultTimeout
	}
	if cfg.MaxTimeout <= 0 {
		cfg.MaxTimeout = def.MaxTimeout
	}
	if cfg.MaxCallStack <= 0 {
		cfg.MaxCallStack = def.MaxCallStack
	}
	if lib == nil {
		lib = helpers.New()
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Engine{config: cfg, library: lib, log: log}
}

// WithMetrics attaches a metrics collector.
func (e *Engine) WithMetrics(m *monitoring.Metrics) *Engine {
	e.metrics = m
	return e
}

// Execute runs one script invocation. Failures come back as data in the
// Result; this method never panics and never returns an error.
func (e *Engine) Execute(ctx context.Context, req Request) Result {
	start := time.Now()
	sink := newConsoleSink(req.ConsoleEnabled)

	result := e.execute(ctx, req, sink)
	result.ExecutionTimeMs = time.Since(start).Milliseconds()
	result.ConsoleLogs = sink.entries

	outcome := "completed"
	if result.Error != nil {
		outcome = string(result.Error.Tag)
	}
	if e.metrics != nil {
		e.metrics.RecordExecution(outcome, time.Since(start), len(sink.entries))
	}
	e.log.Debug("script execution finished",
		zap.String("outcome", outcome),
		zap.Int64("duration_ms", result.ExecutionTimeMs),
		zap.Int("console_entries", len(sink.entries)),
	)
	return result
}

func (e *Engine) execute(ctx context.Context, req Request, sink *consoleSink) Result {
	input, err := MarshalIn(req.Input)
	if err != nil {
		return failResult(asError(err))
	}
	blockCtx, err := MarshalIn(req.Context)
	if err != nil {
		return failResult(asError(err))
	}

	vm := goja.New()
	vm.SetMaxCallStackSize(e.config.MaxCallStack)

	lib := req.Helpers
	if lib == nil {
		lib = e.library
	}
	helpersObj, err := setupSandbox(vm, lib, sink)
	if err != nil {
		e.log.Error("sandbox setup failed", zap.Error(err))
		return failResult(newError(TagUnavailable, "sandbox initialization failed"))
	}

	ctrl := newController(vm, e.timeoutFor(req), e.config.MaxMemoryMB)
	ctrl.transition(stateCompiling)

	prog, err := compile(req.Code)
	if err != nil {
		ctrl.transition(stateFailed)
		return failResult(newError(TagCompile, err.Error()))
	}

	ctrl.transition(stateRunning)
	ctrl.start(ctx)
	val, err := e.run(vm, prog, input, blockCtx, helpersObj)
	ctrl.stop()

	if err != nil {
		classified := translate(err)
		switch classified.Tag {
		case TagTimeout:
			ctrl.transition(stateTimedOut)
		case TagMemoryLimit:
			ctrl.transition(stateMemoryExceeded)
		default:
			ctrl.transition(stateFailed)
		}
		return failResult(classified)
	}

	ctrl.transition(stateCompleted)

	// undefined and null both normalize to a null output
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return Result{OK: true, Output: nil}
	}
	output, err := MarshalOut(val.Export())
	if err != nil {
		return failResult(asError(err))
	}
	return Result{OK: true, Output: output}
}

// run executes the compiled script. goja reports script-level failures as
// returned errors; a panic reaching here is an engine fault and maps to
// SandboxUnavailable so callers can retry.
func (e *Engine) run(vm *goja.Runtime, prog *goja.Program, input, blockCtx interface{}, helpersObj *goja.Object) (val goja.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("sandbox runtime panic", zap.Any("panic", r))
			val = nil
			err = newError(TagUnavailable, "internal sandbox failure")
		}
	}()

	fnVal, err := vm.RunProgram(prog)
	if err != nil {
		return nil, err
	}
	fn, ok := goja.AssertFunction(fnVal)
	if !ok {
		return nil, newError(TagUnavailable, "compiled script is not callable")
	}
	return fn(goja.Undefined(), vm.ToValue(input), vm.ToValue(blockCtx), helpersObj)
}

// timeoutFor resolves the effective timeout: request value clamped to the
// engine maximum, or the engine default when unset.
func (e *Engine) timeoutFor(req Request) time.Duration {
	if req.TimeoutMs <= 0 {
		return e.config.DefaultTimeout
	}
	timeout := time.Duration(req.TimeoutMs) * time.Millisecond
	if timeout > e.config.MaxTimeout {
		return e.config.MaxTimeout
	}
	return timeout
}

// compile wraps the block body in a function so `return` works at the top
// level and the result is the function's return value.
func compile(code string) (*goja.Program, error) {
	src := "(function(input, context, helpers) {\n" + code + "\n})"
	return goja.Compile(scriptName, src, false)
}

func failResult(err *Error) Result {
	return Result{OK: false, Error: err}
}

func asError(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return newError(TagUnavailable, err.Error())
}
