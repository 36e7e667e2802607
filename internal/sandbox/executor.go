package sandbox

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/formweave/backend/internal/logging"
	"github.com/formweave/backend/internal/monitoring"
)

// defaultAcquireTimeout bounds how long an invocation waits for a slot
// before it is reported as an infrastructure fault.
const defaultAcquireTimeout = 5 * time.Second

// Executor runs invocations across a bounded set of slots. Slots only cap
// how many isolates exist at once; every invocation still gets a fresh
// VM, never a recycled one, so no state leaks between tenants.
type Executor struct {
	engine  *Engine
	slots   chan struct{}
	size    int
	acquire time.Duration
	log     *logging.Logger
	metrics *monitoring.Metrics

	mu     sync.RWMutex
	closed bool
}

// NewExecutor creates an executor with the given slot count.
func NewExecutor(engine *Engine, size int, log *logging.Logger) *Executor {
	if size <= 0 {
		size = 8
	}
	if log == nil {
		log = logging.NewNop()
	}
	slots := make(chan struct{}, size)
	for i := 0; i < size; i++ {
		slots <- struct{}{}
	}
	return &Executor{
		engine:  engine,
		slots:   slots,
		size:    size,
		acquire: defaultAcquireTimeout,
		log:     log,
	}
}

// WithMetrics attaches a metrics collector.
func (x *Executor) WithMetrics(m *monitoring.Metrics) *Executor {
	x.metrics = m
	return x
}

// Execute acquires a slot and runs the invocation. Saturation and
// shutdown surface as SandboxUnavailable so the workflow engine can
// retry them as infrastructure faults.
func (x *Executor) Execute(ctx context.Context, req Request) Result {
	x.mu.RLock()
	closed := x.closed
	x.mu.RUnlock()
	if closed {
		return failResult(newError(TagUnavailable, "executor is closed"))
	}

	select {
	case <-x.slots:
	default:
		if x.metrics != nil {
			x.metrics.SlotWaits.Inc()
		}
		select {
		case <-x.slots:
		case <-ctx.Done():
			return failResult(newError(TagUnavailable, "no execution slot available"))
		case <-time.After(x.acquire):
			return failResult(newError(TagUnavailable, "no execution slot available"))
		}
	}
	defer func() { x.slots <- struct{}{} }()

	if x.metrics != nil {
		x.metrics.ExecutionsActive.Inc()
		defer x.metrics.ExecutionsActive.Dec()
	}

	id := uuid.NewString()
	x.log.Debug("invocation started", zap.String("invocation_id", id))
	result := x.engine.Execute(ctx, req)
	x.log.Debug("invocation finished",
		zap.String("invocation_id", id),
		zap.Bool("ok", result.OK),
		zap.Int64("duration_ms", result.ExecutionTimeMs),
	)
	return result
}

// Close marks the executor closed. In-flight invocations finish normally.
func (x *Executor) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.closed = true
	return nil
}

// Stats returns executor occupancy.
func (x *Executor) Stats() map[string]interface{} {
	x.mu.RLock()
	defer x.mu.RUnlock()

	return map[string]interface{}{
		"size":      x.size,
		"available": len(x.slots),
		"in_use":    x.size - len(x.slots),
		"closed":    x.closed,
	}
}
