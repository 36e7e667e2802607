package sandbox

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dop251/goja"
)

// state tracks one invocation through its lifecycle:
// Created → Compiling → Running → {Completed, Failed, TimedOut,
// MemoryExceeded}. Terminal states admit no re-entry.
type state int32

const (
	stateCreated state = iota
	stateCompiling
	stateRunning
	stateCompleted
	stateFailed
	stateTimedOut
	stateMemoryExceeded
)

func (s state) String() string {
	switch s {
	case stateCreated:
		return "created"
	case stateCompiling:
		return "compiling"
	case stateRunning:
		return "running"
	case stateCompleted:
		return "completed"
	case stateFailed:
		return "failed"
	case stateTimedOut:
		return "timed_out"
	case stateMemoryExceeded:
		return "memory_exceeded"
	}
	return "unknown"
}

func (s state) terminal() bool {
	return s >= stateCompleted
}

// memCheckInterval is how often the watchdog samples heap growth.
const memCheckInterval = 10 * time.Millisecond

// controller supervises a single invocation. It owns the lifecycle state
// and the watchdog goroutine that preemptively interrupts the VM when the
// wall-clock timeout or the memory ceiling is hit. goja checks the
// interrupt flag inside its dispatch loop, so a tight CPU-bound script is
// terminated without its cooperation.
type controller struct {
	vm       *goja.Runtime
	timeout  time.Duration
	memLimit uint64 // allowed heap growth in bytes, 0 disables the check

	state    atomic.Int32
	done     chan struct{}
	stopOnce sync.Once
}

func newController(vm *goja.Runtime, timeout time.Duration, memLimitMB int64) *controller {
	var limit uint64
	if memLimitMB > 0 {
		limit = uint64(memLimitMB) << 20
	}
	return &controller{
		vm:       vm,
		timeout:  timeout,
		memLimit: limit,
		done:     make(chan struct{}),
	}
}

// transition advances the state machine. Moves out of a terminal state or
// backward are rejected.
func (c *controller) transition(next state) bool {
	for {
		cur := state(c.state.Load())
		if cur.terminal() || next <= cur {
			return false
		}
		if c.state.CompareAndSwap(int32(cur), int32(next)) {
			return true
		}
	}
}

func (c *controller) current() state {
	return state(c.state.Load())
}

// start launches the watchdog. The caller must invoke stop exactly once
// after the script returns, on every path.
func (c *controller) start(ctx context.Context) {
	baseline := heapAlloc()
	timer := time.NewTimer(c.timeout)
	ticker := time.NewTicker(memCheckInterval)

	go func() {
		defer timer.Stop()
		defer ticker.Stop()
		for {
			select {
			case <-timer.C:
				c.transition(stateTimedOut)
				c.vm.Interrupt(interruptTimeout)
				return
			case <-ctx.Done():
				c.transition(stateTimedOut)
				c.vm.Interrupt(interruptCanceled)
				return
			case <-ticker.C:
				if c.memLimit > 0 && heapAlloc() > baseline+c.memLimit {
					c.transition(stateMemoryExceeded)
					c.vm.Interrupt(interruptMemory)
					return
				}
			case <-c.done:
				return
			}
		}
	}()
}

// stop shuts the watchdog down. Safe to call more than once.
func (c *controller) stop() {
	c.stopOnce.Do(func() {
		close(c.done)
	})
}

// heapAlloc samples the live heap. The ceiling is enforced against heap
// growth relative to the invocation baseline; goja offers no per-VM hard
// heap cap, so concurrent allocation-heavy invocations may be attributed
// to whichever one trips the budget first.
func heapAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapAlloc
}
