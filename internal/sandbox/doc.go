/*
Package sandbox executes untrusted, tenant-authored JS Transform blocks
against live workflow run data.

# Overview

Every invocation gets its own isolated goja runtime. The block body is
compiled as a function receiving (input, context, helpers); input and
context are deep copies of the caller's values, and helpers is a frozen
capability object built from the process-wide helper catalog. The runtime
is destroyed on every exit path.

  - Memory limits (heap growth budget plus a capped call stack)
  - CPU limits (preemptive wall-clock timeout via VM interrupt)
  - API restrictions (no filesystem, network, process, or module access)
  - Console capture scoped to the invocation
  - Closed error taxonomy with sanitized messages

# Architecture

 1. Engine: compiles and runs scripts, one fresh VM per call
 2. Controller: lifecycle state machine plus the timeout/memory watchdog
 3. Bridge: frozen helper object and console sink wiring
 4. Marshalling: deep-copy value transfer across the boundary
 5. Executor: bounded-concurrency front, one slot per running isolate

# Security Model

Sandboxed code cannot:
  - Access filesystem or network
  - Reach host objects other than the injected copies and helpers
  - Keep running past the configured timeout, even in a tight loop
  - Observe or affect any other invocation

# Error Contract

Failures are data: Result.OK is false and Result.Error carries one of the
closed tags (CompileError, RuntimeError, TimeoutError, MemoryLimitError,
SandboxUnavailable, MarshallingError). Only SandboxUnavailable is
retryable; messages are sanitized of host paths and stack frames.

# Usage Example

	engine := sandbox.New(sandbox.DefaultConfig(), helpers.New(), logger)
	result := engine.Execute(ctx, sandbox.Request{
		Code:      "return input.amount * 2;",
		Input:     map[string]interface{}{"amount": 21},
		TimeoutMs: 1000,
	})
	if !result.OK {
		log.Warn("block failed", zap.String("tag", string(result.Error.Tag)))
	}
*/
package sandbox
