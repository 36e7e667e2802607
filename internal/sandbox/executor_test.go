package sandbox

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestExecutorExecute(t *testing.T) {
	executor := NewExecutor(newTestEngine(), 2, nil)
	defer executor.Close()

	result := executor.Execute(context.Background(), Request{Code: "return 40 + 2;", TimeoutMs: 1000})
	if !result.OK {
		t.Fatalf("Execute() failed: %v", result.Error)
	}
	if result.Output != float64(42) {
		t.Errorf("Execute() output = %v, want 42", result.Output)
	}
}

func TestExecutorConcurrentIsolation(t *testing.T) {
	executor := NewExecutor(newTestEngine(), 4, nil)
	defer executor.Close()

	const invocations = 16
	results := make([]Result, invocations)

	var wg sync.WaitGroup
	for i := 0; i < invocations; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = executor.Execute(context.Background(), Request{
				Code:           `console.log("inv-" + input.id); return input.id;`,
				Input:          map[string]interface{}{"id": i},
				TimeoutMs:      5000,
				ConsoleEnabled: true,
			})
		}(i)
	}
	wg.Wait()

	for i, result := range results {
		if !result.OK {
			t.Fatalf("invocation %d failed: %v", i, result.Error)
		}
		if result.Output != float64(i) {
			t.Errorf("invocation %d output = %v, want %d", i, result.Output, i)
		}
		if len(result.ConsoleLogs) != 1 {
			t.Fatalf("invocation %d captured %d console entries, want 1", i, len(result.ConsoleLogs))
		}
		want := fmt.Sprintf("inv-%d", i)
		if result.ConsoleLogs[0].Args != want {
			t.Errorf("invocation %d console = %q, want %q", i, result.ConsoleLogs[0].Args, want)
		}
	}
}

func TestExecutorBoundsConcurrency(t *testing.T) {
	executor := NewExecutor(newTestEngine(), 1, nil)
	defer executor.Close()

	// Two CPU-bound scripts on a single slot must serialize, and both
	// must still complete.
	code := `
		let start = Date.now();
		while (Date.now() - start < 50) {}
		return "done";
	`

	var wg sync.WaitGroup
	results := make([]Result, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = executor.Execute(context.Background(), Request{Code: code, TimeoutMs: 5000})
		}(i)
	}
	wg.Wait()

	for i, result := range results {
		if !result.OK {
			t.Errorf("invocation %d failed: %v", i, result.Error)
		}
	}
}

func TestExecutorClosed(t *testing.T) {
	executor := NewExecutor(newTestEngine(), 2, nil)
	if err := executor.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	result := executor.Execute(context.Background(), Request{Code: "return 1;", TimeoutMs: 1000})
	if result.OK {
		t.Fatal("Execute() succeeded on closed executor")
	}
	if result.Error.Tag != TagUnavailable {
		t.Errorf("Execute() tag = %s, want %s", result.Error.Tag, TagUnavailable)
	}
}

func TestExecutorStats(t *testing.T) {
	executor := NewExecutor(newTestEngine(), 3, nil)
	defer executor.Close()

	stats := executor.Stats()
	if stats["size"] != 3 {
		t.Errorf("size = %v, want 3", stats["size"])
	}
	if stats["available"] != 3 {
		t.Errorf("available = %v, want 3", stats["available"])
	}
	if stats["in_use"] != 0 {
		t.Errorf("in_use = %v, want 0", stats["in_use"])
	}
	if stats["closed"] != false {
		t.Errorf("closed = %v, want false", stats["closed"])
	}
}
