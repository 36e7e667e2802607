package sandbox

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/dop251/goja"

	"github.com/formweave/backend/internal/helpers"
)

// consoleSink buffers console output for one invocation, in emission
// order. Scripts run strictly synchronously on one goroutine, so no
// locking is needed. The buffer is handed to the caller and discarded; it
// never reaches host logs.
type consoleSink struct {
	enabled bool
	entries []LogEntry
}

func newConsoleSink(enabled bool) *consoleSink {
	return &consoleSink{enabled: enabled, entries: []LogEntry{}}
}

func (s *consoleSink) append(level string, args []goja.Value) {
	if !s.enabled {
		return
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = formatConsoleArg(arg.Export())
	}
	s.entries = append(s.entries, LogEntry{Level: level, Args: strings.Join(parts, " ")})
}

// formatConsoleArg serializes one console argument: strings verbatim,
// everything else as JSON.
func formatConsoleArg(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if data, err := sonic.Marshal(v); err == nil {
		return string(data)
	}
	return fmt.Sprintf("%v", v)
}

// setupSandbox prepares a fresh VM: dangerous globals are neutered, the
// helper library is wired in as a frozen capability object, and console
// is bound to the invocation's sink. Returns the helpers object that is
// passed to the script as its third parameter.
func setupSandbox(vm *goja.Runtime, lib *helpers.Library, sink *consoleSink) (*goja.Object, error) {
	// Remove module/process escape hatches
	vm.Set("require", goja.Undefined())
	vm.Set("process", goja.Undefined())
	vm.Set("module", goja.Undefined())
	vm.Set("exports", goja.Undefined())

	// Timers are no-ops: the contract is strictly synchronous
	noop := func(call goja.FunctionCall) goja.Value {
		return goja.Undefined()
	}
	vm.Set("setTimeout", noop)
	vm.Set("setInterval", noop)

	console := buildConsole(vm, sink)
	if err := vm.Set("console", console); err != nil {
		return nil, fmt.Errorf("failed to bind console: %w", err)
	}

	helpersObj, err := buildHelpers(vm, lib, console)
	if err != nil {
		return nil, fmt.Errorf("failed to bind helpers: %w", err)
	}
	return helpersObj, nil
}

// buildHelpers wires the library into the VM as a frozen, read-only
// object tree. Scripts cannot rebind or remove members; unknown member
// access reads undefined and fails as a plain TypeError when called.
func buildHelpers(vm *goja.Runtime, lib *helpers.Library, console *goja.Object) (*goja.Object, error) {
	root := vm.NewObject()

	names := lib.Names()
	sort.Strings(names)
	for _, name := range names {
		ns, _ := lib.Namespace(name)
		obj := vm.NewObject()

		members := make([]string, 0, len(ns))
		for member := range ns {
			members = append(members, member)
		}
		sort.Strings(members)
		for _, member := range members {
			fn := bindHelper(vm, ns[member])
			if err := defineFrozen(obj, member, vm.ToValue(fn)); err != nil {
				return nil, err
			}
		}
		if err := freezeObject(vm, obj); err != nil {
			return nil, err
		}
		if err := defineFrozen(root, name, obj); err != nil {
			return nil, err
		}
	}

	if err := defineFrozen(root, "console", console); err != nil {
		return nil, err
	}
	if err := freezeObject(vm, root); err != nil {
		return nil, err
	}
	return root, nil
}

// bindHelper adapts a library function to a native JS function. Helper
// errors become thrown JS exceptions the script can catch; they are never
// engine faults.
func bindHelper(vm *goja.Runtime, f helpers.Func) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		args := make([]interface{}, len(call.Arguments))
		for i, arg := range call.Arguments {
			args[i] = arg.Export()
		}
		out, err := f(args)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return vm.ToValue(out)
	}
}

// buildConsole binds console.log/warn/error to the invocation sink.
func buildConsole(vm *goja.Runtime, sink *consoleSink) *goja.Object {
	obj := vm.NewObject()
	for _, level := range []string{"log", "warn", "error"} {
		level := level
		fn := func(call goja.FunctionCall) goja.Value {
			sink.append(level, call.Arguments)
			return goja.Undefined()
		}
		obj.DefineDataProperty(level, vm.ToValue(fn), goja.FLAG_FALSE, goja.FLAG_FALSE, goja.FLAG_TRUE)
	}
	return obj
}

func defineFrozen(obj *goja.Object, name string, value goja.Value) error {
	return obj.DefineDataProperty(name, value, goja.FLAG_FALSE, goja.FLAG_FALSE, goja.FLAG_TRUE)
}

// freezeObject applies Object.freeze so scripts cannot extend the
// capability object either.
func freezeObject(vm *goja.Runtime, obj *goja.Object) error {
	objectCtor := vm.Get("Object").ToObject(vm)
	freeze, ok := goja.AssertFunction(objectCtor.Get("freeze"))
	if !ok {
		return fmt.Errorf("Object.freeze unavailable")
	}
	_, err := freeze(goja.Undefined(), obj)
	return err
}
