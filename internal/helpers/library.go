package helpers

import "fmt"

// Func is a single helper exposed to sandboxed scripts. Arguments arrive
// already exported from the script's value space; the return value must be
// JSON-representable. A returned error is surfaced to the script as a
// thrown exception, never as a host fault.
type Func func(args []interface{}) (interface{}, error)

// Namespace is a fixed set of helpers grouped under one name.
type Namespace map[string]Func

// Library is the process-wide catalog of helper namespaces. It is built
// once at startup and never mutated afterward; invocations share it by
// reference.
type Library struct {
	namespaces map[string]Namespace
}

// New builds the standard helper catalog.
func New() *Library {
	return &Library{
		namespaces: map[string]Namespace{
			"string": stringNamespace(),
			"math":   mathNamespace(),
			"date":   dateNamespace(),
		},
	}
}

// Namespace returns the helpers registered under name.
func (l *Library) Namespace(name string) (Namespace, bool) {
	ns, ok := l.namespaces[name]
	return ns, ok
}

// Names lists the registered namespace names.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.namespaces))
	for name := range l.namespaces {
		names = append(names, name)
	}
	return names
}

// argCount validates the exact argument count for a helper.
func argCount(name string, args []interface{}, want int) error {
	if len(args) != want {
		return fmt.Errorf("%s expects %d argument(s), got %d", name, want, len(args))
	}
	return nil
}

// argRange validates a min/max argument count for a helper.
func argRange(name string, args []interface{}, min, max int) error {
	if len(args) < min || len(args) > max {
		return fmt.Errorf("%s expects %d to %d arguments, got %d", name, min, max, len(args))
	}
	return nil
}

// errExpectedArray reports a non-array argument.
func errExpectedArray(name string, v interface{}) error {
	return fmt.Errorf("%s expects an array, got %T", name, v)
}

// toString extracts a string argument.
func toString(name string, v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s expects a string, got %T", name, v)
	}
	return s, nil
}

// toNumber extracts a numeric argument with type coercion.
func toNumber(name string, v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	}
	return 0, fmt.Errorf("%s expects a number, got %T", name, v)
}

// toNumbers extracts an array-of-numbers argument with type coercion.
func toNumbers(name string, v interface{}) ([]float64, error) {
	arr, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s expects an array of numbers, got %T", name, v)
	}
	numbers := make([]float64, 0, len(arr))
	for i, item := range arr {
		n, err := toNumber(fmt.Sprintf("%s[%d]", name, i), item)
		if err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}
