package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callHelper(t *testing.T, namespace, member string, args ...interface{}) (interface{}, error) {
	t.Helper()
	lib := New()
	ns, ok := lib.Namespace(namespace)
	require.True(t, ok, "namespace %s missing", namespace)
	fn, ok := ns[member]
	require.True(t, ok, "member %s.%s missing", namespace, member)
	return fn(args)
}

func TestStringHelpers(t *testing.T) {
	tests := []struct {
		name   string
		member string
		args   []interface{}
		want   interface{}
	}{
		{name: "upper", member: "upper", args: []interface{}{"ada"}, want: "ADA"},
		{name: "lower", member: "lower", args: []interface{}{"ADA"}, want: "ada"},
		{name: "trim", member: "trim", args: []interface{}{"  x  "}, want: "x"},
		{name: "capitalize", member: "capitalize", args: []interface{}{"lovelace"}, want: "Lovelace"},
		{name: "capitalize empty", member: "capitalize", args: []interface{}{""}, want: ""},
		{name: "replace", member: "replace", args: []interface{}{"a-b-c", "-", "+"}, want: "a+b+c"},
		{name: "contains", member: "contains", args: []interface{}{"workflow", "flow"}, want: true},
		{name: "contains miss", member: "contains", args: []interface{}{"workflow", "xyz"}, want: false},
		{name: "startsWith", member: "startsWith", args: []interface{}{"workflow", "work"}, want: true},
		{name: "endsWith", member: "endsWith", args: []interface{}{"workflow", "flow"}, want: true},
		{name: "join", member: "join", args: []interface{}{[]interface{}{"a", "b"}, ","}, want: "a,b"},
		{name: "padStart", member: "padStart", args: []interface{}{"7", float64(3), "0"}, want: "007"},
		{name: "padStart default pad", member: "padStart", args: []interface{}{"7", float64(2)}, want: " 7"},
		{name: "padEnd", member: "padEnd", args: []interface{}{"ab", float64(4), "xy"}, want: "abxy"},
		{name: "pad already wide enough", member: "padStart", args: []interface{}{"hello", float64(3), "0"}, want: "hello"},
		{name: "length", member: "length", args: []interface{}{"héllo"}, want: float64(5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := callHelper(t, "string", tt.member, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringSplit(t *testing.T) {
	got, err := callHelper(t, "string", "split", "a,b,c", ",")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a", "b", "c"}, got)
}

func TestStringHelperErrors(t *testing.T) {
	tests := []struct {
		name   string
		member string
		args   []interface{}
	}{
		{name: "upper wrong type", member: "upper", args: []interface{}{float64(1)}},
		{name: "upper missing arg", member: "upper", args: nil},
		{name: "split too few args", member: "split", args: []interface{}{"a"}},
		{name: "join non-array", member: "join", args: []interface{}{"a", ","}},
		{name: "join non-string element", member: "join", args: []interface{}{[]interface{}{float64(1)}, ","}},
		{name: "padStart non-numeric width", member: "padStart", args: []interface{}{"a", "wide"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := callHelper(t, "string", tt.member, tt.args...)
			assert.Error(t, err)
		})
	}
}
