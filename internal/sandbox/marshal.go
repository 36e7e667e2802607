package sandbox

import (
	"github.com/bytedance/sonic"
)

// MarshalIn deep-copies a host value into the sandbox's value space. The
// copy guarantees no script callback can alias host-owned structures.
// JSON-representable values survive with full fidelity; time.Time becomes
// an ISO-8601 string. Functions, channels, and circular references are
// rejected as MarshallingError.
func MarshalIn(value interface{}) (interface{}, error) {
	return jsonRoundTrip(value)
}

// MarshalOut deep-copies a sandbox value back into the host value space,
// normalized to plain JSON shapes (map[string]interface{}, []interface{},
// float64, string, bool, nil). A script returning a function or a cyclic
// structure yields a MarshallingError.
func MarshalOut(value interface{}) (interface{}, error) {
	return jsonRoundTrip(value)
}

// jsonRoundTrip normalizes through the JSON value space. Both directions
// share it so the round-trip property holds: MarshalOut(MarshalIn(x))
// deep-equals x for every JSON-representable x.
func jsonRoundTrip(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	data, err := sonic.Marshal(value)
	if err != nil {
		return nil, newError(TagMarshalling, "unsupported value: "+err.Error())
	}
	var out interface{}
	if err := sonic.Unmarshal(data, &out); err != nil {
		return nil, newError(TagMarshalling, "value decode failed: "+err.Error())
	}
	return out, nil
}
