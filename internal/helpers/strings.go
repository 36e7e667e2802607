package helpers

import (
	"strings"
	"unicode/utf8"
)

// stringNamespace builds the string helpers.
func stringNamespace() Namespace {
	return Namespace{
		"upper": func(args []interface{}) (interface{}, error) {
			if err := argCount("string.upper", args, 1); err != nil {
				return nil, err
			}
			s, err := toString("string.upper", args[0])
			if err != nil {
				return nil, err
			}
			return strings.ToUpper(s), nil
		},
		"lower": func(args []interface{}) (interface{}, error) {
			if err := argCount("string.lower", args, 1); err != nil {
				return nil, err
			}
			s, err := toString("string.lower", args[0])
			if err != nil {
				return nil, err
			}
			return strings.ToLower(s), nil
		},
		"trim": func(args []interface{}) (interface{}, error) {
			if err := argCount("string.trim", args, 1); err != nil {
				return nil, err
			}
			s, err := toString("string.trim", args[0])
			if err != nil {
				return nil, err
			}
			return strings.TrimSpace(s), nil
		},
		"capitalize": func(args []interface{}) (interface{}, error) {
			if err := argCount("string.capitalize", args, 1); err != nil {
				return nil, err
			}
			s, err := toString("string.capitalize", args[0])
			if err != nil {
				return nil, err
			}
			if s == "" {
				return "", nil
			}
			r, size := utf8.DecodeRuneInString(s)
			return strings.ToUpper(string(r)) + s[size:], nil
		},
		"split": func(args []interface{}) (interface{}, error) {
			if err := argCount("string.split", args, 2); err != nil {
				return nil, err
			}
			s, err := toString("string.split", args[0])
			if err != nil {
				return nil, err
			}
			sep, err := toString("string.split separator", args[1])
			if err != nil {
				return nil, err
			}
			parts := strings.Split(s, sep)
			out := make([]interface{}, len(parts))
			for i, p := range parts {
				out[i] = p
			}
			return out, nil
		},
		"join": func(args []interface{}) (interface{}, error) {
			if err := argCount("string.join", args, 2); err != nil {
				return nil, err
			}
			arr, ok := args[0].([]interface{})
			if !ok {
				return nil, errExpectedArray("string.join", args[0])
			}
			sep, err := toString("string.join separator", args[1])
			if err != nil {
				return nil, err
			}
			parts := make([]string, len(arr))
			for i, item := range arr {
				s, err := toString("string.join element", item)
				if err != nil {
					return nil, err
				}
				parts[i] = s
			}
			return strings.Join(parts, sep), nil
		},
		"replace": func(args []interface{}) (interface{}, error) {
			if err := argCount("string.replace", args, 3); err != nil {
				return nil, err
			}
			s, err := toString("string.replace", args[0])
			if err != nil {
				return nil, err
			}
			old, err := toString("string.replace old", args[1])
			if err != nil {
				return nil, err
			}
			new, err := toString("string.replace new", args[2])
			if err != nil {
				return nil, err
			}
			return strings.ReplaceAll(s, old, new), nil
		},
		"contains": func(args []interface{}) (interface{}, error) {
			if err := argCount("string.contains", args, 2); err != nil {
				return nil, err
			}
			s, err := toString("string.contains", args[0])
			if err != nil {
				return nil, err
			}
			sub, err := toString("string.contains substring", args[1])
			if err != nil {
				return nil, err
			}
			return strings.Contains(s, sub), nil
		},
		"startsWith": func(args []interface{}) (interface{}, error) {
			if err := argCount("string.startsWith", args, 2); err != nil {
				return nil, err
			}
			s, err := toString("string.startsWith", args[0])
			if err != nil {
				return nil, err
			}
			prefix, err := toString("string.startsWith prefix", args[1])
			if err != nil {
				return nil, err
			}
			return strings.HasPrefix(s, prefix), nil
		},
		"endsWith": func(args []interface{}) (interface{}, error) {
			if err := argCount("string.endsWith", args, 2); err != nil {
				return nil, err
			}
			s, err := toString("string.endsWith", args[0])
			if err != nil {
				return nil, err
			}
			suffix, err := toString("string.endsWith suffix", args[1])
			if err != nil {
				return nil, err
			}
			return strings.HasSuffix(s, suffix), nil
		},
		"padStart": func(args []interface{}) (interface{}, error) {
			return pad("string.padStart", args, true)
		},
		"padEnd": func(args []interface{}) (interface{}, error) {
			return pad("string.padEnd", args, false)
		},
		"length": func(args []interface{}) (interface{}, error) {
			if err := argCount("string.length", args, 1); err != nil {
				return nil, err
			}
			s, err := toString("string.length", args[0])
			if err != nil {
				return nil, err
			}
			return float64(utf8.RuneCountInString(s)), nil
		},
	}
}

// pad implements padStart/padEnd with an optional pad string (default " ").
func pad(name string, args []interface{}, start bool) (interface{}, error) {
	if err := argRange(name, args, 2, 3); err != nil {
		return nil, err
	}
	s, err := toString(name, args[0])
	if err != nil {
		return nil, err
	}
	width, err := toNumber(name+" width", args[1])
	if err != nil {
		return nil, err
	}
	padStr := " "
	if len(args) == 3 {
		padStr, err = toString(name+" pad", args[2])
		if err != nil {
			return nil, err
		}
	}
	if padStr == "" {
		return s, nil
	}
	target := int(width)
	count := utf8.RuneCountInString(s)
	if count >= target {
		return s, nil
	}
	var b strings.Builder
	padRunes := []rune(padStr)
	for i := 0; count+i < target; i++ {
		b.WriteRune(padRunes[i%len(padRunes)])
	}
	if start {
		return b.String() + s, nil
	}
	return s + b.String(), nil
}
