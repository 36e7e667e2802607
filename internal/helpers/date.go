package helpers

import (
	"fmt"
	"strings"
	"time"
)

// Accepted input layouts for date values crossing the sandbox boundary.
// Dates travel as strings; RFC 3339 is the canonical form.
var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Display-format tokens mapped onto Go reference-time layouts.
var formatTokens = [][2]string{
	{"YYYY", "2006"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"ss", "05"},
}

// dateNamespace builds the date helpers. All values in and out are
// ISO-8601 strings; malformed input surfaces as a script-visible error.
func dateNamespace() Namespace {
	return Namespace{
		"parse": func(args []interface{}) (interface{}, error) {
			if err := argCount("date.parse", args, 1); err != nil {
				return nil, err
			}
			s, err := toString("date.parse", args[0])
			if err != nil {
				return nil, err
			}
			t, err := parseDate("date.parse", s)
			if err != nil {
				return nil, err
			}
			return t.UTC().Format(time.RFC3339), nil
		},
		"format": func(args []interface{}) (interface{}, error) {
			if err := argCount("date.format", args, 2); err != nil {
				return nil, err
			}
			s, err := toString("date.format", args[0])
			if err != nil {
				return nil, err
			}
			pattern, err := toString("date.format pattern", args[1])
			if err != nil {
				return nil, err
			}
			t, err := parseDate("date.format", s)
			if err != nil {
				return nil, err
			}
			return t.Format(toGoLayout(pattern)), nil
		},
		"diff": func(args []interface{}) (interface{}, error) {
			if err := argRange("date.diff", args, 2, 3); err != nil {
				return nil, err
			}
			a, err := toString("date.diff", args[0])
			if err != nil {
				return nil, err
			}
			b, err := toString("date.diff", args[1])
			if err != nil {
				return nil, err
			}
			unit := "days"
			if len(args) == 3 {
				unit, err = toString("date.diff unit", args[2])
				if err != nil {
					return nil, err
				}
			}
			ta, err := parseDate("date.diff", a)
			if err != nil {
				return nil, err
			}
			tb, err := parseDate("date.diff", b)
			if err != nil {
				return nil, err
			}
			d := ta.Sub(tb)
			switch unit {
			case "days":
				return d.Hours() / 24, nil
			case "hours":
				return d.Hours(), nil
			case "minutes":
				return d.Minutes(), nil
			case "seconds":
				return d.Seconds(), nil
			case "ms":
				return float64(d.Milliseconds()), nil
			}
			return nil, fmt.Errorf("date.diff unknown unit %q", unit)
		},
		"addDays": func(args []interface{}) (interface{}, error) {
			if err := argCount("date.addDays", args, 2); err != nil {
				return nil, err
			}
			s, err := toString("date.addDays", args[0])
			if err != nil {
				return nil, err
			}
			n, err := toNumber("date.addDays days", args[1])
			if err != nil {
				return nil, err
			}
			t, err := parseDate("date.addDays", s)
			if err != nil {
				return nil, err
			}
			return t.AddDate(0, 0, int(n)).UTC().Format(time.RFC3339), nil
		},
		"dayOfWeek": func(args []interface{}) (interface{}, error) {
			if err := argCount("date.dayOfWeek", args, 1); err != nil {
				return nil, err
			}
			s, err := toString("date.dayOfWeek", args[0])
			if err != nil {
				return nil, err
			}
			t, err := parseDate("date.dayOfWeek", s)
			if err != nil {
				return nil, err
			}
			return t.Weekday().String(), nil
		},
	}
}

// parseDate tries the accepted layouts in order.
func parseDate(name, s string) (time.Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: unrecognized date %q", name, s)
}

// toGoLayout translates display tokens (YYYY-MM-DD) to a Go layout.
func toGoLayout(pattern string) string {
	layout := pattern
	for _, tok := range formatTokens {
		layout = strings.ReplaceAll(layout, tok[0], tok[1])
	}
	return layout
}
