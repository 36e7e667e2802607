package helpers

import (
	"fmt"
	gomath "math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// mathNamespace builds the math helpers. Aggregations are total over the
// empty sequence where a zero value makes sense (sum, avg); min, max,
// median and stdev of an empty sequence are errors.
func mathNamespace() Namespace {
	return Namespace{
		"sum": func(args []interface{}) (interface{}, error) {
			nums, err := oneNumberArray("math.sum", args)
			if err != nil {
				return nil, err
			}
			return floats.Sum(nums), nil
		},
		"avg": func(args []interface{}) (interface{}, error) {
			nums, err := oneNumberArray("math.avg", args)
			if err != nil {
				return nil, err
			}
			if len(nums) == 0 {
				return float64(0), nil
			}
			return stat.Mean(nums, nil), nil
		},
		"min": func(args []interface{}) (interface{}, error) {
			nums, err := oneNumberArray("math.min", args)
			if err != nil {
				return nil, err
			}
			if len(nums) == 0 {
				return nil, fmt.Errorf("math.min of an empty sequence")
			}
			return floats.Min(nums), nil
		},
		"max": func(args []interface{}) (interface{}, error) {
			nums, err := oneNumberArray("math.max", args)
			if err != nil {
				return nil, err
			}
			if len(nums) == 0 {
				return nil, fmt.Errorf("math.max of an empty sequence")
			}
			return floats.Max(nums), nil
		},
		"median": func(args []interface{}) (interface{}, error) {
			nums, err := oneNumberArray("math.median", args)
			if err != nil {
				return nil, err
			}
			if len(nums) == 0 {
				return nil, fmt.Errorf("math.median of an empty sequence")
			}
			sorted := append([]float64(nil), nums...)
			sort.Float64s(sorted)
			return stat.Quantile(0.5, stat.Empirical, sorted, nil), nil
		},
		"stdev": func(args []interface{}) (interface{}, error) {
			nums, err := oneNumberArray("math.stdev", args)
			if err != nil {
				return nil, err
			}
			if len(nums) < 2 {
				return nil, fmt.Errorf("math.stdev needs at least 2 values")
			}
			return stat.StdDev(nums, nil), nil
		},
		"round": func(args []interface{}) (interface{}, error) {
			if err := argRange("math.round", args, 1, 2); err != nil {
				return nil, err
			}
			x, err := toNumber("math.round", args[0])
			if err != nil {
				return nil, err
			}
			digits := float64(0)
			if len(args) == 2 {
				digits, err = toNumber("math.round digits", args[1])
				if err != nil {
					return nil, err
				}
			}
			scale := gomath.Pow(10, digits)
			return gomath.Round(x*scale) / scale, nil
		},
		"floor": func(args []interface{}) (interface{}, error) {
			return unary("math.floor", args, gomath.Floor)
		},
		"ceil": func(args []interface{}) (interface{}, error) {
			return unary("math.ceil", args, gomath.Ceil)
		},
		"abs": func(args []interface{}) (interface{}, error) {
			return unary("math.abs", args, gomath.Abs)
		},
		"clamp": func(args []interface{}) (interface{}, error) {
			if err := argCount("math.clamp", args, 3); err != nil {
				return nil, err
			}
			x, err := toNumber("math.clamp", args[0])
			if err != nil {
				return nil, err
			}
			lo, err := toNumber("math.clamp lo", args[1])
			if err != nil {
				return nil, err
			}
			hi, err := toNumber("math.clamp hi", args[2])
			if err != nil {
				return nil, err
			}
			if lo > hi {
				return nil, fmt.Errorf("math.clamp lo > hi")
			}
			return gomath.Min(gomath.Max(x, lo), hi), nil
		},
	}
}

// oneNumberArray validates the single array-of-numbers argument shape.
func oneNumberArray(name string, args []interface{}) ([]float64, error) {
	if err := argCount(name, args, 1); err != nil {
		return nil, err
	}
	return toNumbers(name, args[0])
}

// unary applies f to a single numeric argument.
func unary(name string, args []interface{}, f func(float64) float64) (interface{}, error) {
	if err := argCount(name, args, 1); err != nil {
		return nil, err
	}
	x, err := toNumber(name, args[0])
	if err != nil {
		return nil, err
	}
	return f(x), nil
}
