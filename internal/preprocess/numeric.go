package preprocess

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-softwarelab/common/pkg/is"
	"github.com/go-softwarelab/common/pkg/seq"
	"github.com/go-softwarelab/common/pkg/slices"
	"github.com/go-softwarelab/common/pkg/to"
)

var (
	errNotNumeric  = errors.New("not a number")
	errOutOfRange  = errors.New("out of integer range")
	errNonPositive = errors.New("not strictly positive")
)

// Normalize rescales values linearly so the smallest maps to newMin and the
// largest to newMax. When all values are equal every output is newMin.
func Normalize(values []float64, newMin, newMax float64) []float64 {
	if len(values) == 0 {
		return []float64{}
	}
	oldMin, oldMax := values[0], values[0]
	for _, x := range values[1:] {
		oldMin = min(oldMin, x)
		oldMax = max(oldMax, x)
	}
	span := oldMax - oldMin
	if span == 0 {
		return filled(len(values), newMin)
	}
	return slices.Map(values, func(x float64) float64 {
		return newMin + (x-oldMin)*(newMax-newMin)/span
	})
}

// Standardize converts values to z-scores using the population standard
// deviation. A zero deviation yields all zeros.
func Standardize(values []float64) []float64 {
	if len(values) == 0 {
		return []float64{}
	}
	n := float64(len(values))
	var sum float64
	for _, x := range values {
		sum += x
	}
	mean := sum / n
	var squares float64
	for _, x := range values {
		squares += (x - mean) * (x - mean)
	}
	std := math.Sqrt(squares / n)
	if std == 0 {
		return filled(len(values), 0)
	}
	return slices.Map(values, func(x float64) float64 { return (x - mean) / std })
}

// Clip clamps each value into [lo, hi]. With lo > hi every value becomes lo.
// NaN clamps to hi, so the output never holds NaN.
func Clip(values []float64, lo, hi float64) []float64 {
	return slices.Map(values, func(x float64) float64 {
		if math.IsNaN(x) {
			x = hi
		}
		return to.ValueAtLeast(to.ValueAtMost(x, hi), lo)
	})
}

// ToIntegers parses every element as a float and truncates it toward zero.
// Strings are parsed, numbers and booleans converted directly. Elements that
// cannot be converted are dropped.
func ToIntegers[E any](values []E) []int64 {
	out := make([]int64, 0, len(values))
	for _, v := range values {
		if n, err := toInteger(v); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// ToIntegersStrict is ToIntegers that fails on the first element the lenient
// variant would drop.
func ToIntegersStrict[E any](values []E) ([]int64, error) {
	out := make([]int64, 0, len(values))
	for i, v := range values {
		n, err := toInteger(v)
		if err != nil {
			return nil, invalidArgument("to_integers", "element %d: %v", i, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func toInteger(v any) (int64, error) {
	var f float64
	switch x := v.(type) {
	case string:
		parsed, err := to.Float64FromString(strings.TrimSpace(x))
		if err != nil {
			return 0, err
		}
		f = parsed
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return rv.Int(), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			if rv.Uint() > math.MaxInt64 {
				return 0, fmt.Errorf("%d is %w", rv.Uint(), errOutOfRange)
			}
			return int64(rv.Uint()), nil
		case reflect.Float32, reflect.Float64:
			f = rv.Float()
		default:
			return 0, fmt.Errorf("%s is %w", describe(v), errNotNumeric)
		}
	}
	t := math.Trunc(f)
	if math.IsNaN(t) || t < math.MinInt64 || t >= math.MaxInt64 {
		return 0, fmt.Errorf("%v is %w", f, errOutOfRange)
	}
	return int64(t), nil
}

// LogTransform takes the natural log of every strictly positive value and
// drops the rest.
func LogTransform(values []float64) []float64 {
	positive := seq.Filter(seq.FromSlice(values), is.GreaterThan(0.0))
	return seq.ToSlice(seq.Map(positive, math.Log), make([]float64, 0, len(values)))
}

// LogTransformStrict is LogTransform that fails on the first value <= 0.
func LogTransformStrict(values []float64) ([]float64, error) {
	for i, x := range values {
		if !(x > 0) {
			return nil, invalidArgument("log_transform", "element %d: %v is %v", i, x, errNonPositive)
		}
	}
	return slices.Map(values, math.Log), nil
}

func filled(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
