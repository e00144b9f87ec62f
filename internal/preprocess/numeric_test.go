package preprocess

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

const tolerance = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) <= tolerance*math.Max(1, math.Abs(b)) }

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	return lo, hi
}

func TestNormalize_Ranges(t *testing.T) {
	sample := []float64{1, 2, 3, 4, 5}
	ranges := [][2]float64{{0, 1}, {-1, 1}, {0, 10}, {-5, 5}}
	for _, r := range ranges {
		got := Normalize(sample, r[0], r[1])
		lo, hi := minMax(got)
		if !approx(lo, r[0]) || !approx(hi, r[1]) {
			t.Fatalf("Normalize to [%v, %v]: got min %v max %v", r[0], r[1], lo, hi)
		}
		for _, v := range got {
			if v < r[0]-1e-12 || v > r[1]+1e-12 {
				t.Fatalf("value %v escapes [%v, %v]", v, r[0], r[1])
			}
		}
	}
}

func TestNormalize_Exact(t *testing.T) {
	got := Normalize([]float64{1, 2, 3, 4, 5}, 0, 1)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalize_Degenerate(t *testing.T) {
	if got := Normalize([]float64{10, 10, 10}, 0, 1); !reflect.DeepEqual(got, []float64{0, 0, 0}) {
		t.Fatalf("constant input: got %v", got)
	}
	if got := Normalize([]float64{5}, 3, 7); !reflect.DeepEqual(got, []float64{3}) {
		t.Fatalf("single value must map to new_min, got %v", got)
	}
	if got := Normalize(nil, 0, 1); len(got) != 0 {
		t.Fatalf("empty input: got %v", got)
	}
}

func TestStandardize_Properties(t *testing.T) {
	inputs := [][]float64{
		{1, 1, 1},
		{1, 2, 3},
		{0, 5, 10},
		{-1, 0, 1},
		{2, 4, 4, 4, 5, 5, 7, 9},
	}
	for _, in := range inputs {
		got := Standardize(in)
		if len(got) != len(in) {
			t.Fatalf("length %d, want %d", len(got), len(in))
		}
		constant := true
		for _, v := range in {
			if v != in[0] {
				constant = false
			}
		}
		if constant {
			for _, v := range got {
				if v != 0 {
					t.Fatalf("constant input %v must standardize to zeros, got %v", in, got)
				}
			}
			continue
		}
		var mean float64
		for _, v := range got {
			mean += v
		}
		mean /= float64(len(got))
		var variance float64
		for _, v := range got {
			variance += (v - mean) * (v - mean)
		}
		std := math.Sqrt(variance / float64(len(got)))
		if math.Abs(mean) > tolerance {
			t.Fatalf("mean of %v = %v, want 0", got, mean)
		}
		if math.Abs(std-1) > 1e-6 {
			t.Fatalf("population std of %v = %v, want 1", got, std)
		}
	}
}

func TestStandardize_PopulationDivisor(t *testing.T) {
	// mean 5, population std 2
	got := Standardize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if !approx(got[0], -1.5) || !approx(got[7], 2) {
		t.Fatalf("Standardize() = %v", got)
	}
}

func TestStandardize_Empty(t *testing.T) {
	if got := Standardize([]float64{}); len(got) != 0 {
		t.Fatalf("want empty, got %v", got)
	}
}

func TestClip(t *testing.T) {
	cases := []struct {
		in     []float64
		lo, hi float64
		want   []float64
	}{
		{[]float64{-1, 0.5, 2, 3}, 0, 1, []float64{0, 0.5, 1, 1}},
		{[]float64{-5, 0.5, 2, 10}, 0, 2, []float64{0, 0.5, 2, 2}},
		{[]float64{1, 2, 3}, 5, 0, []float64{5, 5, 5}},
		{[]float64{math.NaN(), 0.5}, 0, 1, []float64{1, 0.5}},
		{[]float64{math.NaN()}, 5, 0, []float64{5}},
	}
	for _, c := range cases {
		if got := Clip(c.in, c.lo, c.hi); !reflect.DeepEqual(got, c.want) {
			t.Errorf("Clip(%v, %v, %v) = %v, want %v", c.in, c.lo, c.hi, got, c.want)
		}
	}
}

func TestToIntegers(t *testing.T) {
	cases := []struct {
		name string
		in   []any
		want []int64
	}{
		{"strings", []any{"1", "2.5", "abc", "4"}, []int64{1, 2, 4}},
		{"nil dropped", []any{"1", "2.5", "abc", nil, "4"}, []int64{1, 2, 4}},
		{"truncates toward zero", []any{"-2.7", " 3.9 ", "1e2"}, []int64{-2, 3, 100}},
		{"numbers", []any{int64(7), 7.9, true}, []int64{7, 7, 1}},
		{"non finite dropped", []any{"nan", "inf", "-inf", "5"}, []int64{5}},
		{"empty", []any{}, []int64{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ToIntegers(c.in); !reflect.DeepEqual(got, c.want) {
				t.Fatalf("ToIntegers(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestToIntegers_TypedStrings(t *testing.T) {
	got := ToIntegers([]string{"10", "x", "-0.5"})
	if !reflect.DeepEqual(got, []int64{10, 0}) {
		t.Fatalf("ToIntegers() = %v", got)
	}
}

func TestToIntegersStrict(t *testing.T) {
	got, err := ToIntegersStrict([]string{"1", "2.5"})
	if err != nil || !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Fatalf("ToIntegersStrict() = %v, %v", got, err)
	}
	if _, err := ToIntegersStrict([]string{"1", "abc"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}

func TestLogTransform(t *testing.T) {
	got := LogTransform([]float64{-1, 0, 1, math.E, 100})
	if len(got) != 3 {
		t.Fatalf("want 3 values, got %v", got)
	}
	want := []float64{0, 1, math.Log(100)}
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Fatalf("LogTransform()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if got := LogTransform([]float64{math.NaN(), -3}); len(got) != 0 {
		t.Fatalf("non-positive values must be dropped, got %v", got)
	}
}

func TestLogTransformStrict(t *testing.T) {
	if _, err := LogTransformStrict([]float64{1, 0}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
	got, err := LogTransformStrict([]float64{1, 10})
	if err != nil || len(got) != 2 || got[0] != 0 {
		t.Fatalf("LogTransformStrict() = %v, %v", got, err)
	}
}
