package preprocess

import (
	"math"

	"github.com/go-softwarelab/common/pkg/seq"
	"github.com/go-softwarelab/common/pkg/slices"
)

// IsMissing reports whether v is a missing marker: nil, the empty string or NaN.
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	default:
		return false
	}
}

func isPresent(v any) bool { return !IsMissing(v) }

// RemoveMissing drops missing markers and keeps the order of the rest.
func RemoveMissing(values []any) []any {
	return seq.ToSlice(seq.Filter(seq.FromSlice(values), isPresent), make([]any, 0, len(values)))
}

// FillMissing replaces every missing marker with fill.
func FillMissing(values []any, fill any) []any {
	return slices.Map(values, func(v any) any {
		if IsMissing(v) {
			return fill
		}
		return v
	})
}
