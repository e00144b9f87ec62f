package preprocess

import (
	"math"
	"reflect"

	"github.com/go-softwarelab/common/pkg/seq"
)

type nanKey struct{}

// RemoveDuplicates keeps the first occurrence of every distinct value and
// preserves input order. Integers and floats holding the same number are
// equal, and all NaNs are one value. Lists and maps cannot be compared and
// are rejected.
func RemoveDuplicates(values []any) ([]any, error) {
	for i, v := range values {
		if v != nil && !reflect.TypeOf(v).Comparable() {
			return nil, invalidArgument("remove_duplicates", "element %d of type %T is not comparable", i, v)
		}
	}
	return seq.ToSlice(seq.UniqBy(seq.FromSlice(values), dedupeKey), make([]any, 0, len(values))), nil
}

// Unique is RemoveDuplicates for a statically comparable element type.
func Unique[E comparable](values []E) []E {
	return seq.ToSlice(seq.Uniq(seq.FromSlice(values)), make([]E, 0, len(values)))
}

func dedupeKey(v any) any {
	f, kind, ok := numberOf(v)
	if !ok {
		return v
	}
	switch {
	case math.IsNaN(f):
		return nanKey{}
	case kind == integerKind && math.Abs(f) > 1<<53:
		// past 2^53 the float key would merge distinct integers
		return v
	default:
		return f
	}
}
