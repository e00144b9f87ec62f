package preprocess

import "reflect"

type numberKind int

const (
	integerKind numberKind = iota + 1
	floatKind
)

// numberOf widens any Go integer or float to float64. Booleans are not numbers.
func numberOf(v any) (float64, numberKind, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), integerKind, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), integerKind, true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), floatKind, true
	default:
		return 0, 0, false
	}
}

// AsSequence returns v as a []any. Any slice or array is accepted; strings,
// scalars, maps and nil are not sequences.
func AsSequence(op string, v any) ([]any, error) {
	if s, ok := v.([]any); ok {
		return s, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	default:
		return nil, invalidArgument(op, "expected a sequence, got %s", describe(v))
	}
}

// AsNumbers returns v as a []float64. Every element must be an integer or a
// float.
func AsNumbers(op string, v any) ([]float64, error) {
	if s, ok := v.([]float64); ok {
		return s, nil
	}
	items, err := AsSequence(op, v)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(items))
	for i, item := range items {
		f, _, ok := numberOf(item)
		if !ok {
			return nil, invalidArgument(op, "element %d is %s, not a number", i, describe(item))
		}
		out[i] = f
	}
	return out, nil
}

// AsNested returns v as a sequence of sequences.
func AsNested(op string, v any) ([][]any, error) {
	items, err := AsSequence(op, v)
	if err != nil {
		return nil, err
	}
	nested := make([][]any, len(items))
	for i, item := range items {
		inner, err := AsSequence(op, item)
		if err != nil {
			return nil, invalidArgument(op, "element %d is %s, not a sequence", i, describe(item))
		}
		nested[i] = inner
	}
	return nested, nil
}

// AsText returns v as a string.
func AsText(op string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", invalidArgument(op, "expected text, got %s", describe(v))
	}
	return s, nil
}

func describe(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
