package literal

import (
	"reflect"

	"gopkg.in/yaml.v3"
)

// FromNode decodes an already-parsed YAML node with the same rules as Parse.
// Recipe files use it for literal-valued parameters.
func FromNode(n *yaml.Node) (any, error) {
	if n == nil || n.Kind == 0 {
		return nil, nil
	}
	return decode(n)
}

// Normalize maps values produced by other decoders (koanf, encoding/json,
// structpb) onto the literal value set: every integer kind becomes int64,
// float32 becomes float64, and slices and string-keyed maps are rebuilt
// recursively. Strings are parsed as literals when parse is set.
func Normalize(v any, parse bool) (any, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.(string); ok {
		if !parse {
			return s, nil
		}
		return Parse(s)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > 1<<63-1 {
			return float64(u), nil
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			e, err := Normalize(rv.Index(i).Interface(), false)
			if err != nil {
				return nil, err
			}
			out[i] = e
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, syntaxError("map key type %s", rv.Type().Key())
		}
		out := make(map[string]any, rv.Len())
		it := rv.MapRange()
		for it.Next() {
			e, err := Normalize(it.Value().Interface(), false)
			if err != nil {
				return nil, err
			}
			out[it.Key().String()] = e
		}
		return out, nil
	}
	return nil, syntaxError("unsupported value %T", v)
}
