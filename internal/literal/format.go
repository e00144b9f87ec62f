package literal

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Format renders v the way Python's repr renders the equivalent value.
func Format(v any) string {
	var b strings.Builder
	write(&b, reflect.ValueOf(v))
	return b.String()
}

func write(b *strings.Builder, rv reflect.Value) {
	switch rv.Kind() {
	case reflect.Invalid:
		b.WriteString("None")
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			b.WriteString("None")
			return
		}
		write(b, rv.Elem())
	case reflect.Bool:
		if rv.Bool() {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		b.WriteString(FormatFloat(rv.Float()))
	case reflect.String:
		b.WriteString(Quote(rv.String()))
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			b.WriteString("[]")
			return
		}
		b.WriteByte('[')
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			write(b, rv.Index(i))
		}
		b.WriteByte(']')
	case reflect.Map:
		keys := rv.MapKeys()
		rendered := make([]string, len(keys))
		byRendered := make(map[string]reflect.Value, len(keys))
		for i, k := range keys {
			rendered[i] = Format(k.Interface())
			byRendered[rendered[i]] = k
		}
		sort.Strings(rendered)
		b.WriteByte('{')
		for i, k := range rendered {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString(": ")
			write(b, rv.MapIndex(byRendered[k]))
		}
		b.WriteByte('}')
	default:
		fmt.Fprint(b, rv.Interface())
	}
}

// FormatFloat renders f with the shortest round-tripping digits, always
// marking it as a float (1.0, 1e+16, nan).
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if f != 0 && (exp < -4 || exp >= 16) {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// Quote renders s as a quoted literal. Single quotes are preferred; strings
// needing escapes use double quotes with backslash escapes.
func Quote(s string) string {
	plain := !strings.ContainsFunc(s, func(r rune) bool {
		return r == '\\' || r == utf8.RuneError || !unicode.IsPrint(r)
	})
	switch {
	case plain && !strings.ContainsRune(s, '\''):
		return "'" + s + "'"
	case plain && !strings.ContainsRune(s, '"'):
		return `"` + s + `"`
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			switch {
			case unicode.IsPrint(r) && r != utf8.RuneError:
				b.WriteRune(r)
			case r < 0x100:
				fmt.Fprintf(&b, `\x%02x`, r)
			case r < 0x10000:
				fmt.Fprintf(&b, `\u%04x`, r)
			default:
				fmt.Fprintf(&b, `\U%08x`, r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
