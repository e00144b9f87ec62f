// Package literal reads and writes the list literals the CLI, recipes and the
// wire protocol exchange, e.g. [1, None, 2.5, 'a', [3]].
//
// Parsing walks a YAML flow node tree, so quoting and escapes follow YAML.
// None, nan and inf are recognized as plain words on top of YAML's own null,
// bool and float spellings; every other string must be quoted. Formatting mirrors Python's repr, and every formatted
// value parses back to itself.
package literal

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrSyntax is returned for text that is not a valid literal.
var ErrSyntax = errors.New("invalid input syntax")

// SyntaxError carries the parser's detail for an ErrSyntax failure.
type SyntaxError struct {
	Detail string
}

func (e *SyntaxError) Error() string { return ErrSyntax.Error() + ": " + e.Detail }
func (e *SyntaxError) Unwrap() error { return ErrSyntax }

func syntaxError(format string, args ...any) error {
	return &SyntaxError{Detail: fmt.Sprintf(format, args...)}
}

// Parse decodes text into nil, bool, int64, float64, string, []any or
// map[string]any values.
func Parse(text string) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, syntaxError("%v", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, syntaxError("empty input")
	}
	return decode(doc.Content[0])
}

func decode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		return decode(n.Content[0])
	case yaml.AliasNode:
		return decode(n.Alias)
	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := decode(c)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := decode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[n.Content[i].Value] = v
		}
		return out, nil
	case yaml.ScalarNode:
		return scalar(n)
	default:
		return nil, syntaxError("unsupported node at line %d", n.Line)
	}
}

func scalar(n *yaml.Node) (any, error) {
	if n.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		return n.Value, nil
	}
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, syntaxError("%v", err)
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, syntaxError("%v", err)
		}
		return f, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, syntaxError("%v", err)
		}
		return f, nil
	}
	return word(n)
}

// word maps the plain spellings YAML leaves as strings. Any other unquoted
// word (abc, (1, 2), 2001-12-14) is a syntax error; strings must be quoted.
func word(n *yaml.Node) (any, error) {
	s := n.Value
	if s == "None" {
		return nil, nil
	}
	switch strings.ToLower(s) {
	case "nan", "+nan", "-nan":
		return math.NaN(), nil
	case "inf", "+inf", "infinity", "+infinity":
		return math.Inf(1), nil
	case "-inf", "-infinity":
		return math.Inf(-1), nil
	}
	return nil, syntaxError("unquoted word %q at line %d column %d", s, n.Line, n.Column)
}
