// Package ops binds every preprocess transform to a stable name such as
// "numeric.normalize" so front ends (CLI, recipes, gRPC) can apply them to
// decoded literal values. Apply records per-operation metrics.
package ops

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"time"

	"prepkit/internal/logging"
	"prepkit/internal/preprocess"
	"prepkit/internal/telemetry"
)

var ErrUnknownOperation = errors.New("unknown operation")

// Func applies one transform to a literal value.
type Func func(input any, p Params) (any, error)

type InputKind int

const (
	SequenceInput InputKind = iota
	TextInput
)

type Operation struct {
	Name    string
	Group   string
	Command string
	Aliases []string
	Summary string
	Example string
	Input   InputKind
	// Filters marks operations that silently drop elements.
	Filters bool
	Fn      Func
}

type Catalog struct {
	byName  map[string]Operation
	aliases map[string]string
	order   []string
}

func New(operations ...Operation) *Catalog {
	c := &Catalog{byName: map[string]Operation{}, aliases: map[string]string{}}
	for _, op := range operations {
		c.Register(op)
	}
	return c
}

// Register adds op, replacing any operation of the same name.
func (c *Catalog) Register(op Operation) {
	if op.Name == "" {
		op.Name = op.Group + "." + op.Command
	}
	if _, exists := c.byName[op.Name]; !exists {
		c.order = append(c.order, op.Name)
	}
	c.byName[op.Name] = op
	for _, a := range op.Aliases {
		c.aliases[op.Group+"."+a] = op.Name
	}
}

func (c *Catalog) Lookup(name string) (Operation, bool) {
	if canonical, ok := c.aliases[name]; ok {
		name = canonical
	}
	op, ok := c.byName[name]
	return op, ok
}

// Names lists canonical operation names in sorted order.
func (c *Catalog) Names() []string {
	names := append([]string(nil), c.order...)
	sort.Strings(names)
	return names
}

// Operations lists operations in registration order.
func (c *Catalog) Operations() []Operation {
	out := make([]Operation, 0, len(c.order))
	for _, n := range c.order {
		out = append(out, c.byName[n])
	}
	return out
}

// Apply runs the named operation. Shape errors wrap
// preprocess.ErrInvalidArgument; unknown names wrap ErrUnknownOperation.
func (c *Catalog) Apply(name string, input any, p Params) (any, error) {
	op, ok := c.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownOperation, name)
	}
	start := time.Now()
	out, err := op.Fn(input, p)
	telemetry.OperationSeconds.WithLabelValues(op.Name).Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, preprocess.ErrInvalidArgument):
		telemetry.Operations.WithLabelValues(op.Name, "invalid_argument").Inc()
		return nil, err
	case err != nil:
		telemetry.Operations.WithLabelValues(op.Name, "error").Inc()
		return nil, err
	}
	telemetry.Operations.WithLabelValues(op.Name, "ok").Inc()

	if op.Input == SequenceInput {
		in, outLen := length(input), length(out)
		telemetry.ElementsIn.WithLabelValues(op.Name).Add(float64(in))
		if op.Filters && in > outLen {
			telemetry.ElementsDropped.WithLabelValues(op.Name).Add(float64(in - outLen))
			logging.L().Debug("ops: elements dropped", "op", op.Name, "in", in, "out", outLen)
		}
	}
	return out, nil
}

func length(v any) int {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len()
	default:
		return 0
	}
}
