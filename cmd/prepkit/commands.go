package main

import (
	"strings"

	flags "github.com/jessevdk/go-flags"

	"prepkit/internal/literal"
	"prepkit/internal/ops"
)

// operation applies one catalog operation on behalf of a command.
type operation struct {
	app *app
	op  ops.Operation
}

func (o operation) apply(input any, set func(*ops.Params)) error {
	p := o.app.cfg.Defaults
	if set != nil {
		set(&p)
	}
	ctx, cancel := o.app.callContext()
	defer cancel()
	out, err := o.app.client.Apply(ctx, o.op.Name, input, p)
	if err != nil {
		return err
	}
	o.app.print(out)
	return nil
}

func (o operation) applyValues(text string, set func(*ops.Params)) error {
	input, err := literal.Parse(text)
	if err != nil {
		return err
	}
	return o.apply(input, set)
}

type valuesArg struct {
	Values string `positional-arg-name:"VALUES" required:"yes"`
}

type textArg struct {
	Text string `positional-arg-name:"TEXT" required:"yes"`
}

type valuesCmd struct {
	run  operation
	Args valuesArg `positional-args:"yes"`
}

func (c *valuesCmd) Execute([]string) error { return c.run.applyValues(c.Args.Values, nil) }

type fillCmd struct {
	run       operation
	FillValue *string   `long:"fill-value" value-name:"V" description:"Value to fill missing entries (literal, default 0)"`
	Args      valuesArg `positional-args:"yes"`
}

func (c *fillCmd) Execute([]string) error {
	var fill any
	if c.FillValue != nil {
		v, err := literal.Parse(*c.FillValue)
		if err != nil {
			return err
		}
		fill = v
	}
	return c.run.applyValues(c.Args.Values, func(p *ops.Params) {
		if c.FillValue != nil {
			p.Fill = fill
		}
	})
}

// rangeCmd serves normalize (target range) and clip (bounds).
type rangeCmd struct {
	run    operation
	bounds bool
	MinVal *float64  `long:"min-val" value-name:"F" description:"Lower bound (default 0)"`
	MaxVal *float64  `long:"max-val" value-name:"F" description:"Upper bound (default 1)"`
	Args   valuesArg `positional-args:"yes"`
}

func (c *rangeCmd) Execute([]string) error {
	return c.run.applyValues(c.Args.Values, func(p *ops.Params) {
		lo, hi := &p.NewMin, &p.NewMax
		if c.bounds {
			lo, hi = &p.ClipMin, &p.ClipMax
		}
		if c.MinVal != nil {
			*lo = *c.MinVal
		}
		if c.MaxVal != nil {
			*hi = *c.MaxVal
		}
	})
}

type strictCmd struct {
	run    operation
	Strict bool      `long:"strict" description:"Fail on values that would be dropped"`
	Args   valuesArg `positional-args:"yes"`
}

func (c *strictCmd) Execute([]string) error {
	return c.run.applyValues(c.Args.Values, func(p *ops.Params) {
		p.Strict = p.Strict || c.Strict
	})
}

type textCmd struct {
	run  operation
	Args textArg `positional-args:"yes"`
}

func (c *textCmd) Execute([]string) error { return c.run.apply(c.Args.Text, nil) }

type stopwordsCmd struct {
	run       operation
	Stopwords *string `long:"stopwords" value-name:"WORDS" description:"Comma-separated list of stopwords to remove"`
	Args      textArg `positional-args:"yes"`
}

func (c *stopwordsCmd) Execute([]string) error {
	return c.run.apply(c.Args.Text, func(p *ops.Params) {
		if c.Stopwords != nil {
			p.Stopwords = splitWords(*c.Stopwords)
		}
	})
}

func splitWords(s string) []string {
	if s == "" {
		return nil
	}
	words := strings.Split(s, ",")
	for i, w := range words {
		words[i] = strings.TrimSpace(w)
	}
	return words
}

type shuffleCmd struct {
	run  operation
	Seed *int64    `long:"seed" value-name:"N" description:"Seed for reproducible shuffling"`
	Args valuesArg `positional-args:"yes"`
}

func (c *shuffleCmd) Execute([]string) error {
	return c.run.applyValues(c.Args.Values, func(p *ops.Params) {
		if c.Seed != nil {
			p.Seed = c.Seed
		}
	})
}

func newOperationCommand(a *app, op ops.Operation) flags.Commander {
	run := operation{app: a, op: op}
	switch op.Name {
	case "clean.fill-missing":
		return &fillCmd{run: run}
	case "numeric.normalize":
		return &rangeCmd{run: run}
	case "numeric.clip":
		return &rangeCmd{run: run, bounds: true}
	case "numeric.to-integers", "numeric.log-transform":
		return &strictCmd{run: run}
	case "text.remove-stopwords":
		return &stopwordsCmd{run: run}
	case "struct.shuffle":
		return &shuffleCmd{run: run}
	}
	if op.Input == ops.TextInput {
		return &textCmd{run: run}
	}
	return &valuesCmd{run: run}
}
