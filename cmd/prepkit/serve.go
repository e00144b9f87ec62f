package main

import (
	"fmt"

	"prepkit/internal/engine"
	"prepkit/internal/literal"
	"prepkit/internal/pipeline"
)

type runCmd struct {
	app    *app
	Recipe string    `long:"recipe" value-name:"FILE" required:"yes" description:"Recipe YAML file"`
	Args   valuesArg `positional-args:"yes"`
}

func (c *runCmd) Execute([]string) error {
	input, err := literal.Parse(c.Args.Values)
	if err != nil {
		return err
	}
	r, err := pipeline.CompileWith(c.Recipe, c.app.catalog, c.app.cfg.Defaults, c.app.client)
	if err != nil {
		return err
	}
	defer r.Close()
	ctx, cancel := c.app.callContext()
	defer cancel()
	out, err := r.Apply(ctx, input)
	if err != nil {
		return err
	}
	c.app.print(out)
	return nil
}

type serveCmd struct {
	app         *app
	GRPCPort    *int   `long:"grpc-port" value-name:"N" description:"gRPC listen port (default 7070)"`
	MetricsPort *int   `long:"metrics-port" value-name:"N" description:"Prometheus /metrics port, 0 disables (default 9100)"`
	Recipe      string `long:"recipe" value-name:"FILE" description:"Recipe to stream records through"`
}

func (c *serveCmd) Execute([]string) error {
	srv := c.app.cfg.Server
	if c.GRPCPort != nil {
		srv.GRPCPort = *c.GRPCPort
	}
	if c.MetricsPort != nil {
		srv.MetricsPort = *c.MetricsPort
	}
	if c.Recipe != "" {
		srv.Recipe = c.Recipe
	}
	e, err := engine.Bootstrap(c.app.ctx, engine.Config{
		GRPCPort:    srv.GRPCPort,
		MetricsPort: srv.MetricsPort,
		Recipe:      srv.Recipe,
		Defaults:    c.app.cfg.Defaults,
	}, c.app.catalog)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	return e.Run(c.app.ctx)
}

type opsCmd struct {
	app *app
}

func (c *opsCmd) Execute([]string) error {
	ctx, cancel := c.app.callContext()
	defer cancel()
	names, err := c.app.client.Operations(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		if op, ok := c.app.catalog.Lookup(name); ok {
			fmt.Fprintf(c.app.out, "%-24s %s\n", name, op.Summary)
			continue
		}
		fmt.Fprintln(c.app.out, name)
	}
	return nil
}
