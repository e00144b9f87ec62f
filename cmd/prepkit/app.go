package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	flags "github.com/jessevdk/go-flags"

	"prepkit/internal/config"
	"prepkit/internal/literal"
	"prepkit/internal/logging"
	"prepkit/internal/ops"
	"prepkit/internal/transform"
)

// Options defines the global CLI flags.
type Options struct {
	Config   string `long:"config" env:"PREPKIT_CONFIG" value-name:"FILE" description:"YAML config file"`
	LogLevel string `long:"log-level" value-name:"LEVEL" description:"Log level (debug, info, warn, error)"`
	LogJSON  bool   `long:"log-json" description:"Write logs as JSON"`
	Remote   string `long:"remote" value-name:"ADDR" description:"Apply operations on a prepkit server instead of in process"`
}

type app struct {
	opts    Options
	ctx     context.Context
	out     io.Writer
	errOut  io.Writer
	catalog *ops.Catalog
	cfg     config.Config
	client  transform.Client
}

var groups = []struct{ name, description string }{
	{"clean", "Data cleaning functions."},
	{"numeric", "Numerical data processing functions."},
	{"text", "Text processing functions."},
	{"struct", "Data structure manipulation functions."},
}

func newParser(a *app) (*flags.Parser, error) {
	p := flags.NewNamedParser("prepkit", flags.HelpFlag|flags.PassDoubleDash)
	p.LongDescription = "Data preprocessing CLI tool."
	if _, err := p.AddGroup("Application Options", "", &a.opts); err != nil {
		return nil, err
	}

	byGroup := map[string]*flags.Command{}
	for _, g := range groups {
		cmd, err := p.AddCommand(g.name, g.description, g.description, &struct{}{})
		if err != nil {
			return nil, err
		}
		byGroup[g.name] = cmd
	}
	for _, op := range a.catalog.Operations() {
		parent, ok := byGroup[op.Group]
		if !ok {
			return nil, fmt.Errorf("operation %s: unknown group %q", op.Name, op.Group)
		}
		long := op.Summary
		if op.Example != "" {
			long += "\n\nExample: " + op.Example
		}
		cmd, err := parent.AddCommand(op.Command, op.Summary, long, newOperationCommand(a, op))
		if err != nil {
			return nil, err
		}
		cmd.Aliases = op.Aliases
	}

	for _, c := range []struct {
		name, short, long string
		data              any
	}{
		{"run", "Apply every step of a recipe.", "Apply every step of a recipe to VALUES, in order.", &runCmd{app: a}},
		{"serve", "Serve operations over gRPC.", "Serve operations over gRPC and, when the recipe names a source, stream records through it.", &serveCmd{app: a}},
		{"ops", "List operations.", "List the operations the catalog (or the remote server) provides.", &opsCmd{app: a}},
	} {
		if _, err := p.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			return nil, err
		}
	}

	p.CommandHandler = func(cmd flags.Commander, args []string) error {
		if cmd == nil {
			return nil
		}
		if err := a.setup(); err != nil {
			return err
		}
		defer a.close()
		return cmd.Execute(args)
	}
	return p, nil
}

// setup loads configuration, applies flag overrides and picks the client.
func (a *app) setup() error {
	cfg, err := config.Load(a.opts.Config)
	if err != nil {
		return err
	}
	if a.opts.LogLevel != "" {
		cfg.Log.Level = a.opts.LogLevel
	}
	if a.opts.LogJSON {
		cfg.Log.JSON = true
	}
	if a.opts.Remote != "" {
		cfg.Remote.Address = a.opts.Remote
	}
	logging.Configure(logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON, Output: a.errOut})
	a.cfg = cfg

	if cfg.Remote.Address == "" {
		a.client = transform.NewInProcessClient(a.catalog)
		return nil
	}
	cli, err := transform.NewGRPCClient(cfg.Remote.Address)
	if err != nil {
		return fmt.Errorf("remote %s: %w", cfg.Remote.Address, err)
	}
	logging.L().Debug("cli: using remote server", "addr", cfg.Remote.Address)
	a.client = cli
	return nil
}

func (a *app) close() {
	if a.client != nil {
		_ = a.client.Close()
	}
}

// callContext bounds remote calls by remote.timeout_ms.
func (a *app) callContext() (context.Context, context.CancelFunc) {
	if a.cfg.Remote.Address != "" && a.cfg.Remote.TimeoutMS > 0 {
		return context.WithTimeout(a.ctx, time.Duration(a.cfg.Remote.TimeoutMS)*time.Millisecond)
	}
	return context.WithCancel(a.ctx)
}

// print writes text results raw and everything else as a literal.
func (a *app) print(v any) {
	if s, ok := v.(string); ok {
		fmt.Fprintln(a.out, s)
		return
	}
	fmt.Fprintln(a.out, literal.Format(v))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{ctx: ctx, out: stdout, errOut: stderr, catalog: ops.Default()}
	p, err := newParser(a)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if _, err := p.ParseArgs(args); err != nil {
		return report(err, stdout, stderr)
	}
	return 0
}

func report(err error, stdout, stderr io.Writer) int {
	var flagsErr *flags.Error
	var syntaxErr *literal.SyntaxError
	switch {
	case errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp:
		fmt.Fprintln(stdout, flagsErr.Message)
		return 0
	case errors.As(err, &flagsErr):
		fmt.Fprintln(stderr, flagsErr.Message)
		return 2
	case errors.As(err, &syntaxErr):
		fmt.Fprintf(stdout, "Error: %s (%s)\n", literal.ErrSyntax, syntaxErr.Detail)
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}
