package pipeline

import (
	"fmt"
	"time"

	"prepkit/internal/config"
	"prepkit/internal/ops"
	"prepkit/internal/spec"
	"prepkit/internal/transform"
	"prepkit/sink"
	kafkasink "prepkit/sink/kafka"
	"prepkit/sink/stdout"
	"prepkit/source/kafka"
)

// Compile builds a Runner from the recipe at path. Operation names are
// checked against catalog; step params are overlaid on defaults.
func Compile(path string, catalog *ops.Catalog, defaults ops.Params) (*Runner, error) {
	return CompileWith(path, catalog, defaults, transform.NewInProcessClient(catalog))
}

// CompileWith is Compile with inproc steps applied through local, e.g. the
// CLI's gRPC client under --remote. The runner does not close local.
func CompileWith(path string, catalog *ops.Catalog, defaults ops.Params, local transform.Client) (*Runner, error) {
	r := NewRunner()
	if err := LoadYAML(path, r, catalog, defaults, local); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

func LoadYAML(path string, r *Runner, catalog *ops.Catalog, defaults ops.Params, local transform.Client) error {
	cfg, confPath, err := config.LoadRecipe(path)
	if err != nil {
		return err
	}
	if err := addStages(r, cfg.Steps, catalog, defaults, local); err != nil {
		return err
	}

	switch cfg.Source.Kind {
	case "":
	case "kafka":
		kc, err := config.LoadKafkaConfig(confPath)
		if err != nil {
			return fmt.Errorf("source: %w", err)
		}
		src, err := kafka.NewAdapter(cfg.Source.Driver)
		if err != nil {
			return err
		}
		if err = src.Configure(kc); err != nil {
			return fmt.Errorf("source: %w", err)
		}
		r.SetSource(src)
	default:
		return fmt.Errorf("unsupported source %q", cfg.Source.Kind)
	}

	for _, name := range cfg.Sinks {
		sDrv, err := sink.NewAdapter(name)
		if err != nil {
			return err
		}
		switch name {
		case "stdout":
			c := cfg.SinkConfigs.Stdout
			err = sDrv.Configure(stdout.Config{
				DelayMS:       c.DelayMS,
				PrintCounter:  c.PrintCounter,
				PrintValue:    c.PrintValue,
				ValueMaxBytes: c.ValueMaxBytes,
			})
		case "kafka":
			c := cfg.SinkConfigs.Kafka
			err = sDrv.Configure(kafkasink.Config{Brokers: c.Brokers, Topic: c.Topic, Acks: c.Acks})
		default:
			err = fmt.Errorf("no config block for sink %q", name)
		}
		if err != nil {
			return fmt.Errorf("sink %s: %w", name, err)
		}
		r.AddSink(sDrv)
	}
	return nil
}

func addStages(r *Runner, steps []spec.StepSpec, catalog *ops.Catalog, defaults ops.Params, local transform.Client) error {
	remotes := map[string]transform.Client{}

	for i, st := range steps {
		if st.Name == "" {
			st.Name = fmt.Sprintf("step-%d", i+1)
		}
		op, ok := catalog.Lookup(st.Op)
		if !ok {
			return fmt.Errorf("step %s: %w %q", st.Name, ops.ErrUnknownOperation, st.Op)
		}
		p, err := config.StepParams(st, defaults)
		if err != nil {
			return err
		}

		var cli transform.Client
		switch st.Type {
		case "", "inproc":
			cli = local
		case "grpc":
			if st.Address == "" {
				return fmt.Errorf("step %s: grpc step needs an address", st.Name)
			}
			if cli = remotes[st.Address]; cli == nil {
				g, err := transform.NewGRPCClient(st.Address)
				if err != nil {
					return fmt.Errorf("step %s: dial %s: %w", st.Name, st.Address, err)
				}
				remotes[st.Address] = g
				r.Own(g)
				cli = g
			}
		default:
			return fmt.Errorf("unsupported step type %q for %s", st.Type, st.Name)
		}

		timeout := time.Duration(st.TimeoutMS) * time.Millisecond
		backoff := time.Duration(st.RetryPolicy.BackoffMS) * time.Millisecond
		r.AddStage(st.Name, op.Name, cli, p, timeout, st.RetryPolicy.Attempts, backoff)
	}
	return nil
}
