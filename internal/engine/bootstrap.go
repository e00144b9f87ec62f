package engine

import (
	"context"
	"fmt"

	"prepkit/internal/ops"
	"prepkit/internal/pipeline"
	"prepkit/internal/telemetry"
	"prepkit/internal/transport"
)

type Config struct {
	GRPCPort    int
	MetricsPort int // 0 disables /metrics
	Recipe      string
	Defaults    ops.Params
}

func Bootstrap(ctx context.Context, cfg Config, catalog *ops.Catalog) (*Engine, error) {
	// 1. transport server
	srv, err := transport.StartServer(cfg.GRPCPort, catalog, cfg.Defaults)
	if err != nil {
		return nil, fmt.Errorf("transport: %w", err)
	}

	// 2. pipeline runner, streaming only when the recipe names a source
	var runner *pipeline.Runner
	if cfg.Recipe != "" {
		runner, err = pipeline.Compile(cfg.Recipe, catalog, cfg.Defaults)
		if err != nil {
			srv.Stop()
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		if runner.HasSource() {
			if err := runner.Start(ctx); err != nil {
				srv.Stop()
				return nil, err
			}
		}
	}

	// 3. metrics
	e := &Engine{transport: srv, runner: runner}
	if cfg.MetricsPort > 0 {
		e.metrics = telemetry.Expose(cfg.MetricsPort)
	}
	return e, nil
}
