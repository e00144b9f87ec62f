package engine

import (
	"context"
	"errors"
	"net/http"

	"prepkit/internal/logging"
	"prepkit/internal/pipeline"
	"prepkit/internal/telemetry"
	"prepkit/internal/transport"
)

type Engine struct {
	transport *transport.Server
	runner    *pipeline.Runner
	metrics   *http.Server
}

// Run serves until ctx is done or the server fails, then stops the server,
// the pipeline and the metrics endpoint in that order. It returns only after
// the pipeline has closed its source and flushed its sinks.
func (e *Engine) Run(ctx context.Context) error {
	served := make(chan error, 1)
	go func() { served <- e.transport.Serve() }()

	var serveErr error
	select {
	case <-ctx.Done():
		e.transport.Stop()
		serveErr = <-served
	case serveErr = <-served:
		e.transport.Stop()
	}

	var closeErr error
	if e.runner != nil {
		if closeErr = e.runner.Close(); closeErr != nil {
			logging.L().Warn("engine: pipeline closed with error", "err", closeErr)
		}
	}
	telemetry.Stop(e.metrics)
	return errors.Join(serveErr, closeErr)
}
