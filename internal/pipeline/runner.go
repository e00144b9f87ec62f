package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"prepkit/internal/literal"
	"prepkit/internal/logging"
	"prepkit/internal/ops"
	"prepkit/internal/preprocess"
	"prepkit/internal/record"
	"prepkit/internal/telemetry"
	"prepkit/internal/transform"
	"prepkit/sink"
	"prepkit/source/kafka"
)

type stage struct {
	name     string
	op       string
	client   transform.Client
	params   ops.Params
	timeout  time.Duration
	attempts int
	backoff  time.Duration
}

type Runner struct {
	source  kafka.Adapter
	stages  []stage
	sinks   []sink.Adapter
	clients []transform.Client

	wg     sync.WaitGroup
	mu     sync.Mutex
	runErr error
}

func NewRunner() *Runner { return &Runner{} }

func (r *Runner) AddSink(s sink.Adapter)    { r.sinks = append(r.sinks, s) }
func (r *Runner) SetSource(s kafka.Adapter) { r.source = s }
func (r *Runner) HasSource() bool           { return r.source != nil }

// AddStage appends an operation applied through cli. attempts counts
// retries after the first call; only transport failures are retried.
func (r *Runner) AddStage(name, op string, cli transform.Client, p ops.Params, timeout time.Duration, attempts int, backoff time.Duration) {
	r.stages = append(r.stages, stage{
		name: name, op: op, client: cli, params: p,
		timeout: timeout, attempts: attempts, backoff: backoff,
	})
}

// Own registers a client for Close.
func (r *Runner) Own(cli transform.Client) { r.clients = append(r.clients, cli) }

// Apply runs every stage in order, feeding each stage's output to the next.
func (r *Runner) Apply(ctx context.Context, input any) (any, error) {
	v := input
	for _, s := range r.stages {
		out, err := s.apply(ctx, v)
		if err != nil {
			return nil, err
		}
		v = out
	}
	return v, nil
}

func (s stage) apply(ctx context.Context, input any) (any, error) {
	var err error
	for attempt := 0; attempt <= s.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("stage %s: %w", s.name, ctx.Err())
			case <-time.After(s.backoff):
			}
			logging.L().Warn("pipeline: retrying stage", "stage", s.name, "attempt", attempt, "err", err)
		}
		var out any
		if out, err = s.call(ctx, input); err == nil {
			return out, nil
		}
		if !transform.Retryable(err) {
			break
		}
	}
	return nil, fmt.Errorf("stage %s: %w", s.name, err)
}

func (s stage) call(ctx context.Context, input any) (any, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.client.Apply(ctx, s.op, input, s.params)
}

// handle is the source EmitFunc. Values that are not literals or that a
// stage rejects are logged and skipped; other failures stop the claim so the
// record is redelivered.
func (r *Runner) handle(ctx context.Context, rec record.Record) error {
	input, err := literal.Parse(string(rec.Value))
	if err == nil {
		var out any
		out, err = r.Apply(ctx, input)
		if err == nil {
			return r.push(rec.WithValue([]byte(literal.Format(out))))
		}
	}
	if errors.Is(err, literal.ErrSyntax) || errors.Is(err, preprocess.ErrInvalidArgument) {
		telemetry.Records.WithLabelValues("rejected").Inc()
		logging.L().Warn("pipeline: record rejected", "checkpoint", rec.Checkpoint.String(), "err", err)
		return nil
	}
	telemetry.Records.WithLabelValues("error").Inc()
	return err
}

func (r *Runner) push(rec record.Record) error {
	for _, s := range r.sinks {
		if err := s.Push(rec); err != nil {
			telemetry.Records.WithLabelValues("error").Inc()
			return err
		}
	}
	telemetry.Records.WithLabelValues("ok").Inc()
	return nil
}

func (r *Runner) Start(ctx context.Context) error {
	if r.source == nil {
		return errors.New("runner: no source configured")
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.source.Run(ctx, r.handle); err != nil && !errors.Is(err, context.Canceled) {
			logging.L().Error("pipeline: source stopped", "err", err)
			r.mu.Lock()
			r.runErr = err
			r.mu.Unlock()
		}
	}()
	return nil
}

// Close stops the source, waits for it to return, then closes sinks and
// clients. It returns the source's terminal error, if any.
func (r *Runner) Close() error {
	var errs []error
	if r.source != nil {
		errs = append(errs, r.source.Close())
	}
	r.wg.Wait()
	for _, s := range r.sinks {
		errs = append(errs, s.Close())
	}
	for _, c := range r.clients {
		errs = append(errs, c.Close())
	}
	r.mu.Lock()
	errs = append(errs, r.runErr)
	r.mu.Unlock()
	return errors.Join(errs...)
}
