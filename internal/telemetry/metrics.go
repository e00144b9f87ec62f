package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"prepkit/internal/logging"
)

const namespace = "prepkit"

var (
	Operations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Catalog operations applied, by outcome (ok, invalid_argument, error).",
	}, []string{"operation", "outcome"})

	ElementsIn = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "elements_in_total",
		Help:      "Sequence elements passed to catalog operations.",
	}, []string{"operation"})

	ElementsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "elements_dropped_total",
		Help:      "Sequence elements silently filtered out by catalog operations.",
	}, []string{"operation"})

	OperationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "operation_duration_seconds",
		Help:      "Catalog operation latency.",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
	}, []string{"operation"})

	Records = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_total",
		Help:      "Streamed records handled by the pipeline, by outcome (ok, rejected, error).",
	}, []string{"outcome"})
)

// Expose serves /metrics on port in the background. The returned server is
// shut down by Stop.
func Expose(port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.L().Error("telemetry: metrics server stopped", "port", port, "err", err)
		}
	}()
	return srv
}

func Stop(srv *http.Server) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
