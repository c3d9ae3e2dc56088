package bls

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/eth2030/aggbls/metrics"
)

// BatchOption configures VerifyBatch.
type BatchOption func(*batchConfig)

type batchConfig struct {
	metrics *metrics.BLS
}

// WithMetrics records batch sizes and work in flight into m. Each item
// records its own verification through its engine.
func WithMetrics(m *metrics.BLS) BatchOption {
	return func(c *batchConfig) { c.metrics = m }
}

// VerifyBatch verifies independent signed items concurrently on up to
// workers goroutines (GOMAXPROCS when workers <= 0). Results are in input
// order. Cancelling ctx stops items that have not started; it returns the
// context's error along with whatever results were produced.
func VerifyBatch[PK, Sig any](ctx context.Context, items []Signed[PK, Sig], workers int, opts ...BatchOption) ([]bool, error) {
	var cfg batchConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	m := cfg.metrics.OrDiscard()
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	m.BatchSize.Observe(float64(len(items)))

	results := make([]bool, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m.BatchInFlight.Inc()
			defer m.BatchInFlight.Dec()
			results[i] = item.Verify()
			return nil
		})
	}
	err := g.Wait()
	logger().Debug("Verified batch", "items", len(items), "workers", workers, "err", err)
	return results, err
}

// AllValid reports whether every result is true.
func AllValid(results []bool) bool {
	for _, ok := range results {
		if !ok {
			return false
		}
	}
	return true
}
