package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	c := NewCounter("test.counter")
	require.Zero(t, c.Value())
	c.Inc()
	c.Add(9)
	c.Add(-5)
	c.Add(0)
	require.EqualValues(t, 10, c.Value())
	require.Equal(t, "test.counter", c.Name())
}

func TestGauge(t *testing.T) {
	g := NewGauge("test.gauge")
	g.Set(42)
	g.Inc()
	g.Dec()
	g.Dec()
	require.EqualValues(t, 41, g.Value())
	g.Set(-10)
	require.EqualValues(t, -10, g.Value())
}

func TestHistogram(t *testing.T) {
	h := NewHistogram("test.hist")
	require.Equal(t, HistogramSnapshot{}, h.Snapshot())
	require.Zero(t, h.Mean())

	for _, v := range []float64{10, -4, 30} {
		h.Observe(v)
	}
	s := h.Snapshot()
	require.EqualValues(t, 3, s.Count)
	require.Equal(t, 36.0, s.Sum)
	require.Equal(t, -4.0, s.Min)
	require.Equal(t, 30.0, s.Max)
	require.Equal(t, 12.0, s.Mean())
}

func TestTimer(t *testing.T) {
	h := NewHistogram("test.timer")
	timer := NewTimer(h)
	time.Sleep(2 * time.Millisecond)
	d := timer.Stop()
	require.Positive(t, d)
	require.EqualValues(t, 1, h.Count())
	require.GreaterOrEqual(t, h.Snapshot().Min, 2.0)

	require.NotPanics(t, func() { NewTimer(nil).Stop() })
}

func TestRegistryGetOrCreate(t *testing.T) {
	r := NewRegistry()
	require.Same(t, r.Counter("ops"), r.Counter("ops"))
	require.Same(t, r.Gauge("ops"), r.Gauge("ops"))
	require.Same(t, r.Histogram("ops"), r.Histogram("ops"))

	r.Counter("ops").Inc()
	require.Zero(t, r.Gauge("ops").Value())
}

func TestRegistryConcurrentGetOrCreate(t *testing.T) {
	r := NewRegistry()
	const goroutines = 50
	got := make([]*Counter, goroutines)
	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := r.Counter("shared")
			for range 100 {
				c.Inc()
			}
			got[i] = c
		}()
	}
	wg.Wait()
	for _, c := range got {
		require.Same(t, got[0], c)
	}
	require.EqualValues(t, goroutines*100, got[0].Value())
}

func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	r.Counter("c").Add(5)
	r.Gauge("g").Set(42)
	r.Histogram("h").Observe(10)
	r.Histogram("h").Observe(20)

	snap := r.Snapshot()
	require.Equal(t, int64(5), snap["c"])
	require.Equal(t, int64(42), snap["g"])
	require.Equal(t, HistogramSnapshot{Count: 2, Sum: 30, Min: 10, Max: 20}, snap["h"])

	r.Counter("c").Inc()
	require.Equal(t, int64(5), snap["c"])
}

func TestNewBLS(t *testing.T) {
	r := NewRegistry()
	m := NewBLS(r)
	m.Verifications.Inc()
	m.VerifyPairs.Observe(3)

	snap := r.Snapshot()
	for _, name := range []string{
		"bls.verifications",
		"bls.verify_failures",
		"bls.verify_pairs",
		"bls.verify_ms",
		"bls.batch_size",
		"bls.batch_inflight",
		"bls.keys_generated",
		"bls.pop_rejected",
	} {
		require.Contains(t, snap, name)
	}
	require.Equal(t, int64(1), snap["bls.verifications"])

	// Registering twice shares the same metrics.
	require.Same(t, m.Verifications, NewBLS(r).Verifications)
}

func TestNilMetricsDiscard(t *testing.T) {
	var m *BLS
	require.NotPanics(t, func() {
		d := m.OrDiscard()
		d.Verifications.Inc()
		d.VerifyFailures.Add(2)
		d.BatchInFlight.Inc()
		d.BatchInFlight.Dec()
		d.BatchInFlight.Set(4)
		d.VerifyPairs.Observe(1)
		NewTimer(d.VerifyTime).Stop()
		NewBLS(nil).KeysGenerated.Inc()
	})
}
