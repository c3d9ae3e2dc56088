// Package metrics holds the counters and timings recorded by aggbls. Counter
// and Gauge are lock-free; Histogram keeps running totals under a mutex.
// There is no process-wide registry: callers create a Registry and hand it
// to whatever should record into it. A nil metric discards its updates.
package metrics

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// ---- Counter ----

// Counter only goes up.
type Counter struct {
	name  string
	value atomic.Int64
}

func NewCounter(name string) *Counter { return &Counter{name: name} }

func (c *Counter) Inc() { c.Add(1) }

// Add increases the counter by n. Non-positive n is ignored.
func (c *Counter) Add(n int64) {
	if c != nil && n > 0 {
		c.value.Add(n)
	}
}

func (c *Counter) Value() int64 { return c.value.Load() }
func (c *Counter) Name() string { return c.name }

// ---- Gauge ----

// Gauge is a value that moves both ways, such as work in flight.
type Gauge struct {
	name  string
	value atomic.Int64
}

func NewGauge(name string) *Gauge { return &Gauge{name: name} }

func (g *Gauge) Set(v int64) {
	if g != nil {
		g.value.Store(v)
	}
}

func (g *Gauge) Inc() { g.add(1) }
func (g *Gauge) Dec() { g.add(-1) }

func (g *Gauge) add(d int64) {
	if g != nil {
		g.value.Add(d)
	}
}

func (g *Gauge) Value() int64 { return g.value.Load() }
func (g *Gauge) Name() string { return g.name }

// ---- Histogram ----

// HistogramSnapshot is a consistent view of a Histogram.
type HistogramSnapshot struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
}

// Mean is Sum/Count, or zero when nothing was observed.
func (s HistogramSnapshot) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Histogram tracks count, sum and extremes of observed values. It keeps no
// buckets.
type Histogram struct {
	name string

	mu   sync.Mutex
	snap HistogramSnapshot
}

func NewHistogram(name string) *Histogram {
	return &Histogram{
		name: name,
		snap: HistogramSnapshot{Min: math.Inf(1), Max: math.Inf(-1)},
	}
}

func (h *Histogram) Observe(v float64) {
	if h == nil {
		return
	}
	h.mu.Lock()
	h.snap.Count++
	h.snap.Sum += v
	h.snap.Min = math.Min(h.snap.Min, v)
	h.snap.Max = math.Max(h.snap.Max, v)
	h.mu.Unlock()
}

// Snapshot returns the current totals. Min and Max are zero for an empty
// histogram.
func (h *Histogram) Snapshot() HistogramSnapshot {
	h.mu.Lock()
	s := h.snap
	h.mu.Unlock()
	if s.Count == 0 {
		s.Min, s.Max = 0, 0
	}
	return s
}

func (h *Histogram) Count() int64  { return h.Snapshot().Count }
func (h *Histogram) Mean() float64 { return h.Snapshot().Mean() }
func (h *Histogram) Name() string  { return h.name }

// ---- Timer ----

// Timer records the time since it was started, in fractional milliseconds,
// into a Histogram.
type Timer struct {
	start time.Time
	hist  *Histogram
}

func NewTimer(h *Histogram) *Timer {
	return &Timer{start: time.Now(), hist: h}
}

// Stop records and returns the elapsed time. A Timer without a histogram
// only measures.
func (t *Timer) Stop() time.Duration {
	d := time.Since(t.start)
	t.hist.Observe(float64(d) / float64(time.Millisecond))
	return d
}
