package metrics

import "sync"

// Registry is a get-or-create store of named metrics. A name is unique per
// metric kind; a counter and a histogram may share one.
type Registry struct {
	mu         sync.RWMutex
	counters   map[string]*Counter
	gauges     map[string]*Gauge
	histograms map[string]*Histogram
}

func NewRegistry() *Registry {
	return &Registry{
		counters:   make(map[string]*Counter),
		gauges:     make(map[string]*Gauge),
		histograms: make(map[string]*Histogram),
	}
}

// lookup returns m[name], creating it with mk under the write lock when the
// read-locked fast path misses.
func lookup[M any](r *Registry, m map[string]*M, name string, mk func(string) *M) *M {
	r.mu.RLock()
	v, ok := m[name]
	r.mu.RUnlock()
	if ok {
		return v
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok = m[name]; ok {
		return v
	}
	v = mk(name)
	m[name] = v
	return v
}

func (r *Registry) Counter(name string) *Counter {
	return lookup(r, r.counters, name, NewCounter)
}

func (r *Registry) Gauge(name string) *Gauge {
	return lookup(r, r.gauges, name, NewGauge)
}

func (r *Registry) Histogram(name string) *Histogram {
	return lookup(r, r.histograms, name, NewHistogram)
}

// Each calls the matching callback for every registered metric. Callbacks
// run under the registry's read lock and must not register new metrics.
func (r *Registry) Each(counter func(*Counter), gauge func(*Gauge), histogram func(*Histogram)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.counters {
		counter(c)
	}
	for _, g := range r.gauges {
		gauge(g)
	}
	for _, h := range r.histograms {
		histogram(h)
	}
}

// Snapshot copies every value in the registry: int64 for counters and
// gauges, HistogramSnapshot for histograms.
func (r *Registry) Snapshot() map[string]any {
	snap := make(map[string]any)
	r.Each(
		func(c *Counter) { snap[c.Name()] = c.Value() },
		func(g *Gauge) { snap[g.Name()] = g.Value() },
		func(h *Histogram) { snap[h.Name()] = h.Snapshot() },
	)
	return snap
}
