package metrics

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Namespace prefixes every exported metric name.
const Namespace = "aggbls"

// Collector exposes a Registry to Prometheus. Counters and gauges map
// one-to-one; a Histogram has no buckets, so it is exported as a summary
// without quantiles plus min and max gauges.
type Collector struct {
	reg *Registry
}

var _ prometheus.Collector = (*Collector)(nil)

func NewCollector(reg *Registry) *Collector { return &Collector{reg: reg} }

// Describe sends nothing: the metric set grows at runtime, which makes this
// an unchecked collector.
func (c *Collector) Describe(chan<- *prometheus.Desc) {}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.reg.Each(
		func(m *Counter) {
			ch <- prometheus.MustNewConstMetric(desc(m.Name(), "_total"), prometheus.CounterValue, float64(m.Value()))
		},
		func(m *Gauge) {
			ch <- prometheus.MustNewConstMetric(desc(m.Name(), ""), prometheus.GaugeValue, float64(m.Value()))
		},
		func(m *Histogram) {
			s := m.Snapshot()
			ch <- prometheus.MustNewConstSummary(desc(m.Name(), ""), uint64(s.Count), s.Sum, nil)
			ch <- prometheus.MustNewConstMetric(desc(m.Name(), "_min"), prometheus.GaugeValue, s.Min)
			ch <- prometheus.MustNewConstMetric(desc(m.Name(), "_max"), prometheus.GaugeValue, s.Max)
		},
	)
}

// PromName converts a dotted metric name to Prometheus form, for example
// "bls.verify_ms" to "aggbls_bls_verify_ms".
func PromName(name string) string {
	return Namespace + "_" + strings.NewReplacer(".", "_", "-", "_").Replace(name)
}

func desc(name, suffix string) *prometheus.Desc {
	return prometheus.NewDesc(PromName(name)+suffix, name, nil, nil)
}

// NewPrometheusRegistry returns a Prometheus registry serving reg.
func NewPrometheusRegistry(reg *Registry) *prometheus.Registry {
	pr := prometheus.NewRegistry()
	pr.MustRegister(NewCollector(reg))
	return pr
}

// WriteText writes reg in the Prometheus text exposition format.
func WriteText(w io.Writer, reg *Registry) error {
	families, err := NewPrometheusRegistry(reg).Gather()
	if err != nil {
		return errors.Wrap(err, "metrics: gathering")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrap(err, "metrics: encoding")
		}
	}
	return nil
}
