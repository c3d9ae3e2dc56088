package metrics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPromName(t *testing.T) {
	require.Equal(t, "aggbls_bls_verify_ms", PromName("bls.verify_ms"))
	require.Equal(t, "aggbls_a_b_c", PromName("a.b-c"))
}

func TestCollector(t *testing.T) {
	r := NewRegistry()
	r.Counter("bls.verifications").Add(3)
	r.Gauge("bls.batch_inflight").Set(2)
	r.Histogram("bls.verify_ms").Observe(1.5)

	pr := NewPrometheusRegistry(r)
	n, err := testutil.GatherAndCount(pr)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	expected := `
# HELP aggbls_bls_verifications_total bls.verifications
# TYPE aggbls_bls_verifications_total counter
aggbls_bls_verifications_total 3
`
	require.NoError(t, testutil.GatherAndCompare(pr, strings.NewReader(expected), "aggbls_bls_verifications_total"))
}

func TestWriteText(t *testing.T) {
	r := NewRegistry()
	r.Histogram("bls.verify_pairs").Observe(4)
	r.Histogram("bls.verify_pairs").Observe(6)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, r))
	out := buf.String()
	require.Contains(t, out, "aggbls_bls_verify_pairs_sum 10")
	require.Contains(t, out, "aggbls_bls_verify_pairs_count 2")
	require.Contains(t, out, "aggbls_bls_verify_pairs_max 6")
}
