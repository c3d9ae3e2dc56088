package metrics

// BLS is the metric set recorded by package bls. A BLS built from a nil
// registry, or a nil *BLS, records nothing.
type BLS struct {
	// ---- Verification ----

	Verifications  *Counter
	VerifyFailures *Counter
	// VerifyPairs is the number of (message, key) pairs per verification.
	VerifyPairs *Histogram
	// VerifyTime records verification latency in milliseconds, hashing
	// included.
	VerifyTime *Histogram

	// ---- Batches ----

	BatchSize     *Histogram
	BatchInFlight *Gauge

	// ---- Keys ----

	KeysGenerated *Counter
	// PossessionRejected counts public keys refused for a bad proof of
	// possession.
	PossessionRejected *Counter
}

// NewBLS registers the bls.* metrics in r.
func NewBLS(r *Registry) *BLS {
	if r == nil {
		return &BLS{}
	}
	return &BLS{
		Verifications:      r.Counter("bls.verifications"),
		VerifyFailures:     r.Counter("bls.verify_failures"),
		VerifyPairs:        r.Histogram("bls.verify_pairs"),
		VerifyTime:         r.Histogram("bls.verify_ms"),
		BatchSize:          r.Histogram("bls.batch_size"),
		BatchInFlight:      r.Gauge("bls.batch_inflight"),
		KeysGenerated:      r.Counter("bls.keys_generated"),
		PossessionRejected: r.Counter("bls.pop_rejected"),
	}
}

var discardBLS = &BLS{}

// OrDiscard returns m, or a set that records nothing when m is nil.
func (m *BLS) OrDiscard() *BLS {
	if m == nil {
		return discardBLS
	}
	return m
}
