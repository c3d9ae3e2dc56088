package bls

import (
	"iter"
	"sync/atomic"

	"github.com/eth2030/aggbls/crypto/pairing"
	"github.com/eth2030/aggbls/log"
	"github.com/eth2030/aggbls/metrics"
)

// logger follows log.SetDefault, so a command can pick the level after this
// package is initialized.
func logger() *log.Logger { return log.Default().Module("bls") }

// Signed is anything carrying a signature over (message, public key) pairs:
// a single signed message, an aggregate over distinct messages, or a caller's
// own batching structure.
type Signed[PK, Sig any] interface {
	// Signature returns the (possibly aggregated) signature.
	Signature() Sig
	// MessagesAndPublicKeys yields every signed pair. Implementations may
	// return a sequence that can be traversed only once.
	MessagesAndPublicKeys() iter.Seq2[Message, PK]
	// Verify reports whether Signature is valid for the yielded pairs.
	// VerifySimple is the usual implementation.
	Verify() bool
}

// OneShot wraps seq so that it may be ranged over once. A second traversal
// panics with ErrSequenceConsumed, including one racing from another
// goroutine.
func OneShot[K, V any](seq iter.Seq2[K, V]) iter.Seq2[K, V] {
	var used atomic.Bool
	return func(yield func(K, V) bool) {
		if used.Swap(true) {
			panic(ErrSequenceConsumed)
		}
		seq(yield)
	}
}

// VerifySimple hashes every message of s onto the signature group and checks
// the aggregate signature with one multi-pairing. It applies no policy to
// the pairs; duplicate messages are the caller's concern. Metrics go to the
// engine's metric set, if it has one.
func VerifySimple[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]](e Engine[S, PK, Sig, GT], s Signed[PK, Sig]) bool {
	m := e.recorder()
	timer := metrics.NewTimer(m.VerifyTime)
	defer timer.Stop()

	var n int
	prepared := func(yield func(PK, Sig) bool) {
		for m, pk := range s.MessagesAndPublicKeys() {
			n++
			if !yield(pk, e.HashToSignatureCurve(m[:])) {
				return
			}
		}
	}
	ok := e.VerifyPrepared(s.Signature(), prepared)

	m.Verifications.Inc()
	m.VerifyPairs.Observe(float64(n))
	if !ok {
		m.VerifyFailures.Inc()
	}
	logger().Debug("Verified aggregate", "engine", e.Name(), "pairs", n, "valid", ok)
	return ok
}
