// Package bls implements aggregate BLS signatures over any pairing.Curve,
// with the roles of the two pairing groups chosen by an orientation
// strategy.
//
// A BLS signature σ = s·H(m) under public key S = s·g verifies when
// e(g, σ) = e(S, H(m)). Evaluating both sides costs two full pairings, so
// the verifier instead checks the single-sided form
//
//	e(−g, σ) · ∏ e(Sᵢ, H(mᵢ)) = 1
//
// with one multi-Miller loop and one final exponentiation, no matter how
// many (key, message) pairs an aggregate carries.
//
// Which group holds keys matters a great deal for aggregation: verifiers add
// or scalar-multiply public keys O(signers) times, so Standard puts them in
// the cheaper G1 and signatures in G2. Inverted swaps the roles for
// deployments where signature size dominates. PoP wraps either one and only
// changes how untrusted public keys may be loaded.
package bls

import (
	"io"
	"iter"

	"github.com/eth2030/aggbls/crypto/pairing"
	"github.com/eth2030/aggbls/metrics"
)

// millerChunk bounds how many pairs are buffered before a partial Miller
// loop is evaluated. Partial outputs multiply together, so aggregates of any
// size verify in constant memory.
const millerChunk = 64

// Engine adapts a pairing.Curve to BLS signatures by naming one group the
// public key group (PK) and the other the signature group (Sig).
//
// Engine can only be implemented inside this package; use Standard,
// Inverted or PoP.
type Engine[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]] interface {
	Name() string

	// Generate draws a uniformly random secret scalar from rng.
	Generate(rng io.Reader) (S, error)
	ScalarFromBytes(b []byte) (S, error)

	// HashToSignatureCurve deterministically maps msg onto the signature
	// group. It depends on nothing but msg and the engine type.
	HashToSignatureCurve(msg []byte) Sig

	// PublicKeyGenerator is the fixed generator g of the public key group.
	PublicKeyGenerator() PK

	// MillerLoop runs one batched Miller loop over pairs, reading the
	// sequence exactly once.
	MillerLoop(pairs iter.Seq2[PK, Sig]) GT

	// FinalExponentiation completes a pairing. A false result means the
	// input was degenerate and must be treated as a failed verification.
	FinalExponentiation(f GT) (GT, bool)

	// Pairing computes e(p, q) with the arguments in engine order.
	Pairing(p PK, q Sig) GT

	// VerifyPrepared checks e(−g, signature) · ∏ e(pk, h) = 1 over inputs.
	// It enforces no policy such as message distinctness.
	VerifyPrepared(signature Sig, inputs iter.Seq2[PK, Sig]) bool

	DecodeSignature(b []byte) (Sig, error)
	PublicKeySize() int
	SignatureSize() int

	decodePublicKey(b []byte) (PK, error)
	recorder() *metrics.BLS
}

// UnmutatedKeys is implemented by engines that never transform a decoded
// public key before using it.
type UnmutatedKeys interface {
	keysUnmutated()
}

// PublicKeyDeserializer is implemented by engines whose public keys may be
// trusted straight from their encoding. PoP deliberately does not implement
// it: keys for a proof-of-possession engine come from PoP.VerifiedPublicKey
// or PoP.AcknowledgeCheckedPublicKey instead.
type PublicKeyDeserializer[PK any] interface {
	UnmutatedKeys
	DeserializePublicKey(b []byte) (PK, error)
}

// verifyPrepared is the verification equation shared by every engine.
func verifyPrepared[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]](e Engine[S, PK, Sig, GT], signature Sig, inputs iter.Seq2[PK, Sig]) bool {
	negG := e.PublicKeyGenerator().Neg()
	f := e.MillerLoop(func(yield func(PK, Sig) bool) {
		for pk, h := range inputs {
			if !yield(pk, h) {
				return
			}
		}
		yield(negG, signature)
	})
	r, ok := e.FinalExponentiation(f)
	return ok && r.IsOne()
}

// chunkedMillerLoop feeds pairs to loop in chunks of millerChunk and
// multiplies the partial results. A backend error yields the zero element,
// which FinalExponentiation rejects.
func chunkedMillerLoop[A, B any, GT pairing.Target[GT]](pairs iter.Seq2[A, B], loop func([]A, []B) (GT, error), one GT) GT {
	var (
		acc    = one
		as     = make([]A, 0, millerChunk)
		bs     = make([]B, 0, millerChunk)
		failed bool
	)
	flush := func() {
		if len(as) == 0 || failed {
			return
		}
		f, err := loop(as, bs)
		if err != nil {
			failed = true
			return
		}
		acc = acc.Mul(f)
		as, bs = as[:0], bs[:0]
	}
	for a, b := range pairs {
		as = append(as, a)
		bs = append(bs, b)
		if len(as) == millerChunk {
			flush()
			if failed {
				break
			}
		}
	}
	flush()
	if failed {
		var zero GT
		return zero
	}
	return acc
}

// singlePairing computes a single reduced pairing via the engine's own primitives.
func singlePairing[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]](e Engine[S, PK, Sig, GT], p PK, q Sig) GT {
	r, ok := e.FinalExponentiation(e.MillerLoop(pairOf(p, q)))
	if !ok {
		var zero GT
		return zero
	}
	return r
}

// pairOf is a one-element sequence.
func pairOf[A, B any](a A, b B) iter.Seq2[A, B] {
	return func(yield func(A, B) bool) {
		yield(a, b)
	}
}

// decodeKey decodes a public key and refuses the identity, under which
// every message verifies with the identity signature.
func decodeKey[PK interface{ IsIdentity() bool }](b []byte, decode func([]byte) (PK, error)) (PK, error) {
	pk, err := decode(b)
	if err != nil {
		return pk, err
	}
	if pk.IsIdentity() {
		var zero PK
		return zero, ErrIdentityKey
	}
	return pk, nil
}

// signatureDST is the hash-to-curve domain separation tag for a curve, its
// map-to-curve suite and the group signatures are hashed into.
func signatureDST(curve, mapping, group string) []byte {
	return []byte("BLS_SIG_" + curve + group + "_XMD:SHA-256_" + mapping + "_RO_NUL_")
}

func mustHash[P any](p P, err error) P {
	if err != nil {
		// Only an oversized DST can make hash-to-curve fail, and ours are
		// fixed and short.
		panic(err)
	}
	return p
}
