package bls

import (
	"io"
	"iter"

	"github.com/eth2030/aggbls/crypto/pairing"
	"github.com/eth2030/aggbls/metrics"
)

// Inverted places public keys in G2 and signatures in G1, trading slower
// key aggregation for signatures half the size.
//
// The curve's Miller loop still wants G1 on the left, so every (key,
// signature-group) pair is swapped before it reaches the backend.
type Inverted[S pairing.Scalar[S], G1 pairing.Point[G1, S], G2 pairing.Point[G2, S], GT pairing.Target[GT]] struct {
	Curve pairing.Curve[S, G1, G2, GT]
	// Metrics, when set, receives verification and key counters.
	Metrics *metrics.BLS
}

func (v Inverted[S, G1, G2, GT]) Name() string { return "Inverted(" + v.Curve.Name() + ")" }

func (v Inverted[S, G1, G2, GT]) Generate(rng io.Reader) (S, error) {
	return v.Curve.RandomScalar(rng)
}

func (v Inverted[S, G1, G2, GT]) ScalarFromBytes(b []byte) (S, error) {
	return v.Curve.ScalarFromBytes(b)
}

func (v Inverted[S, G1, G2, GT]) HashToSignatureCurve(msg []byte) G1 {
	return mustHash(v.Curve.HashToG1(msg, signatureDST(v.Curve.Name(), v.Curve.MapToCurve(), "G1")))
}

func (v Inverted[S, G1, G2, GT]) PublicKeyGenerator() G2 { return v.Curve.G2Generator() }

func (v Inverted[S, G1, G2, GT]) MillerLoop(pairs iter.Seq2[G2, G1]) GT {
	swapped := func(pks []G2, sigs []G1) (GT, error) {
		return v.Curve.MillerLoop(sigs, pks)
	}
	return chunkedMillerLoop(pairs, swapped, v.Curve.One())
}

func (v Inverted[S, G1, G2, GT]) FinalExponentiation(f GT) (GT, bool) {
	return v.Curve.FinalExponentiation(f)
}

func (v Inverted[S, G1, G2, GT]) Pairing(p G2, q G1) GT {
	return singlePairing[S, G2, G1, GT](v, p, q)
}

func (v Inverted[S, G1, G2, GT]) VerifyPrepared(signature G1, inputs iter.Seq2[G2, G1]) bool {
	return verifyPrepared[S, G2, G1, GT](v, signature, inputs)
}

func (v Inverted[S, G1, G2, GT]) DecodeSignature(b []byte) (G1, error) {
	return v.Curve.G1FromBytes(b)
}

// DeserializePublicKey decodes a compressed G2 public key. The identity is
// refused with ErrIdentityKey.
func (v Inverted[S, G1, G2, GT]) DeserializePublicKey(b []byte) (G2, error) {
	return v.decodePublicKey(b)
}

func (v Inverted[S, G1, G2, GT]) decodePublicKey(b []byte) (G2, error) {
	return decodeKey(b, v.Curve.G2FromBytes)
}

func (v Inverted[S, G1, G2, GT]) PublicKeySize() int { return v.Curve.G2Size() }
func (v Inverted[S, G1, G2, GT]) SignatureSize() int { return v.Curve.G1Size() }

func (v Inverted[S, G1, G2, GT]) recorder() *metrics.BLS { return v.Metrics.OrDiscard() }

func (Inverted[S, G1, G2, GT]) keysUnmutated() {}
