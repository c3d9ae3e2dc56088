package bls

import (
	"io"
	"iter"

	"github.com/eth2030/aggbls/crypto/pairing"
	"github.com/eth2030/aggbls/metrics"
)

// Standard places public keys in G1 and signatures in G2. Aggregating keys
// is cheap and signatures are the larger of the two encodings.
type Standard[S pairing.Scalar[S], G1 pairing.Point[G1, S], G2 pairing.Point[G2, S], GT pairing.Target[GT]] struct {
	Curve pairing.Curve[S, G1, G2, GT]
	// Metrics, when set, receives verification and key counters.
	Metrics *metrics.BLS
}

func (s Standard[S, G1, G2, GT]) Name() string { return "Standard(" + s.Curve.Name() + ")" }

func (s Standard[S, G1, G2, GT]) Generate(rng io.Reader) (S, error) {
	return s.Curve.RandomScalar(rng)
}

func (s Standard[S, G1, G2, GT]) ScalarFromBytes(b []byte) (S, error) {
	return s.Curve.ScalarFromBytes(b)
}

func (s Standard[S, G1, G2, GT]) HashToSignatureCurve(msg []byte) G2 {
	return mustHash(s.Curve.HashToG2(msg, signatureDST(s.Curve.Name(), s.Curve.MapToCurve(), "G2")))
}

func (s Standard[S, G1, G2, GT]) PublicKeyGenerator() G1 { return s.Curve.G1Generator() }

func (s Standard[S, G1, G2, GT]) MillerLoop(pairs iter.Seq2[G1, G2]) GT {
	return chunkedMillerLoop(pairs, s.Curve.MillerLoop, s.Curve.One())
}

func (s Standard[S, G1, G2, GT]) FinalExponentiation(f GT) (GT, bool) {
	return s.Curve.FinalExponentiation(f)
}

func (s Standard[S, G1, G2, GT]) Pairing(p G1, q G2) GT {
	return singlePairing[S, G1, G2, GT](s, p, q)
}

func (s Standard[S, G1, G2, GT]) VerifyPrepared(signature G2, inputs iter.Seq2[G1, G2]) bool {
	return verifyPrepared[S, G1, G2, GT](s, signature, inputs)
}

func (s Standard[S, G1, G2, GT]) DecodeSignature(b []byte) (G2, error) {
	return s.Curve.G2FromBytes(b)
}

// DeserializePublicKey decodes a compressed G1 public key. The identity is
// refused with ErrIdentityKey.
func (s Standard[S, G1, G2, GT]) DeserializePublicKey(b []byte) (G1, error) {
	return s.decodePublicKey(b)
}

func (s Standard[S, G1, G2, GT]) decodePublicKey(b []byte) (G1, error) {
	return decodeKey(b, s.Curve.G1FromBytes)
}

func (s Standard[S, G1, G2, GT]) PublicKeySize() int { return s.Curve.G1Size() }
func (s Standard[S, G1, G2, GT]) SignatureSize() int { return s.Curve.G2Size() }

func (s Standard[S, G1, G2, GT]) recorder() *metrics.BLS { return s.Metrics.OrDiscard() }

func (Standard[S, G1, G2, GT]) keysUnmutated() {}
