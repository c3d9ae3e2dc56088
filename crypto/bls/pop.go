package bls

import (
	"io"
	"iter"

	"github.com/pkg/errors"

	"github.com/eth2030/aggbls/crypto/pairing"
	"github.com/eth2030/aggbls/metrics"
)

// possessionContext separates proofs of possession from ordinary messages.
var possessionContext = []byte("pop")

// PoP wraps an engine whose public keys must come with a proof of
// possession. It computes exactly what Inner computes; the difference is
// that PoP does not implement PublicKeyDeserializer, so the only ways to get
// a usable key from bytes are VerifiedPublicKey and
// AcknowledgeCheckedPublicKey.
//
// Once every key is proven, signers may share a message: PoPAggregate,
// BitSignedMessage and CountSignedMessage only take ProvenKey values.
type PoP[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]] struct {
	Inner Engine[S, PK, Sig, GT]
}

func (p PoP[S, PK, Sig, GT]) Name() string { return "PoP(" + p.Inner.Name() + ")" }

func (p PoP[S, PK, Sig, GT]) Generate(rng io.Reader) (S, error) { return p.Inner.Generate(rng) }

func (p PoP[S, PK, Sig, GT]) ScalarFromBytes(b []byte) (S, error) { return p.Inner.ScalarFromBytes(b) }

func (p PoP[S, PK, Sig, GT]) HashToSignatureCurve(msg []byte) Sig {
	return p.Inner.HashToSignatureCurve(msg)
}

func (p PoP[S, PK, Sig, GT]) PublicKeyGenerator() PK { return p.Inner.PublicKeyGenerator() }

func (p PoP[S, PK, Sig, GT]) MillerLoop(pairs iter.Seq2[PK, Sig]) GT {
	return p.Inner.MillerLoop(pairs)
}

func (p PoP[S, PK, Sig, GT]) FinalExponentiation(f GT) (GT, bool) {
	return p.Inner.FinalExponentiation(f)
}

func (p PoP[S, PK, Sig, GT]) Pairing(pk PK, q Sig) GT { return p.Inner.Pairing(pk, q) }

func (p PoP[S, PK, Sig, GT]) VerifyPrepared(signature Sig, inputs iter.Seq2[PK, Sig]) bool {
	return p.Inner.VerifyPrepared(signature, inputs)
}

func (p PoP[S, PK, Sig, GT]) DecodeSignature(b []byte) (Sig, error) {
	return p.Inner.DecodeSignature(b)
}

func (p PoP[S, PK, Sig, GT]) decodePublicKey(b []byte) (PK, error) { return p.Inner.decodePublicKey(b) }

func (p PoP[S, PK, Sig, GT]) PublicKeySize() int { return p.Inner.PublicKeySize() }
func (p PoP[S, PK, Sig, GT]) SignatureSize() int { return p.Inner.SignatureSize() }

func (p PoP[S, PK, Sig, GT]) recorder() *metrics.BLS { return p.Inner.recorder() }

func (PoP[S, PK, Sig, GT]) keysUnmutated() {}

// ProvenKey is a public key whose holder has shown possession of its secret
// key. Outside this package it can only come from PoP.VerifiedPublicKey,
// PoP.AcknowledgeCheckedPublicKey or Keypair.ProvenKey, and the aggregates
// that let signers share a message accept nothing else. The zero value
// holds no key and is refused everywhere.
type ProvenKey[PK any] struct {
	pk PK
}

// PublicKey returns the underlying key.
func (k ProvenKey[PK]) PublicKey() PK { return k.pk }

// VerifiedPublicKey decodes b and accepts it only if proof is a valid proof
// of possession for it.
func (p PoP[S, PK, Sig, GT]) VerifiedPublicKey(b []byte, proof Sig) (ProvenKey[PK], error) {
	pk, err := p.Inner.decodePublicKey(b)
	if err != nil {
		// The identity key has the identity as a valid proof.
		if errors.Is(err, ErrIdentityKey) {
			p.recorder().PossessionRejected.Inc()
		}
		return ProvenKey[PK]{}, errors.Wrap(err, "bls: decoding public key")
	}
	m := possessionMessage[S](pk)
	if !p.Inner.VerifyPrepared(proof, pairOf(pk, p.Inner.HashToSignatureCurve(m[:]))) {
		p.recorder().PossessionRejected.Inc()
		logger().Warn("Rejected public key", "engine", p.Name(), "reason", "invalid proof of possession")
		return ProvenKey[PK]{}, ErrInvalidProof
	}
	return ProvenKey[PK]{pk: pk}, nil
}

// AcknowledgeCheckedPublicKey decodes b without a proof. The caller asserts
// that possession was established some other way, for example by a
// registration step that already checked the proof.
func (p PoP[S, PK, Sig, GT]) AcknowledgeCheckedPublicKey(b []byte) (ProvenKey[PK], error) {
	pk, err := p.Inner.decodePublicKey(b)
	if err != nil {
		return ProvenKey[PK]{}, errors.Wrap(err, "bls: decoding public key")
	}
	return ProvenKey[PK]{pk: pk}, nil
}

// ProvePossession signs the compressed encoding of kp's public key under a
// dedicated context.
func ProvePossession[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]](kp *Keypair[S, PK, Sig, GT]) Sig {
	return kp.Sign(possessionMessage[S](kp.public))
}

func possessionMessage[S any, PK pairing.Point[PK, S]](pk PK) Message {
	return NewMessage(possessionContext, pk.Bytes())
}
