package bls

import (
	"iter"

	"github.com/pkg/errors"

	"github.com/eth2030/aggbls/crypto/pairing"
)

// delinearContext separates key-set commitments from signed messages.
var delinearContext = []byte("delinear")

// coefficientBytes is the width of a delinearization coefficient.
const coefficientBytes = 16

// KeyStableEngine is an engine whose decoded public keys are used as they
// are, which Delinearized needs: it scales each key exactly once.
type KeyStableEngine[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]] interface {
	Engine[S, PK, Sig, GT]
	UnmutatedKeys
}

// Delinearized aggregates signatures from keys that carry no proof of
// possession, shared messages included. Every key pkᵢ and its signature σᵢ
// are scaled by a 128-bit coefficient tᵢ derived from pkᵢ and a commitment
// to the whole key list, so a key chosen as a combination of the others no
// longer cancels them:
//
//	e(−g, Σ tᵢ·σᵢ) · ∏ e(tᵢ·pkᵢ, H(mᵢ)) = 1
//
// The coefficients change whenever a signer is added, so the aggregate
// signature is only formed when it is read.
type Delinearized[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]] struct {
	engine   KeyStableEngine[S, PK, Sig, GT]
	messages []Message
	keys     []PK
	sigs     []Sig
}

// NewDelinearized returns an empty aggregate.
func NewDelinearized[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]](e KeyStableEngine[S, PK, Sig, GT]) *Delinearized[S, PK, Sig, GT] {
	return &Delinearized[S, PK, Sig, GT]{engine: e}
}

// Add includes one signed message.
func (d *Delinearized[S, PK, Sig, GT]) Add(sm *SignedMessage[S, PK, Sig, GT]) error {
	return d.AddMessage(sm.message, sm.publicKey, sm.signature)
}

// AddMessage includes a signature sig by pk on m.
func (d *Delinearized[S, PK, Sig, GT]) AddMessage(m Message, pk PK, sig Sig) error {
	if pk.IsIdentity() {
		return errors.Wrapf(ErrIdentityKey, "bls: message %s", m)
	}
	d.messages = append(d.messages, m)
	d.keys = append(d.keys, pk)
	d.sigs = append(d.sigs, sig)
	return nil
}

// Len is the number of signatures.
func (d *Delinearized[S, PK, Sig, GT]) Len() int { return len(d.keys) }

// coefficients derives tᵢ for every key from the key list.
func (d *Delinearized[S, PK, Sig, GT]) coefficients() []S {
	var all []byte
	for _, pk := range d.keys {
		all = append(all, pk.Bytes()...)
	}
	commitment := NewMessage(delinearContext, all)

	ts := make([]S, len(d.keys))
	for i, pk := range d.keys {
		h := NewMessage(commitment[:], pk.Bytes())
		var b [pairing.ScalarBytes]byte
		copy(b[pairing.ScalarBytes-coefficientBytes:], h[:coefficientBytes])
		t, err := d.engine.ScalarFromBytes(b[:])
		if err != nil {
			// 128-bit values are below every supported group order.
			panic(err)
		}
		ts[i] = t
	}
	return ts
}

// Signature returns Σ tᵢ·σᵢ.
func (d *Delinearized[S, PK, Sig, GT]) Signature() Sig {
	var sum Sig
	for i, t := range d.coefficients() {
		if i == 0 {
			sum = d.sigs[i].Mul(t)
		} else {
			sum = sum.Add(d.sigs[i].Mul(t))
		}
	}
	return sum
}

// MessagesAndPublicKeys yields (mᵢ, tᵢ·pkᵢ) in insertion order. The keys are
// the scaled ones, not those that were added.
func (d *Delinearized[S, PK, Sig, GT]) MessagesAndPublicKeys() iter.Seq2[Message, PK] {
	return OneShot(func(yield func(Message, PK) bool) {
		for i, t := range d.coefficients() {
			if !yield(d.messages[i], d.keys[i].Mul(t)) {
				return
			}
		}
	})
}

// Verify checks the aggregate. An empty aggregate never verifies.
func (d *Delinearized[S, PK, Sig, GT]) Verify() bool {
	if len(d.keys) == 0 {
		return false
	}
	return VerifySimple[S, PK, Sig, GT](d.engine, d)
}
