package bls

import (
	"iter"

	"github.com/pkg/errors"

	"github.com/eth2030/aggbls/crypto/pairing"
)

// SignedMessage is a signature on one message under one public key.
// Same-message aggregation lives in PoPAggregate, BitSignedMessage,
// CountSignedMessage and Delinearized, which defend against rogue keys.
type SignedMessage[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]] struct {
	engine    Engine[S, PK, Sig, GT]
	message   Message
	publicKey PK
	signature Sig
}

// NewSignedMessage bundles an existing signature with its message and key.
func NewSignedMessage[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]](e Engine[S, PK, Sig, GT], m Message, pk PK, sig Sig) *SignedMessage[S, PK, Sig, GT] {
	return &SignedMessage[S, PK, Sig, GT]{engine: e, message: m, publicKey: pk, signature: sig}
}

func (sm *SignedMessage[S, PK, Sig, GT]) Message() Message { return sm.message }
func (sm *SignedMessage[S, PK, Sig, GT]) PublicKey() PK    { return sm.publicKey }
func (sm *SignedMessage[S, PK, Sig, GT]) Signature() Sig   { return sm.signature }

func (sm *SignedMessage[S, PK, Sig, GT]) MessagesAndPublicKeys() iter.Seq2[Message, PK] {
	return OneShot(pairOf(sm.message, sm.publicKey))
}

// Verify checks the signature. Nothing verifies under the identity key.
func (sm *SignedMessage[S, PK, Sig, GT]) Verify() bool {
	if sm.publicKey.IsIdentity() {
		return false
	}
	return VerifySimple[S, PK, Sig, GT](sm.engine, sm)
}

// DistinctMessages aggregates signatures on pairwise distinct messages.
// Distinctness is what makes a plain BLS aggregate secure without proofs of
// possession, so adding a message twice fails with ErrDuplicateMessage.
//
// A DistinctMessages is not safe for concurrent mutation.
type DistinctMessages[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]] struct {
	engine    Engine[S, PK, Sig, GT]
	keys      map[Message]PK
	order     []Message
	signature Sig
	signed    bool
}

// NewDistinctMessages returns an empty aggregate.
func NewDistinctMessages[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]](e Engine[S, PK, Sig, GT]) *DistinctMessages[S, PK, Sig, GT] {
	return &DistinctMessages[S, PK, Sig, GT]{
		engine: e,
		keys:   make(map[Message]PK),
	}
}

// Add merges every pair of s along with its signature. Either all of s is
// added or, on a duplicate message or an identity key, none of it.
func (d *DistinctMessages[S, PK, Sig, GT]) Add(s Signed[PK, Sig]) error {
	var (
		msgs []Message
		pks  []PK
		seen = make(map[Message]struct{})
	)
	for m, pk := range s.MessagesAndPublicKeys() {
		if pk.IsIdentity() {
			return errors.Wrapf(ErrIdentityKey, "bls: message %s", m)
		}
		if _, dup := d.keys[m]; dup {
			return errors.Wrapf(ErrDuplicateMessage, "bls: message %s", m)
		}
		if _, dup := seen[m]; dup {
			return errors.Wrapf(ErrDuplicateMessage, "bls: message %s", m)
		}
		seen[m] = struct{}{}
		msgs = append(msgs, m)
		pks = append(pks, pk)
	}
	for i, m := range msgs {
		d.keys[m] = pks[i]
		d.order = append(d.order, m)
	}
	if d.signed {
		d.signature = d.signature.Add(s.Signature())
	} else {
		d.signature, d.signed = s.Signature(), true
	}
	return nil
}

// AddMessage adds a single signed message.
func (d *DistinctMessages[S, PK, Sig, GT]) AddMessage(m Message, pk PK, sig Sig) error {
	return d.Add(NewSignedMessage(d.engine, m, pk, sig))
}

// Len is the number of messages in the aggregate.
func (d *DistinctMessages[S, PK, Sig, GT]) Len() int { return len(d.order) }

// Contains reports whether m has been signed into the aggregate.
func (d *DistinctMessages[S, PK, Sig, GT]) Contains(m Message) bool {
	_, ok := d.keys[m]
	return ok
}

func (d *DistinctMessages[S, PK, Sig, GT]) Signature() Sig { return d.signature }

// MessagesAndPublicKeys yields pairs in insertion order.
func (d *DistinctMessages[S, PK, Sig, GT]) MessagesAndPublicKeys() iter.Seq2[Message, PK] {
	return OneShot(func(yield func(Message, PK) bool) {
		for _, m := range d.order {
			if !yield(m, d.keys[m]) {
				return
			}
		}
	})
}

// Verify checks the aggregate. An empty aggregate never verifies.
func (d *DistinctMessages[S, PK, Sig, GT]) Verify() bool {
	if len(d.order) == 0 {
		return false
	}
	return VerifySimple[S, PK, Sig, GT](d.engine, d)
}

// PoPAggregate aggregates signatures from keys with proven possession.
// Signers may share a message: keys on one message are summed, so
// verification costs one Miller loop term per distinct message.
//
// Keys and signatures are added separately, so an aggregate signature
// received from elsewhere can be checked against the keys it claims.
type PoPAggregate[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]] struct {
	engine    PoP[S, PK, Sig, GT]
	keys      map[Message]PK
	order     []Message
	signature Sig
	signed    bool
}

// NewPoPAggregate returns an empty aggregate.
func NewPoPAggregate[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]](e PoP[S, PK, Sig, GT]) *PoPAggregate[S, PK, Sig, GT] {
	return &PoPAggregate[S, PK, Sig, GT]{
		engine: e,
		keys:   make(map[Message]PK),
	}
}

// AddPublicKey records that key signed m.
func (a *PoPAggregate[S, PK, Sig, GT]) AddPublicKey(m Message, key ProvenKey[PK]) error {
	if key.pk.IsIdentity() {
		return ErrIdentityKey
	}
	a.addKey(m, key.pk)
	return nil
}

func (a *PoPAggregate[S, PK, Sig, GT]) addKey(m Message, pk PK) {
	if sum, ok := a.keys[m]; ok {
		a.keys[m] = sum.Add(pk)
		return
	}
	a.keys[m] = pk
	a.order = append(a.order, m)
}

// AddSignature adds sig into the aggregate signature.
func (a *PoPAggregate[S, PK, Sig, GT]) AddSignature(sig Sig) {
	if a.signed {
		a.signature = a.signature.Add(sig)
	} else {
		a.signature, a.signed = sig, true
	}
}

// Add records a signature by key on m.
func (a *PoPAggregate[S, PK, Sig, GT]) Add(m Message, key ProvenKey[PK], sig Sig) error {
	if err := a.AddPublicKey(m, key); err != nil {
		return err
	}
	a.AddSignature(sig)
	return nil
}

// Merge adds everything in other.
func (a *PoPAggregate[S, PK, Sig, GT]) Merge(other *PoPAggregate[S, PK, Sig, GT]) {
	for _, m := range other.order {
		a.addKey(m, other.keys[m])
	}
	if other.signed {
		a.AddSignature(other.signature)
	}
}

// Len is the number of distinct messages.
func (a *PoPAggregate[S, PK, Sig, GT]) Len() int { return len(a.order) }

// PublicKey returns the summed key of every signer of m.
func (a *PoPAggregate[S, PK, Sig, GT]) PublicKey(m Message) (PK, bool) {
	pk, ok := a.keys[m]
	return pk, ok
}

func (a *PoPAggregate[S, PK, Sig, GT]) Signature() Sig { return a.signature }

// MessagesAndPublicKeys yields each message once, with its summed key, in
// the order messages were first added.
func (a *PoPAggregate[S, PK, Sig, GT]) MessagesAndPublicKeys() iter.Seq2[Message, PK] {
	return OneShot(func(yield func(Message, PK) bool) {
		for _, m := range a.order {
			if !yield(m, a.keys[m]) {
				return
			}
		}
	})
}

// Verify checks the aggregate. An aggregate without keys or without a
// signature never verifies, nor does one whose keys on a message cancel out.
func (a *PoPAggregate[S, PK, Sig, GT]) Verify() bool {
	if len(a.order) == 0 || !a.signed {
		return false
	}
	for _, m := range a.order {
		if a.keys[m].IsIdentity() {
			return false
		}
	}
	return VerifySimple[S, PK, Sig, GT](a.engine, a)
}
