package bls

import (
	"encoding/binary"
	"iter"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"

	"github.com/eth2030/aggbls/crypto/pairing"
)

// SignerSet is an indexed roster of keys with proven possession. Bitfield
// and counted aggregates name signers by their index in it.
type SignerSet[S pairing.Scalar[S], PK pairing.Point[PK, S]] struct {
	keys  []PK
	index map[string]int
}

// NewSignerSet indexes keys in the order given. Repeated and identity keys
// are refused.
func NewSignerSet[S pairing.Scalar[S], PK pairing.Point[PK, S]](keys ...ProvenKey[PK]) (*SignerSet[S, PK], error) {
	set := &SignerSet[S, PK]{index: make(map[string]int, len(keys))}
	for i, k := range keys {
		if k.pk.IsIdentity() {
			return nil, errors.Wrapf(ErrIdentityKey, "bls: signer %d", i)
		}
		id := string(k.pk.Bytes())
		if j, dup := set.index[id]; dup {
			return nil, errors.Wrapf(ErrDuplicateSigner, "bls: signers %d and %d", j, i)
		}
		set.index[id] = i
		set.keys = append(set.keys, k.pk)
	}
	return set, nil
}

func (s *SignerSet[S, PK]) Len() int { return len(s.keys) }

// PublicKey returns the key at index i.
func (s *SignerSet[S, PK]) PublicKey(i int) PK { return s.keys[i] }

// Index returns the position of pk.
func (s *SignerSet[S, PK]) Index(pk PK) (int, bool) {
	i, ok := s.index[string(pk.Bytes())]
	return i, ok
}

func (s *SignerSet[S, PK]) lookup(pk PK) (int, error) {
	i, ok := s.Index(pk)
	if !ok {
		return 0, errors.Wrapf(ErrUnknownSigner, "bls: key %x", pk.Bytes())
	}
	return i, nil
}

// BitSignedMessage is a signature on one message by a subset of a
// SignerSet, recorded as a bitfield. Each signer counts at most once.
type BitSignedMessage[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]] struct {
	engine    Engine[S, PK, Sig, GT]
	signers   *SignerSet[S, PK]
	message   Message
	bits      *bitset.BitSet
	signature Sig
}

// NewBitSignedMessage returns an aggregate on m with no signers yet.
func NewBitSignedMessage[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]](e Engine[S, PK, Sig, GT], signers *SignerSet[S, PK], m Message) *BitSignedMessage[S, PK, Sig, GT] {
	return &BitSignedMessage[S, PK, Sig, GT]{
		engine:  e,
		signers: signers,
		message: m,
		bits:    bitset.New(uint(signers.Len())),
	}
}

func (b *BitSignedMessage[S, PK, Sig, GT]) Message() Message { return b.message }

// Has reports whether the signer at index i is in the aggregate.
func (b *BitSignedMessage[S, PK, Sig, GT]) Has(i int) bool { return b.bits.Test(uint(i)) }

// Count is the number of signers.
func (b *BitSignedMessage[S, PK, Sig, GT]) Count() int { return int(b.bits.Count()) }

// Add includes sm, whose key must belong to the signer set.
func (b *BitSignedMessage[S, PK, Sig, GT]) Add(sm *SignedMessage[S, PK, Sig, GT]) error {
	if sm.message != b.message {
		return errors.Wrapf(ErrMessageMismatch, "bls: aggregating %s with %s", b.message, sm.message)
	}
	i, err := b.signers.lookup(sm.publicKey)
	if err != nil {
		return err
	}
	if b.bits.Test(uint(i)) {
		return errors.Wrapf(ErrDuplicateSigner, "bls: signer %d", i)
	}
	b.addSignature(sm.signature)
	b.bits.Set(uint(i))
	return nil
}

// Merge includes every signer of other. The two aggregates must not share a
// signer; use CountSignedMessage for overlapping aggregates.
func (b *BitSignedMessage[S, PK, Sig, GT]) Merge(other *BitSignedMessage[S, PK, Sig, GT]) error {
	if other.signers != b.signers {
		return ErrSignerSetMismatch
	}
	if other.message != b.message {
		return errors.Wrapf(ErrMessageMismatch, "bls: aggregating %s with %s", b.message, other.message)
	}
	if n := b.bits.IntersectionCardinality(other.bits); n > 0 {
		return errors.Wrapf(ErrDuplicateSigner, "bls: %d shared signers", n)
	}
	if other.Count() == 0 {
		return nil
	}
	b.addSignature(other.signature)
	b.bits.InPlaceUnion(other.bits)
	return nil
}

func (b *BitSignedMessage[S, PK, Sig, GT]) addSignature(sig Sig) {
	if b.bits.Count() == 0 {
		b.signature = sig
	} else {
		b.signature = b.signature.Add(sig)
	}
}

func (b *BitSignedMessage[S, PK, Sig, GT]) Signature() Sig { return b.signature }

// MessagesAndPublicKeys yields the message once with the sum of the
// signers' keys, or nothing when there are no signers.
func (b *BitSignedMessage[S, PK, Sig, GT]) MessagesAndPublicKeys() iter.Seq2[Message, PK] {
	return OneShot(func(yield func(Message, PK) bool) {
		var (
			sum   PK
			found bool
		)
		for i, ok := b.bits.NextSet(0); ok; i, ok = b.bits.NextSet(i + 1) {
			if found {
				sum = sum.Add(b.signers.keys[i])
			} else {
				sum, found = b.signers.keys[i], true
			}
		}
		if found {
			yield(b.message, sum)
		}
	})
}

// Verify checks the aggregate. Without signers it never verifies.
func (b *BitSignedMessage[S, PK, Sig, GT]) Verify() bool {
	if b.bits.Count() == 0 {
		return false
	}
	return VerifySimple[S, PK, Sig, GT](b.engine, b)
}

// CountSignedMessage is a signature on one message by a multiset of a
// SignerSet's members. Unlike BitSignedMessage it merges overlapping
// aggregates, counting how often each signer contributed.
type CountSignedMessage[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]] struct {
	engine    Engine[S, PK, Sig, GT]
	signers   *SignerSet[S, PK]
	message   Message
	counts    []uint64
	total     uint64
	signature Sig
}

// NewCountSignedMessage returns an aggregate on m with no signers yet.
func NewCountSignedMessage[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]](e Engine[S, PK, Sig, GT], signers *SignerSet[S, PK], m Message) *CountSignedMessage[S, PK, Sig, GT] {
	return &CountSignedMessage[S, PK, Sig, GT]{
		engine:  e,
		signers: signers,
		message: m,
		counts:  make([]uint64, signers.Len()),
	}
}

func (c *CountSignedMessage[S, PK, Sig, GT]) Message() Message { return c.message }

// Count returns how many times the signer at index i contributed.
func (c *CountSignedMessage[S, PK, Sig, GT]) Count(i int) uint64 { return c.counts[i] }

// Total is the number of contributions.
func (c *CountSignedMessage[S, PK, Sig, GT]) Total() uint64 { return c.total }

// Add includes sm, whose key must belong to the signer set. A signer may
// be added more than once.
func (c *CountSignedMessage[S, PK, Sig, GT]) Add(sm *SignedMessage[S, PK, Sig, GT]) error {
	if sm.message != c.message {
		return errors.Wrapf(ErrMessageMismatch, "bls: aggregating %s with %s", c.message, sm.message)
	}
	i, err := c.signers.lookup(sm.publicKey)
	if err != nil {
		return err
	}
	c.addSignature(sm.signature)
	c.counts[i]++
	c.total++
	return nil
}

// Merge adds every contribution of other.
func (c *CountSignedMessage[S, PK, Sig, GT]) Merge(other *CountSignedMessage[S, PK, Sig, GT]) error {
	if other.signers != c.signers {
		return ErrSignerSetMismatch
	}
	if other.message != c.message {
		return errors.Wrapf(ErrMessageMismatch, "bls: aggregating %s with %s", c.message, other.message)
	}
	if other.total == 0 {
		return nil
	}
	c.addSignature(other.signature)
	for i, n := range other.counts {
		c.counts[i] += n
	}
	c.total += other.total
	return nil
}

// MergeBits adds every signer of b once.
func (c *CountSignedMessage[S, PK, Sig, GT]) MergeBits(b *BitSignedMessage[S, PK, Sig, GT]) error {
	if b.signers != c.signers {
		return ErrSignerSetMismatch
	}
	if b.message != c.message {
		return errors.Wrapf(ErrMessageMismatch, "bls: aggregating %s with %s", c.message, b.message)
	}
	if b.Count() == 0 {
		return nil
	}
	c.addSignature(b.signature)
	for i, ok := b.bits.NextSet(0); ok; i, ok = b.bits.NextSet(i + 1) {
		c.counts[i]++
		c.total++
	}
	return nil
}

func (c *CountSignedMessage[S, PK, Sig, GT]) addSignature(sig Sig) {
	if c.total == 0 {
		c.signature = sig
	} else {
		c.signature = c.signature.Add(sig)
	}
}

func (c *CountSignedMessage[S, PK, Sig, GT]) Signature() Sig { return c.signature }

// MessagesAndPublicKeys yields the message once with Σ countᵢ·keyᵢ, or
// nothing when there are no contributions.
func (c *CountSignedMessage[S, PK, Sig, GT]) MessagesAndPublicKeys() iter.Seq2[Message, PK] {
	return OneShot(func(yield func(Message, PK) bool) {
		var (
			sum   PK
			found bool
		)
		for i, n := range c.counts {
			if n == 0 {
				continue
			}
			pk := c.signers.keys[i]
			if n > 1 {
				pk = pk.Mul(scalarFromCount(c.engine, n))
			}
			if found {
				sum = sum.Add(pk)
			} else {
				sum, found = pk, true
			}
		}
		if found {
			yield(c.message, sum)
		}
	})
}

// Verify checks the aggregate. Without contributions it never verifies.
func (c *CountSignedMessage[S, PK, Sig, GT]) Verify() bool {
	if c.total == 0 {
		return false
	}
	return VerifySimple[S, PK, Sig, GT](c.engine, c)
}

func scalarFromCount[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]](e Engine[S, PK, Sig, GT], n uint64) S {
	var b [pairing.ScalarBytes]byte
	binary.BigEndian.PutUint64(b[pairing.ScalarBytes-8:], n)
	s, err := e.ScalarFromBytes(b[:])
	if err != nil {
		// Every 64-bit value is canonical on the supported curves.
		panic(err)
	}
	return s
}
