package bls

import "errors"

var (
	// ErrDuplicateMessage is returned when a message is added to an
	// aggregate that already carries it.
	ErrDuplicateMessage = errors.New("bls: message already present in aggregate")
	// ErrMessageMismatch is returned when signatures over different messages
	// are combined as if they shared one.
	ErrMessageMismatch = errors.New("bls: signed messages differ")
	// ErrSequenceConsumed is the panic value of a one-shot sequence that is
	// traversed a second time.
	ErrSequenceConsumed = errors.New("bls: message/public key sequence already consumed")
	// ErrInvalidProof is returned when a proof of possession does not verify.
	ErrInvalidProof = errors.New("bls: invalid proof of possession")
	// ErrIdentityKey is returned for the identity public key, which every
	// message verifies under.
	ErrIdentityKey = errors.New("bls: identity public key")
	// ErrUnknownSigner is returned for a key missing from a SignerSet.
	ErrUnknownSigner = errors.New("bls: signer not in signer set")
	// ErrDuplicateSigner is returned when a signer already counted in a
	// bitfield aggregate signs again.
	ErrDuplicateSigner = errors.New("bls: signer already present in aggregate")
	// ErrSignerSetMismatch is returned when merging aggregates over
	// different signer sets.
	ErrSignerSetMismatch = errors.New("bls: aggregates use different signer sets")
	// ErrEmptyAggregate is returned when an aggregate holds no signatures.
	ErrEmptyAggregate = errors.New("bls: empty aggregate")
)
