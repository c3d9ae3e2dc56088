// Package pairing defines the boundary between the BLS engine and the
// pairing-friendly curve libraries that supply field and group arithmetic.
//
// A Curve is described in its library's native order: the Miller loop takes
// G1 points on the left and G2 points on the right. Which of the two groups
// holds public keys and which holds signatures is decided one layer up, in
// package bls, so a Curve never needs to know about BLS at all.
//
// Points are kept in affine form. Affine is the "prepared" representation
// every supported backend feeds into its Miller loop, so callers never
// prepare points explicitly.
package pairing

import (
	"errors"
	"io"
)

// Errors shared by curve backends.
var (
	ErrInvalidScalar = errors.New("pairing: invalid scalar encoding")
	ErrInvalidPoint  = errors.New("pairing: invalid point encoding")
	ErrPairsMismatch = errors.New("pairing: miller loop inputs differ in length")
)

// ScalarBytes is the canonical big-endian encoding size of a scalar for
// every curve supported here (255-bit and 254-bit prime orders).
const ScalarBytes = 32

// Scalar is an element of the prime-order field shared by both groups of a
// pairing. Values are immutable: every operation returns a new element.
type Scalar[S any] interface {
	Add(S) S
	Sub(S) S
	Mul(S) S
	Neg() S
	// Inverse returns the multiplicative inverse; the inverse of zero is zero.
	Inverse() S
	// Sqrt returns a square root and true, or false if none exists.
	Sqrt() (S, bool)
	IsZero() bool
	Equal(S) bool
	Bytes() []byte
}

// Point is a group element on either side of a pairing, in affine form.
type Point[P, S any] interface {
	Add(P) P
	Sub(P) P
	Neg() P
	Mul(S) P
	Equal(P) bool
	IsIdentity() bool
	// Bytes returns the compressed affine encoding.
	Bytes() []byte
}

// Target is an element of the multiplicative target group of a pairing.
type Target[T any] interface {
	Mul(T) T
	Equal(T) bool
	IsOne() bool
	IsZero() bool
}

// Curve is a pairing-friendly curve with its scalar field, both source
// groups and the target group.
type Curve[S Scalar[S], G1 Point[G1, S], G2 Point[G2, S], GT Target[GT]] interface {
	// Name is a short upper-case identifier used in domain separation tags.
	Name() string
	// MapToCurve names the RFC 9380 mapping behind HashToG1 and HashToG2,
	// such as SSWU or SVDW.
	MapToCurve() string

	// RandomScalar draws a uniformly random scalar from rng.
	RandomScalar(rng io.Reader) (S, error)
	// ScalarFromBytes decodes a canonical big-endian scalar.
	ScalarFromBytes(b []byte) (S, error)
	ScalarFromUint64(v uint64) S

	G1Generator() G1
	G2Generator() G2

	HashToG1(msg, dst []byte) (G1, error)
	HashToG2(msg, dst []byte) (G2, error)

	// G1FromBytes and G2FromBytes decode compressed points, rejecting
	// encodings that are off-curve or outside the prime-order subgroup.
	G1FromBytes(b []byte) (G1, error)
	G2FromBytes(b []byte) (G2, error)
	G1Size() int
	G2Size() int

	// MillerLoop computes ∏ᵢ f(p[i], q[i]) before final exponentiation.
	// Empty input yields the identity of the target group.
	MillerLoop(p []G1, q []G2) (GT, error)
	// FinalExponentiation completes a pairing. It reports false when f is
	// degenerate and no meaningful result exists.
	FinalExponentiation(f GT) (GT, bool)
	One() GT
}

// Pair computes the reduced pairing e(p, q) on c.
func Pair[S Scalar[S], G1 Point[G1, S], G2 Point[G2, S], GT Target[GT]](c Curve[S, G1, G2, GT], p G1, q G2) (GT, bool) {
	f, err := c.MillerLoop([]G1{p}, []G2{q})
	if err != nil {
		var zero GT
		return zero, false
	}
	return c.FinalExponentiation(f)
}
