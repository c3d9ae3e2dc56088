package bls12381

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Scalar is an element of the BLS12-381 scalar field Fr.
type Scalar struct {
	v fr.Element
}

func (s Scalar) Add(o Scalar) Scalar {
	var r Scalar
	r.v.Add(&s.v, &o.v)
	return r
}

func (s Scalar) Sub(o Scalar) Scalar {
	var r Scalar
	r.v.Sub(&s.v, &o.v)
	return r
}

func (s Scalar) Mul(o Scalar) Scalar {
	var r Scalar
	r.v.Mul(&s.v, &o.v)
	return r
}

func (s Scalar) Neg() Scalar {
	var r Scalar
	r.v.Neg(&s.v)
	return r
}

// Inverse returns s⁻¹, or zero when s is zero.
func (s Scalar) Inverse() Scalar {
	var r Scalar
	r.v.Inverse(&s.v)
	return r
}

// Sqrt returns a square root of s, reporting false for non-residues.
func (s Scalar) Sqrt() (Scalar, bool) {
	var r Scalar
	if r.v.Sqrt(&s.v) == nil {
		return Scalar{}, false
	}
	return r, true
}

func (s Scalar) IsZero() bool { return s.v.IsZero() }

func (s Scalar) Equal(o Scalar) bool { return s.v.Equal(&o.v) }

// Bytes returns the 32-byte big-endian canonical encoding.
func (s Scalar) Bytes() []byte {
	b := s.v.Bytes()
	return b[:]
}

// BigInt returns s as a non-negative integer below the group order.
func (s Scalar) BigInt() *big.Int {
	return s.v.BigInt(new(big.Int))
}

// Order returns the prime order r shared by G1, G2 and Fr.
func Order() *big.Int {
	return fr.Modulus()
}
