package bn254

import (
	gnark "github.com/consensys/gnark-crypto/ecc/bn254"
)

// G1 is an affine BN254 point over Fp.
type G1 struct {
	p gnark.G1Affine
}

// G1FromAffine wraps a gnark-crypto affine point.
func G1FromAffine(p gnark.G1Affine) G1 { return G1{p: p} }

// Affine returns the underlying gnark-crypto point.
func (a G1) Affine() gnark.G1Affine { return a.p }

func (a G1) Add(b G1) G1 {
	var j gnark.G1Jac
	j.FromAffine(&a.p)
	j.AddMixed(&b.p)
	var r G1
	r.p.FromJacobian(&j)
	return r
}

func (a G1) Sub(b G1) G1 { return a.Add(b.Neg()) }

func (a G1) Neg() G1 {
	var r G1
	r.p.Neg(&a.p)
	return r
}

func (a G1) Mul(s Scalar) G1 {
	var r G1
	r.p.ScalarMultiplication(&a.p, s.BigInt())
	return r
}

func (a G1) Equal(b G1) bool { return a.p.Equal(&b.p) }

func (a G1) IsIdentity() bool { return a.p.IsInfinity() }

func (a G1) Bytes() []byte {
	b := a.p.Bytes()
	return b[:]
}

// G2 is an affine BN254 point on the sextic twist over Fp².
type G2 struct {
	p gnark.G2Affine
}

// G2FromAffine wraps a gnark-crypto affine point.
func G2FromAffine(p gnark.G2Affine) G2 { return G2{p: p} }

// Affine returns the underlying gnark-crypto point.
func (a G2) Affine() gnark.G2Affine { return a.p }

func (a G2) Add(b G2) G2 {
	var j gnark.G2Jac
	j.FromAffine(&a.p)
	j.AddMixed(&b.p)
	var r G2
	r.p.FromJacobian(&j)
	return r
}

func (a G2) Sub(b G2) G2 { return a.Add(b.Neg()) }

func (a G2) Neg() G2 {
	var r G2
	r.p.Neg(&a.p)
	return r
}

func (a G2) Mul(s Scalar) G2 {
	var r G2
	r.p.ScalarMultiplication(&a.p, s.BigInt())
	return r
}

func (a G2) Equal(b G2) bool { return a.p.Equal(&b.p) }

func (a G2) IsIdentity() bool { return a.p.IsInfinity() }

func (a G2) Bytes() []byte {
	b := a.p.Bytes()
	return b[:]
}

type GT struct {
	v gnark.GT
}

func (a GT) Mul(b GT) GT {
	var r GT
	r.v.Mul(&a.v, &b.v)
	return r
}

func (a GT) Equal(b GT) bool { return a.v.Equal(&b.v) }

func (a GT) IsOne() bool {
	var one gnark.GT
	one.SetOne()
	return a.v.Equal(&one)
}

func (a GT) IsZero() bool { return a.v.IsZero() }
