//go:build blst

package blst

import (
	blst "github.com/supranational/blst/bindings/go"
)

// infinityFlag is set in the first byte of a compressed point at infinity.
const infinityFlag = 0x40

func toBlstScalar(s Scalar) *blst.Scalar {
	return new(blst.Scalar).FromBEndian(s.Bytes())
}

type G1 struct {
	p blst.P1Affine
}

func (a G1) Add(b G1) G1 {
	var j blst.P1
	j.FromAffine(&a.p)
	j.AddAssign(&b.p)
	return G1{p: *j.ToAffine()}
}

func (a G1) Sub(b G1) G1 { return a.Add(b.Neg()) }

func (a G1) Neg() G1 {
	var p blst.P1
	p.FromAffine(&a.p)
	var neg blst.P1
	neg.SubAssign(&p)
	return G1{p: *neg.ToAffine()}
}

func (a G1) Mul(s Scalar) G1 {
	var j blst.P1
	j.FromAffine(&a.p)
	return G1{p: *j.Mult(toBlstScalar(s)).ToAffine()}
}

func (a G1) Equal(b G1) bool { return a.p.Equals(&b.p) }

func (a G1) IsIdentity() bool { return a.p.Compress()[0]&infinityFlag != 0 }

func (a G1) Bytes() []byte { return a.p.Compress() }

type G2 struct {
	p blst.P2Affine
}

func (a G2) Add(b G2) G2 {
	var j blst.P2
	j.FromAffine(&a.p)
	j.AddAssign(&b.p)
	return G2{p: *j.ToAffine()}
}

func (a G2) Sub(b G2) G2 { return a.Add(b.Neg()) }

func (a G2) Neg() G2 {
	var p blst.P2
	p.FromAffine(&a.p)
	var neg blst.P2
	neg.SubAssign(&p)
	return G2{p: *neg.ToAffine()}
}

func (a G2) Mul(s Scalar) G2 {
	var j blst.P2
	j.FromAffine(&a.p)
	return G2{p: *j.Mult(toBlstScalar(s)).ToAffine()}
}

func (a G2) Equal(b G2) bool { return a.p.Equals(&b.p) }

func (a G2) IsIdentity() bool { return a.p.Compress()[0]&infinityFlag != 0 }

func (a G2) Bytes() []byte { return a.p.Compress() }

type GT struct {
	v blst.Fp12
}

func (a GT) Mul(b GT) GT {
	r := a.v
	r.MulAssign(&b.v)
	return GT{v: r}
}

func (a GT) Equal(b GT) bool { return a.v.Equals(&b.v) }

func (a GT) IsOne() bool {
	one := blst.Fp12One()
	return a.v.Equals(&one)
}

func (a GT) IsZero() bool {
	var zero blst.Fp12
	return a.v.Equals(&zero)
}
