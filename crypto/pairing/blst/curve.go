//go:build blst

package blst

import (
	"io"

	"github.com/pkg/errors"
	blst "github.com/supranational/blst/bindings/go"

	"github.com/eth2030/aggbls/crypto/pairing"
	"github.com/eth2030/aggbls/crypto/pairing/bls12381"
)

// Scalar is the BLS12-381 scalar field element, shared with the gnark backend.
type Scalar = bls12381.Scalar

// Compressed encoding sizes for the MinPk layout.
const (
	G1Size = blst.BLST_P1_COMPRESS_BYTES
	G2Size = blst.BLST_P2_COMPRESS_BYTES
)

// Curve is BLS12-381 backed by blst. Fp12MillerLoopN takes its arguments as
// (G2 points, G1 points); MillerLoop hides that and keeps the native
// (G1, G2) order of pairing.Curve.
type Curve struct{}

var _ pairing.Curve[Scalar, G1, G2, GT] = Curve{}

func (Curve) Name() string { return "BLS12381" }

func (Curve) MapToCurve() string { return "SSWU" }

func (Curve) RandomScalar(rng io.Reader) (Scalar, error) {
	return bls12381.Curve{}.RandomScalar(rng)
}

func (Curve) ScalarFromBytes(b []byte) (Scalar, error) {
	return bls12381.Curve{}.ScalarFromBytes(b)
}

func (Curve) ScalarFromUint64(v uint64) Scalar {
	return bls12381.Curve{}.ScalarFromUint64(v)
}

func (Curve) G1Generator() G1 { return G1{p: *blst.P1Generator().ToAffine()} }

func (Curve) G2Generator() G2 { return G2{p: *blst.P2Generator().ToAffine()} }

func (Curve) HashToG1(msg, dst []byte) (G1, error) {
	p := blst.HashToG1(msg, dst, nil)
	if p == nil {
		return G1{}, errors.New("blst: hash to G1 failed")
	}
	return G1{p: *p.ToAffine()}, nil
}

func (Curve) HashToG2(msg, dst []byte) (G2, error) {
	p := blst.HashToG2(msg, dst, nil)
	if p == nil {
		return G2{}, errors.New("blst: hash to G2 failed")
	}
	return G2{p: *p.ToAffine()}, nil
}

func (Curve) G1FromBytes(b []byte) (G1, error) {
	if len(b) != G1Size {
		return G1{}, errors.Wrapf(pairing.ErrInvalidPoint, "blst: G1 length %d", len(b))
	}
	p := new(blst.P1Affine).Uncompress(b)
	if p == nil {
		return G1{}, errors.Wrap(pairing.ErrInvalidPoint, "blst: G1 uncompress")
	}
	if !p.InG1() {
		return G1{}, errors.Wrap(pairing.ErrInvalidPoint, "blst: G1 subgroup check")
	}
	return G1{p: *p}, nil
}

func (Curve) G2FromBytes(b []byte) (G2, error) {
	if len(b) != G2Size {
		return G2{}, errors.Wrapf(pairing.ErrInvalidPoint, "blst: G2 length %d", len(b))
	}
	p := new(blst.P2Affine).Uncompress(b)
	if p == nil {
		return G2{}, errors.Wrap(pairing.ErrInvalidPoint, "blst: G2 uncompress")
	}
	if !p.InG2() {
		return G2{}, errors.Wrap(pairing.ErrInvalidPoint, "blst: G2 subgroup check")
	}
	return G2{p: *p}, nil
}

func (Curve) G1Size() int { return G1Size }

func (Curve) G2Size() int { return G2Size }

func (c Curve) MillerLoop(p []G1, q []G2) (GT, error) {
	if len(p) != len(q) {
		return GT{}, pairing.ErrPairsMismatch
	}
	ps := make([]blst.P1Affine, 0, len(p))
	qs := make([]blst.P2Affine, 0, len(q))
	for i := range p {
		// e(O, Q) = e(P, O) = 1, and blst does not filter the identity.
		if p[i].IsIdentity() || q[i].IsIdentity() {
			continue
		}
		ps = append(ps, p[i].p)
		qs = append(qs, q[i].p)
	}
	if len(ps) == 0 {
		return c.One(), nil
	}
	return GT{v: *blst.Fp12MillerLoopN(qs, ps)}, nil
}

func (Curve) FinalExponentiation(f GT) (GT, bool) {
	if f.IsZero() {
		return GT{}, false
	}
	r := f.v
	r.FinalExp()
	return GT{v: r}, true
}

func (Curve) One() GT { return GT{v: blst.Fp12One()} }
