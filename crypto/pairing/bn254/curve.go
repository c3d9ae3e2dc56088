// Package bn254 implements pairing.Curve for the BN254 (alt_bn128) curve on
// top of gnark-crypto. Compressed points are 32 bytes in G1 and 64 bytes in
// G2, which makes this curve attractive where the EVM precompiles verify
// signatures, at roughly 100 bits of security.
package bn254

import (
	"io"

	gnark "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/pkg/errors"

	"github.com/eth2030/aggbls/crypto/pairing"
)

// Compressed encoding sizes.
const (
	G1Size = gnark.SizeOfG1AffineCompressed
	G2Size = gnark.SizeOfG2AffineCompressed
)

// wideScalarBytes is how much randomness RandomScalar reduces modulo r. The
// extra 256 bits make the reduction bias negligible.
const wideScalarBytes = 64

// Curve is BN254 in gnark-crypto's native order: the Miller loop takes
// G1 on the left and G2 on the right.
type Curve struct{}

var _ pairing.Curve[Scalar, G1, G2, GT] = Curve{}

func (Curve) Name() string { return "BN254" }

func (Curve) MapToCurve() string { return "SVDW" }

func (Curve) RandomScalar(rng io.Reader) (Scalar, error) {
	var buf [wideScalarBytes]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return Scalar{}, errors.Wrap(err, "bn254: reading scalar randomness")
	}
	var s Scalar
	s.v.SetBytes(buf[:])
	return s, nil
}

func (Curve) ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != pairing.ScalarBytes {
		return Scalar{}, errors.Wrapf(pairing.ErrInvalidScalar, "bn254: scalar length %d", len(b))
	}
	var s Scalar
	if err := s.v.SetBytesCanonical(b); err != nil {
		return Scalar{}, errors.Wrap(pairing.ErrInvalidScalar, err.Error())
	}
	return s, nil
}

func (Curve) ScalarFromUint64(v uint64) Scalar {
	var s Scalar
	s.v.SetUint64(v)
	return s
}

func (Curve) G1Generator() G1 {
	_, _, g1, _ := gnark.Generators()
	return G1{p: g1}
}

func (Curve) G2Generator() G2 {
	_, _, _, g2 := gnark.Generators()
	return G2{p: g2}
}

func (Curve) HashToG1(msg, dst []byte) (G1, error) {
	p, err := gnark.HashToG1(msg, dst)
	if err != nil {
		return G1{}, errors.Wrap(err, "bn254: hash to G1")
	}
	return G1{p: p}, nil
}

func (Curve) HashToG2(msg, dst []byte) (G2, error) {
	p, err := gnark.HashToG2(msg, dst)
	if err != nil {
		return G2{}, errors.Wrap(err, "bn254: hash to G2")
	}
	return G2{p: p}, nil
}

func (Curve) G1FromBytes(b []byte) (G1, error) {
	if len(b) != G1Size {
		return G1{}, errors.Wrapf(pairing.ErrInvalidPoint, "bn254: G1 length %d", len(b))
	}
	var r G1
	if _, err := r.p.SetBytes(b); err != nil {
		return G1{}, errors.Wrap(pairing.ErrInvalidPoint, err.Error())
	}
	return r, nil
}

func (Curve) G2FromBytes(b []byte) (G2, error) {
	if len(b) != G2Size {
		return G2{}, errors.Wrapf(pairing.ErrInvalidPoint, "bn254: G2 length %d", len(b))
	}
	var r G2
	if _, err := r.p.SetBytes(b); err != nil {
		return G2{}, errors.Wrap(pairing.ErrInvalidPoint, err.Error())
	}
	return r, nil
}

func (Curve) G1Size() int { return G1Size }

func (Curve) G2Size() int { return G2Size }

func (c Curve) MillerLoop(p []G1, q []G2) (GT, error) {
	if len(p) != len(q) {
		return GT{}, pairing.ErrPairsMismatch
	}
	// Pairs with an identity side contribute one.
	ps := make([]gnark.G1Affine, 0, len(p))
	qs := make([]gnark.G2Affine, 0, len(q))
	for i := range p {
		if p[i].IsIdentity() || q[i].IsIdentity() {
			continue
		}
		ps = append(ps, p[i].p)
		qs = append(qs, q[i].p)
	}
	if len(ps) == 0 {
		return c.One(), nil
	}
	f, err := gnark.MillerLoop(ps, qs)
	if err != nil {
		return GT{}, errors.Wrap(err, "bn254: miller loop")
	}
	return GT{v: f}, nil
}

func (Curve) FinalExponentiation(f GT) (GT, bool) {
	if f.v.IsZero() {
		return GT{}, false
	}
	return GT{v: gnark.FinalExponentiation(&f.v)}, true
}

func (Curve) One() GT {
	var r GT
	r.v.SetOne()
	return r
}
