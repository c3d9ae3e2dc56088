// Package pairingtest checks a pairing.Curve implementation against the
// algebraic laws package bls relies on.
package pairingtest

import (
	"bytes"
	"encoding/binary"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eth2030/aggbls/crypto/pairing"
)

// Run exercises c. G1Size and G2Size must be the compressed encoding sizes.
func Run[S pairing.Scalar[S], G1 pairing.Point[G1, S], G2 pairing.Point[G2, S], GT pairing.Target[GT]](t *testing.T, c pairing.Curve[S, G1, G2, GT]) {
	var seed [32]byte
	copy(seed[:], c.Name())
	rng := rand.NewChaCha8(seed)
	dst := "PAIRINGTEST_XMD:SHA-256_" + c.MapToCurve() + "_RO_"

	random := func() S {
		s, err := c.RandomScalar(rng)
		require.NoError(t, err)
		return s
	}

	t.Run("ScalarField", func(t *testing.T) {
		a, b := random(), random()
		one := c.ScalarFromUint64(1)
		require.True(t, a.Add(b).Sub(b).Equal(a))
		require.True(t, a.Add(a.Neg()).IsZero())
		require.True(t, a.Mul(a.Inverse()).Equal(one))
		require.True(t, c.ScalarFromUint64(0).Inverse().IsZero())

		sq := a.Mul(a)
		root, ok := sq.Sqrt()
		require.True(t, ok)
		require.True(t, root.Mul(root).Equal(sq))
	})

	t.Run("ScalarEncoding", func(t *testing.T) {
		a := random()
		b := a.Bytes()
		require.Len(t, b, pairing.ScalarBytes)
		back, err := c.ScalarFromBytes(b)
		require.NoError(t, err)
		require.True(t, back.Equal(a))

		five := make([]byte, pairing.ScalarBytes)
		binary.BigEndian.PutUint64(five[24:], 5)
		s, err := c.ScalarFromBytes(five)
		require.NoError(t, err)
		require.True(t, s.Equal(c.ScalarFromUint64(5)))

		_, err = c.ScalarFromBytes(bytes.Repeat([]byte{0xff}, pairing.ScalarBytes))
		require.ErrorIs(t, err, pairing.ErrInvalidScalar)
		_, err = c.ScalarFromBytes(five[1:])
		require.ErrorIs(t, err, pairing.ErrInvalidScalar)
	})

	t.Run("GroupLaws", func(t *testing.T) {
		a, b := random(), random()
		g1, g2 := c.G1Generator(), c.G2Generator()
		require.True(t, g1.Mul(a).Add(g1.Mul(b)).Equal(g1.Mul(a.Add(b))))
		require.True(t, g2.Mul(a).Sub(g2.Mul(b)).Equal(g2.Mul(a.Sub(b))))
		require.True(t, g1.Add(g1.Neg()).IsIdentity())
		require.True(t, g2.Mul(c.ScalarFromUint64(0)).IsIdentity())
		require.False(t, g1.IsIdentity())
	})

	t.Run("PointEncoding", func(t *testing.T) {
		p := c.G1Generator().Mul(random())
		q := c.G2Generator().Mul(random())
		require.Len(t, p.Bytes(), c.G1Size())
		require.Len(t, q.Bytes(), c.G2Size())

		p2, err := c.G1FromBytes(p.Bytes())
		require.NoError(t, err)
		require.True(t, p2.Equal(p))
		q2, err := c.G2FromBytes(q.Bytes())
		require.NoError(t, err)
		require.True(t, q2.Equal(q))

		_, err = c.G1FromBytes(p.Bytes()[1:])
		require.Error(t, err)
		_, err = c.G2FromBytes(append(q.Bytes(), 0))
		require.Error(t, err)
	})

	t.Run("HashToCurve", func(t *testing.T) {
		h1, err := c.HashToG1([]byte("msg"), []byte(dst))
		require.NoError(t, err)
		again, err := c.HashToG1([]byte("msg"), []byte(dst))
		require.NoError(t, err)
		require.True(t, h1.Equal(again))
		other, err := c.HashToG1([]byte("msg"), []byte(dst+"2"))
		require.NoError(t, err)
		require.False(t, h1.Equal(other))

		h2, err := c.HashToG2([]byte("msg"), []byte(dst))
		require.NoError(t, err)
		require.False(t, h2.IsIdentity())
		decoded, err := c.G2FromBytes(h2.Bytes())
		require.NoError(t, err)
		require.True(t, decoded.Equal(h2))
	})

	t.Run("Bilinearity", func(t *testing.T) {
		a, b := random(), random()
		g1, g2 := c.G1Generator(), c.G2Generator()

		lhs, ok := pairing.Pair(c, g1.Mul(a), g2.Mul(b))
		require.True(t, ok)
		rhs, ok := pairing.Pair(c, g1.Mul(a.Mul(b)), g2)
		require.True(t, ok)
		require.True(t, lhs.Equal(rhs))
		require.False(t, lhs.IsOne())

		// e(aP, Q)·e(−aP, Q) = 1 with one Miller loop.
		f, err := c.MillerLoop([]G1{g1.Mul(a), g1.Mul(a).Neg()}, []G2{g2, g2})
		require.NoError(t, err)
		r, ok := c.FinalExponentiation(f)
		require.True(t, ok)
		require.True(t, r.IsOne())
	})

	t.Run("MillerLoopEdges", func(t *testing.T) {
		f, err := c.MillerLoop(nil, nil)
		require.NoError(t, err)
		require.True(t, f.Equal(c.One()))

		_, err = c.MillerLoop([]G1{c.G1Generator()}, nil)
		require.ErrorIs(t, err, pairing.ErrPairsMismatch)

		// Pairs touching the identity contribute nothing.
		id := c.G1Generator().Sub(c.G1Generator())
		f, err = c.MillerLoop([]G1{id}, []G2{c.G2Generator()})
		require.NoError(t, err)
		r, ok := c.FinalExponentiation(f)
		require.True(t, ok)
		require.True(t, r.IsOne())

		var zero GT
		require.True(t, zero.IsZero())
		_, ok = c.FinalExponentiation(zero)
		require.False(t, ok)
	})
}
