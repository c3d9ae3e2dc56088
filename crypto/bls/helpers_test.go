package bls

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eth2030/aggbls/crypto/pairing"
	"github.com/eth2030/aggbls/crypto/pairing/bls12381"
	"github.com/eth2030/aggbls/crypto/pairing/bn254"
)

type (
	zScalar  = bls12381.Scalar
	zG1      = bls12381.G1
	zG2      = bls12381.G2
	zGT      = bls12381.GT
	zKeypair = Keypair[zScalar, zG1, zG2, zGT]
	zPoP     = PoP[zScalar, zG1, zG2, zGT]

	bn254Scalar = bn254.Scalar
	bn254G1     = bn254.G1
	bn254G2     = bn254.G2
	bn254GT     = bn254.GT
)

// seeded returns a deterministic randomness source.
func seeded(seed byte) io.Reader {
	var s [32]byte
	s[0] = seed
	return rand.NewChaCha8(s)
}

// scalarBytes encodes v as a canonical 32-byte scalar.
func scalarBytes(v uint64) []byte {
	b := make([]byte, pairing.ScalarBytes)
	binary.BigEndian.PutUint64(b[pairing.ScalarBytes-8:], v)
	return b
}

func flipBit(b []byte, i int) []byte {
	c := bytes.Clone(b)
	c[i/8] ^= 1 << (i % 8)
	return c
}

func newKeypair[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]](t *testing.T, e Engine[S, PK, Sig, GT], rng io.Reader) *Keypair[S, PK, Sig, GT] {
	t.Helper()
	kp, err := GenerateKeypair[S, PK, Sig, GT](e, rng)
	require.NoError(t, err)
	return kp
}

func zKey(t *testing.T, rng io.Reader) *zKeypair {
	t.Helper()
	return newKeypair[zScalar, zG1, zG2, zGT](t, Z, rng)
}

// testEngines runs engineSuite against every engine in the package, once
// per orientation and curve plus PoP-wrapped variants.
func testEngines(t *testing.T) {
	t.Run("Z", func(t *testing.T) {
		engineSuite[zScalar, zG1, zG2, zGT](t, Z)
	})
	t.Run("TinyZ", func(t *testing.T) {
		engineSuite[zScalar, zG2, zG1, zGT](t, TinyZ)
	})
	t.Run("BN", func(t *testing.T) {
		engineSuite[bn254.Scalar, bn254.G1, bn254.G2, bn254.GT](t, BN)
	})
	t.Run("TinyBN", func(t *testing.T) {
		engineSuite[bn254.Scalar, bn254.G2, bn254.G1, bn254.GT](t, TinyBN)
	})
	t.Run("PoP(Z)", func(t *testing.T) {
		engineSuite[zScalar, zG1, zG2, zGT](t, zPoP{Inner: Z})
	})
	t.Run("PoP(TinyBN)", func(t *testing.T) {
		engineSuite[bn254.Scalar, bn254.G2, bn254.G1, bn254.GT](t, PoP[bn254.Scalar, bn254.G2, bn254.G1, bn254.GT]{Inner: TinyBN})
	})
}
