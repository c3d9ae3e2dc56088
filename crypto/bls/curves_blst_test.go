//go:build blst

package bls

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eth2030/aggbls/crypto/pairing/blst"
)

func TestBlstEngines(t *testing.T) {
	t.Run("ZBlst", func(t *testing.T) {
		engineSuite[blst.Scalar, blst.G1, blst.G2, blst.GT](t, ZBlst)
	})
	t.Run("TinyZBlst", func(t *testing.T) {
		engineSuite[blst.Scalar, blst.G2, blst.G1, blst.GT](t, TinyZBlst)
	})
}

func TestBlstInteroperatesWithGnark(t *testing.T) {
	sk := scalarBytes(0xdecafbad)
	m := MessageFromBytes([]byte("interop"))

	g, err := KeypairFromBytes[zScalar, zG1, zG2, zGT](Z, sk)
	require.NoError(t, err)
	b, err := KeypairFromBytes[blst.Scalar, blst.G1, blst.G2, blst.GT](ZBlst, sk)
	require.NoError(t, err)

	require.Equal(t, g.PublicKey().Bytes(), b.PublicKey().Bytes())
	require.Equal(t, g.Sign(m).Bytes(), b.Sign(m).Bytes())

	// A gnark signature verifies under blst.
	pk, err := ZBlst.DeserializePublicKey(g.PublicKey().Bytes())
	require.NoError(t, err)
	sig, err := ZBlst.DecodeSignature(g.Sign(m).Bytes())
	require.NoError(t, err)
	require.True(t, NewSignedMessage[blst.Scalar, blst.G1, blst.G2, blst.GT](ZBlst, m, pk, sig).Verify())
}
