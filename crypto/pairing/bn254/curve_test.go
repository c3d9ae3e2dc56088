package bn254

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eth2030/aggbls/crypto/pairing/pairingtest"
)

func TestCurve(t *testing.T) {
	pairingtest.Run[Scalar, G1, G2, GT](t, Curve{})
}

func TestSizes(t *testing.T) {
	require.Equal(t, 32, G1Size)
	require.Equal(t, 64, G2Size)
	require.Equal(t, "BN254", Curve{}.Name())
	require.Equal(t, "SVDW", Curve{}.MapToCurve())
}

func TestScalarBigInt(t *testing.T) {
	s := Curve{}.ScalarFromUint64(1 << 40)
	require.Equal(t, uint64(1<<40), s.BigInt().Uint64())
}
