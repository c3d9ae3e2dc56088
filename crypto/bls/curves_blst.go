//go:build blst

package bls

import "github.com/eth2030/aggbls/crypto/pairing/blst"

// Engines over BLS12-381 backed by blst. They produce the same encodings as
// Z and TinyZ.
type (
	ZBLSBlst     = Standard[blst.Scalar, blst.G1, blst.G2, blst.GT]
	TinyZBLSBlst = Inverted[blst.Scalar, blst.G1, blst.G2, blst.GT]
)

var (
	ZBlst     = ZBLSBlst{Curve: blst.Curve{}}
	TinyZBlst = TinyZBLSBlst{Curve: blst.Curve{}}
)
