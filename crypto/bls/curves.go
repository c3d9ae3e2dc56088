package bls

import (
	"github.com/eth2030/aggbls/crypto/pairing/bls12381"
	"github.com/eth2030/aggbls/crypto/pairing/bn254"
)

// Engines over BLS12-381.
type (
	ZBLS     = Standard[bls12381.Scalar, bls12381.G1, bls12381.G2, bls12381.GT]
	TinyZBLS = Inverted[bls12381.Scalar, bls12381.G1, bls12381.G2, bls12381.GT]
)

// Engines over BN254.
type (
	BNBLS     = Standard[bn254.Scalar, bn254.G1, bn254.G2, bn254.GT]
	TinyBNBLS = Inverted[bn254.Scalar, bn254.G1, bn254.G2, bn254.GT]
)

var (
	Z      = ZBLS{Curve: bls12381.Curve{}}
	TinyZ  = TinyZBLS{Curve: bls12381.Curve{}}
	BN     = BNBLS{Curve: bn254.Curve{}}
	TinyBN = TinyBNBLS{Curve: bn254.Curve{}}
)

var (
	_ Engine[bls12381.Scalar, bls12381.G1, bls12381.G2, bls12381.GT] = Z
	_ Engine[bls12381.Scalar, bls12381.G2, bls12381.G1, bls12381.GT] = TinyZ
	_ Engine[bn254.Scalar, bn254.G1, bn254.G2, bn254.GT]             = BN
	_ Engine[bn254.Scalar, bn254.G2, bn254.G1, bn254.GT]             = TinyBN

	_ PublicKeyDeserializer[bls12381.G1] = Z
	_ PublicKeyDeserializer[bls12381.G2] = TinyZ

	_ Engine[bls12381.Scalar, bls12381.G1, bls12381.G2, bls12381.GT] = PoP[bls12381.Scalar, bls12381.G1, bls12381.G2, bls12381.GT]{}

	_ KeyStableEngine[bls12381.Scalar, bls12381.G1, bls12381.G2, bls12381.GT] = Z
	_ KeyStableEngine[bn254.Scalar, bn254.G2, bn254.G1, bn254.GT]             = TinyBN
	_ KeyStableEngine[bls12381.Scalar, bls12381.G1, bls12381.G2, bls12381.GT] = PoP[bls12381.Scalar, bls12381.G1, bls12381.G2, bls12381.GT]{}
)
