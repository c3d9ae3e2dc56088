package bls

import (
	"io"

	"github.com/pkg/errors"

	"github.com/eth2030/aggbls/crypto/pairing"
)

// Keypair is a secret scalar and its public key s·g under one engine.
type Keypair[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]] struct {
	engine Engine[S, PK, Sig, GT]
	secret S
	public PK
}

// GenerateKeypair draws a fresh nonzero secret key from rng.
func GenerateKeypair[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]](e Engine[S, PK, Sig, GT], rng io.Reader) (*Keypair[S, PK, Sig, GT], error) {
	for {
		sk, err := e.Generate(rng)
		if err != nil {
			return nil, errors.Wrap(err, "bls: generating secret key")
		}
		if sk.IsZero() {
			continue
		}
		e.recorder().KeysGenerated.Inc()
		return KeypairFromSecret(e, sk)
	}
}

// KeypairFromSecret derives the public key for sk. A zero secret is
// rejected since every signature under it is the identity.
func KeypairFromSecret[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]](e Engine[S, PK, Sig, GT], sk S) (*Keypair[S, PK, Sig, GT], error) {
	if sk.IsZero() {
		return nil, errors.Wrap(pairing.ErrInvalidScalar, "bls: zero secret key")
	}
	return &Keypair[S, PK, Sig, GT]{
		engine: e,
		secret: sk,
		public: e.PublicKeyGenerator().Mul(sk),
	}, nil
}

// KeypairFromBytes decodes a canonical 32-byte secret key.
func KeypairFromBytes[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]](e Engine[S, PK, Sig, GT], b []byte) (*Keypair[S, PK, Sig, GT], error) {
	sk, err := e.ScalarFromBytes(b)
	if err != nil {
		return nil, err
	}
	return KeypairFromSecret(e, sk)
}

func (kp *Keypair[S, PK, Sig, GT]) Engine() Engine[S, PK, Sig, GT] { return kp.engine }
func (kp *Keypair[S, PK, Sig, GT]) PublicKey() PK                  { return kp.public }
func (kp *Keypair[S, PK, Sig, GT]) SecretBytes() []byte            { return kp.secret.Bytes() }

// Sign returns s·H(m).
func (kp *Keypair[S, PK, Sig, GT]) Sign(m Message) Sig {
	return kp.engine.HashToSignatureCurve(m[:]).Mul(kp.secret)
}

// SignedMessage signs m and bundles it with the public key.
func (kp *Keypair[S, PK, Sig, GT]) SignedMessage(m Message) *SignedMessage[S, PK, Sig, GT] {
	return NewSignedMessage(kp.engine, m, kp.public, kp.Sign(m))
}

// ProvenKey returns the public key as proven: holding the secret is the
// possession a proof would show.
func (kp *Keypair[S, PK, Sig, GT]) ProvenKey() ProvenKey[PK] {
	return ProvenKey[PK]{pk: kp.public}
}
