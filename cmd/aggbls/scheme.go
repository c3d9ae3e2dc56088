package main

import (
	"context"
	"encoding/hex"
	"io"
	"iter"

	"github.com/pkg/errors"

	"github.com/eth2030/aggbls/crypto/bls"
	"github.com/eth2030/aggbls/crypto/pairing"
	"github.com/eth2030/aggbls/crypto/pairing/bls12381"
	"github.com/eth2030/aggbls/crypto/pairing/bn254"
	"github.com/eth2030/aggbls/metrics"
)

var (
	ErrMissingProof = errors.New("public key has no proof of possession")
	ErrNoEntries    = errors.New("bundle has no entries")
)

// Entry is one signer of a bundle. Binary fields are hex encoded.
type Entry struct {
	PublicKey string `yaml:"public_key"`
	Message   string `yaml:"message"`
	Proof     string `yaml:"proof,omitempty"`
}

// Bundle is an aggregate signature with everything needed to verify it.
type Bundle struct {
	Signature string  `yaml:"signature"`
	Entries   []Entry `yaml:"entries"`
}

// Key is a freshly generated keypair, hex encoded.
type Key struct {
	SecretKey string `yaml:"secret_key" json:"secret_key"`
	PublicKey string `yaml:"public_key" json:"public_key"`
	Proof     string `yaml:"proof,omitempty" json:"proof,omitempty"`
}

// Scheme is a configured engine behind a byte-level interface, so the
// command line never deals with group types.
type Scheme interface {
	Name() string
	GenerateKey(rng io.Reader) (Key, error)
	Sign(secretKey []byte, msg string) ([]byte, error)
	Aggregate(signatures [][]byte) ([]byte, error)
	// VerifyBundles decodes every bundle, then verifies them concurrently.
	// Decoding failures are returned as errors; bad signatures are false.
	VerifyBundles(ctx context.Context, bundles []Bundle, workers int) ([]bool, error)
}

// NewScheme returns the scheme selected by cfg. Verification and key
// metrics are recorded into m, which may be nil.
func NewScheme(cfg Config, m *metrics.BLS) (Scheme, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	domain := []byte(cfg.Context)
	switch {
	case cfg.Curve == CurveBLS12381 && cfg.Orientation == OrientationStandard:
		return newScheme[bls12381.Scalar, bls12381.G1, bls12381.G2, bls12381.GT](bls.ZBLS{Curve: bls12381.Curve{}, Metrics: m}, cfg.PoP, domain, m), nil
	case cfg.Curve == CurveBLS12381 && cfg.Orientation == OrientationInverted:
		return newScheme[bls12381.Scalar, bls12381.G2, bls12381.G1, bls12381.GT](bls.TinyZBLS{Curve: bls12381.Curve{}, Metrics: m}, cfg.PoP, domain, m), nil
	case cfg.Curve == CurveBN254 && cfg.Orientation == OrientationStandard:
		return newScheme[bn254.Scalar, bn254.G1, bn254.G2, bn254.GT](bls.BNBLS{Curve: bn254.Curve{}, Metrics: m}, cfg.PoP, domain, m), nil
	default:
		return newScheme[bn254.Scalar, bn254.G2, bn254.G1, bn254.GT](bls.TinyBNBLS{Curve: bn254.Curve{}, Metrics: m}, cfg.PoP, domain, m), nil
	}
}

type scheme[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]] struct {
	base    base[S, PK, Sig, GT]
	pop     *bls.PoP[S, PK, Sig, GT] // nil unless proofs of possession are required
	domain  []byte
	metrics *metrics.BLS
}

// base is the subset of engines that scheme wraps: an orientation whose keys
// decode without ceremony.
type base[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]] interface {
	bls.Engine[S, PK, Sig, GT]
	bls.PublicKeyDeserializer[PK]
}

func newScheme[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]](e base[S, PK, Sig, GT], pop bool, domain []byte, m *metrics.BLS) *scheme[S, PK, Sig, GT] {
	s := &scheme[S, PK, Sig, GT]{base: e, domain: domain, metrics: m}
	if pop {
		s.pop = &bls.PoP[S, PK, Sig, GT]{Inner: e}
	}
	return s
}

// engine is the engine keys and signatures are made with.
func (s *scheme[S, PK, Sig, GT]) engine() bls.Engine[S, PK, Sig, GT] {
	if s.pop != nil {
		return *s.pop
	}
	return s.base
}

func (s *scheme[S, PK, Sig, GT]) Name() string { return s.engine().Name() }

func (s *scheme[S, PK, Sig, GT]) message(msg string) bls.Message {
	return bls.NewMessage(s.domain, []byte(msg))
}

func (s *scheme[S, PK, Sig, GT]) GenerateKey(rng io.Reader) (Key, error) {
	kp, err := bls.GenerateKeypair(s.engine(), rng)
	if err != nil {
		return Key{}, err
	}
	k := Key{
		SecretKey: hex.EncodeToString(kp.SecretBytes()),
		PublicKey: hex.EncodeToString(kp.PublicKey().Bytes()),
	}
	if s.pop != nil {
		k.Proof = hex.EncodeToString(bls.ProvePossession(kp).Bytes())
	}
	return k, nil
}

func (s *scheme[S, PK, Sig, GT]) Sign(secretKey []byte, msg string) ([]byte, error) {
	kp, err := bls.KeypairFromBytes(s.engine(), secretKey)
	if err != nil {
		return nil, errors.Wrap(err, "decoding secret key")
	}
	return kp.Sign(s.message(msg)).Bytes(), nil
}

func (s *scheme[S, PK, Sig, GT]) Aggregate(signatures [][]byte) ([]byte, error) {
	if len(signatures) == 0 {
		return nil, bls.ErrEmptyAggregate
	}
	var agg Sig
	for i, b := range signatures {
		sig, err := s.engine().DecodeSignature(b)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		if i == 0 {
			agg = sig
		} else {
			agg = agg.Add(sig)
		}
	}
	return agg.Bytes(), nil
}

func (s *scheme[S, PK, Sig, GT]) VerifyBundles(ctx context.Context, bundles []Bundle, workers int) ([]bool, error) {
	items := make([]bls.Signed[PK, Sig], len(bundles))
	for i, b := range bundles {
		item, err := s.decode(b)
		if err != nil {
			return nil, errors.Wrapf(err, "bundle %d", i)
		}
		items[i] = item
	}
	return bls.VerifyBatch(ctx, items, workers, bls.WithMetrics(s.metrics))
}

// decode turns a bundle into a verifiable aggregate. Without proofs of
// possession messages must be distinct; with them, signers may share one.
func (s *scheme[S, PK, Sig, GT]) decode(b Bundle) (bls.Signed[PK, Sig], error) {
	if len(b.Entries) == 0 {
		return nil, ErrNoEntries
	}
	sigBytes, err := hex.DecodeString(b.Signature)
	if err != nil {
		return nil, errors.Wrap(err, "signature hex")
	}
	sig, err := s.engine().DecodeSignature(sigBytes)
	if err != nil {
		return nil, err
	}
	if s.pop != nil {
		return s.decodeProven(sig, b.Entries)
	}
	return s.decodeDistinct(sig, b.Entries)
}

func (s *scheme[S, PK, Sig, GT]) decodeDistinct(sig Sig, entries []Entry) (bls.Signed[PK, Sig], error) {
	list := &entryList[S, PK, Sig, GT]{engine: s.engine(), signature: sig}
	for i, e := range entries {
		pkBytes, err := hex.DecodeString(e.PublicKey)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d public key hex", i)
		}
		pk, err := s.base.DeserializePublicKey(pkBytes)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		list.messages = append(list.messages, s.message(e.Message))
		list.keys = append(list.keys, pk)
	}
	distinct := bls.NewDistinctMessages(s.engine())
	if err := distinct.Add(list); err != nil {
		return nil, err
	}
	return distinct, nil
}

func (s *scheme[S, PK, Sig, GT]) decodeProven(sig Sig, entries []Entry) (bls.Signed[PK, Sig], error) {
	agg := bls.NewPoPAggregate(*s.pop)
	agg.AddSignature(sig)
	for i, e := range entries {
		key, err := s.provenKey(e)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		if err := agg.AddPublicKey(s.message(e.Message), key); err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
	}
	return agg, nil
}

// provenKey loads an entry's key through its proof of possession.
func (s *scheme[S, PK, Sig, GT]) provenKey(e Entry) (bls.ProvenKey[PK], error) {
	var none bls.ProvenKey[PK]
	pkBytes, err := hex.DecodeString(e.PublicKey)
	if err != nil {
		return none, errors.Wrap(err, "public key hex")
	}
	if e.Proof == "" {
		return none, ErrMissingProof
	}
	proofBytes, err := hex.DecodeString(e.Proof)
	if err != nil {
		return none, errors.Wrap(err, "proof hex")
	}
	proof, err := s.pop.DecodeSignature(proofBytes)
	if err != nil {
		return none, errors.Wrap(err, "decoding proof")
	}
	return s.pop.VerifiedPublicKey(pkBytes, proof)
}

// entryList is a bundle's pairs under its aggregate signature, repeated
// messages included. decodeDistinct hands it to DistinctMessages, which
// refuses repeats.
type entryList[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]] struct {
	engine    bls.Engine[S, PK, Sig, GT]
	messages  []bls.Message
	keys      []PK
	signature Sig
}

func (l *entryList[S, PK, Sig, GT]) Signature() Sig { return l.signature }

func (l *entryList[S, PK, Sig, GT]) MessagesAndPublicKeys() iter.Seq2[bls.Message, PK] {
	return bls.OneShot(func(yield func(bls.Message, PK) bool) {
		for i, m := range l.messages {
			if !yield(m, l.keys[i]) {
				return
			}
		}
	})
}

func (l *entryList[S, PK, Sig, GT]) Verify() bool {
	return bls.VerifySimple[S, PK, Sig, GT](l.engine, l)
}
