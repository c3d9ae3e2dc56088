package bls

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/eth2030/aggbls/crypto/pairing"
)

// MessageSize is the length of a Message digest.
const MessageSize = 32

// Message is a domain-separated 32-byte digest of a signed payload. Engines
// hash Messages, never raw payloads, onto the signature curve.
type Message [MessageSize]byte

// NewMessage computes SHAKE128(context ‖ u64le(len(msg)) ‖ msg) truncated to
// 32 bytes. The length prefix keeps a context from bleeding into the payload.
func NewMessage(context, msg []byte) Message {
	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(msg)))

	h := sha3.NewShake128()
	h.Write(context)
	h.Write(lenBuf[:])
	h.Write(msg)

	var m Message
	h.Read(m[:])
	return m
}

// MessageFromBytes hashes msg under the empty context.
func MessageFromBytes(msg []byte) Message {
	return NewMessage(nil, msg)
}

// Bytes returns a copy of the digest.
func (m Message) Bytes() []byte {
	out := make([]byte, MessageSize)
	copy(out, m[:])
	return out
}

func (m Message) String() string { return hex.EncodeToString(m[:]) }

// Compare orders messages bytewise.
func (m Message) Compare(o Message) int { return bytes.Compare(m[:], o[:]) }

// HashMessage maps m onto the signature group of e.
func HashMessage[S pairing.Scalar[S], PK pairing.Point[PK, S], Sig pairing.Point[Sig, S], GT pairing.Target[GT]](e Engine[S, PK, Sig, GT], m Message) Sig {
	return e.HashToSignatureCurve(m[:])
}
