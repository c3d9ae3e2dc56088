package bls

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMessageKnownAnswers(t *testing.T) {
	tests := []struct {
		context, msg string
		want         string
	}{
		{"", "test", "8409911e9829a369181579342ab5d8806875fef5fff5d5be0b3305d6356d6a47"},
		{"pop", "", "a55a38590c5b28ce13aca71263b7a4ae7f2284a6ea9d3b33e2c3b5471999c4ea"},
		{"ctx1", "hello", "843c60102c44b5f3ef151d23824bf8d50eea476457e741eafd49855459089c8e"},
	}
	for _, tt := range tests {
		m := NewMessage([]byte(tt.context), []byte(tt.msg))
		require.Equal(t, tt.want, m.String(), "%q/%q", tt.context, tt.msg)
		require.Equal(t, tt.want, hex.EncodeToString(m.Bytes()))
	}
}

func TestMessageDomainSeparation(t *testing.T) {
	b := []byte("payload")
	require.NotEqual(t, NewMessage([]byte("ctx1"), b), NewMessage([]byte("ctx2"), b))

	// The length prefix keeps (context, message) splits apart.
	require.NotEqual(t, NewMessage([]byte("ab"), []byte("c")), NewMessage([]byte("a"), []byte("bc")))

	require.Equal(t, NewMessage(nil, b), MessageFromBytes(b))
	require.Equal(t, NewMessage([]byte{}, b), MessageFromBytes(b))
}

func TestMessageAccessors(t *testing.T) {
	m := MessageFromBytes([]byte("test"))
	out := m.Bytes()
	out[0] ^= 0xff
	require.NotEqual(t, out[0], m[0])

	a, b := Message{1}, Message{2}
	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, b.Compare(a))
	require.Zero(t, a.Compare(a))

	// Messages are comparable map keys.
	seen := map[Message]bool{a: true}
	require.True(t, seen[Message{1}])
}

func TestHashMessageUsesDigest(t *testing.T) {
	raw := []byte("test")
	m := MessageFromBytes(raw)
	h := HashMessage[zScalar, zG1, zG2, zGT](Z, m)
	require.True(t, h.Equal(Z.HashToSignatureCurve(m[:])))
	require.False(t, h.Equal(Z.HashToSignatureCurve(raw)))
}
