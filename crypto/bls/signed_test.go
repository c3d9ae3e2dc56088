package bls

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eth2030/aggbls/crypto/pairing/bls12381"
	"github.com/eth2030/aggbls/metrics"
)

func TestOneShotPanicsOnReuse(t *testing.T) {
	seq := OneShot(pairOf(MessageFromBytes([]byte("a")), 1))

	n := 0
	for range seq {
		n++
	}
	require.Equal(t, 1, n)
	require.PanicsWithValue(t, ErrSequenceConsumed, func() {
		for range seq {
		}
	})
}

func TestOneShotEarlyBreakConsumes(t *testing.T) {
	seq := OneShot(func(yield func(int, int) bool) {
		for i := range 10 {
			if !yield(i, i) {
				return
			}
		}
	})
	for range seq {
		break
	}
	require.Panics(t, func() {
		for range seq {
		}
	})
}

func TestSignedMessageSequenceIsFreshPerCall(t *testing.T) {
	kp := zKey(t, seeded(30))
	sm := kp.SignedMessage(MessageFromBytes([]byte("fresh")))
	for range 2 {
		for m, pk := range sm.MessagesAndPublicKeys() {
			require.Equal(t, sm.Message(), m)
			require.True(t, pk.Equal(kp.PublicKey()))
		}
	}
	require.True(t, sm.Verify())
	require.True(t, sm.Verify())
}

// lazySigned is a caller-defined Signed whose pairs are produced on demand
// and can be read only once.
type lazySigned struct {
	keys []*zKeypair
	msgs []Message
	sig  zG2
	seq  iter.Seq2[Message, zG1]
}

func newLazySigned(keys []*zKeypair, msgs []Message) *lazySigned {
	l := &lazySigned{keys: keys, msgs: msgs}
	for i, kp := range keys {
		s := kp.Sign(msgs[i])
		if i == 0 {
			l.sig = s
		} else {
			l.sig = l.sig.Add(s)
		}
	}
	l.seq = OneShot(func(yield func(Message, zG1) bool) {
		for i, kp := range l.keys {
			if !yield(l.msgs[i], kp.PublicKey()) {
				return
			}
		}
	})
	return l
}

func (l *lazySigned) Signature() zG2                                 { return l.sig }
func (l *lazySigned) MessagesAndPublicKeys() iter.Seq2[Message, zG1] { return l.seq }
func (l *lazySigned) Verify() bool {
	return VerifySimple[zScalar, zG1, zG2, zGT](Z, l)
}

func TestVerifySimpleConsumesOnce(t *testing.T) {
	rng := seeded(31)
	keys := []*zKeypair{zKey(t, rng), zKey(t, rng), zKey(t, rng)}
	msgs := []Message{
		MessageFromBytes([]byte("one")),
		MessageFromBytes([]byte("two")),
		MessageFromBytes([]byte("three")),
	}

	var s Signed[zG1, zG2] = newLazySigned(keys, msgs)
	require.True(t, s.Verify())
	require.PanicsWithValue(t, ErrSequenceConsumed, func() { s.Verify() })
}

func TestVerifySimpleRecordsMetrics(t *testing.T) {
	m := metrics.NewBLS(metrics.NewRegistry())
	e := ZBLS{Curve: bls12381.Curve{}, Metrics: m}
	kp := newKeypair[zScalar, zG1, zG2, zGT](t, e, seeded(32))
	msg := MessageFromBytes([]byte("metrics"))

	require.True(t, kp.SignedMessage(msg).Verify())
	require.False(t, NewSignedMessage[zScalar, zG1, zG2, zGT](e, msg, kp.PublicKey(), kp.Sign(Message{})).Verify())

	require.EqualValues(t, 1, m.KeysGenerated.Value())
	require.EqualValues(t, 2, m.Verifications.Value())
	require.EqualValues(t, 1, m.VerifyFailures.Value())
	require.EqualValues(t, 2, m.VerifyPairs.Count())
	require.EqualValues(t, 2, m.VerifyTime.Count())

	// An engine without a metric set records nowhere.
	require.True(t, zKey(t, seeded(33)).SignedMessage(msg).Verify())
	require.EqualValues(t, 2, m.Verifications.Value())
}
