package bls

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type zDelinearized = Delinearized[zScalar, zG1, zG2, zGT]

func newZDelinearized() *zDelinearized {
	return NewDelinearized[zScalar, zG1, zG2, zGT](Z)
}

func TestDelinearizedSharedMessage(t *testing.T) {
	rng := seeded(80)
	m := MessageFromBytes([]byte("shared"))
	d := newZDelinearized()
	require.False(t, d.Verify(), "empty aggregate")

	for range 4 {
		require.NoError(t, d.Add(zKey(t, rng).SignedMessage(m)))
	}
	require.NoError(t, d.Add(zKey(t, rng).SignedMessage(MessageFromBytes([]byte("other")))))
	require.Equal(t, 5, d.Len())
	require.True(t, d.Verify())
}

func TestDelinearizedScalesKeys(t *testing.T) {
	rng := seeded(81)
	kp1, kp2 := zKey(t, rng), zKey(t, rng)
	m := MessageFromBytes([]byte("scaled"))
	d := newZDelinearized()
	require.NoError(t, d.Add(kp1.SignedMessage(m)))
	require.NoError(t, d.Add(kp2.SignedMessage(m)))

	var keys []zG1
	for _, pk := range d.MessagesAndPublicKeys() {
		keys = append(keys, pk)
	}
	require.Len(t, keys, 2)
	require.False(t, keys[0].Equal(kp1.PublicKey()))
	require.False(t, keys[1].Equal(kp2.PublicKey()))
	// The plain sum of signatures is not the aggregate.
	require.False(t, d.Signature().Equal(kp1.Sign(m).Add(kp2.Sign(m))))

	// Coefficients commit to the whole key list.
	sig := d.Signature()
	require.NoError(t, d.Add(zKey(t, rng).SignedMessage(m)))
	require.False(t, d.Signature().Equal(sig.Add(d.sigs[2].Mul(d.coefficients()[2]))))
	require.True(t, d.Verify())
}

// A rogue key chosen as a·g − victim passes a plain same-message check but
// not a delinearized one.
func TestDelinearizedDefeatsRogueKey(t *testing.T) {
	rng := seeded(82)
	victim, attacker := zKey(t, rng), zKey(t, rng)
	m := MessageFromBytes([]byte("transfer everything"))
	rogue := attacker.PublicKey().Sub(victim.PublicKey())
	forged := attacker.Sign(m)

	require.True(t, NewSignedMessage[zScalar, zG1, zG2, zGT](Z, m, victim.PublicKey().Add(rogue), forged).Verify())

	// The attacker must split the forgery between the two keys; any split
	// fails once each key is scaled by its own coefficient.
	h := HashMessage[zScalar, zG1, zG2, zGT](Z, m)
	d := newZDelinearized()
	require.NoError(t, d.AddMessage(m, victim.PublicKey(), h.Sub(h)))
	require.NoError(t, d.AddMessage(m, rogue, forged))
	require.False(t, d.Verify())
}

func TestDelinearizedRejectsIdentityKey(t *testing.T) {
	d := newZDelinearized()
	g := Z.PublicKeyGenerator()
	h := Z.HashToSignatureCurve(nil)
	require.ErrorIs(t, d.AddMessage(Message{}, g.Sub(g), h.Sub(h)), ErrIdentityKey)
	require.Zero(t, d.Len())
}

func TestDelinearizedTamper(t *testing.T) {
	rng := seeded(83)
	kp1, kp2 := zKey(t, rng), zKey(t, rng)
	m1, m2 := MessageFromBytes([]byte("m1")), MessageFromBytes([]byte("m2"))
	d := newZDelinearized()
	require.NoError(t, d.Add(kp1.SignedMessage(m1)))
	require.NoError(t, d.AddMessage(m2, kp2.PublicKey(), kp2.Sign(m1)))
	require.False(t, d.Verify())
}
