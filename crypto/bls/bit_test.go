package bls

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type (
	zSignerSet = SignerSet[zScalar, zG1]
	zBits      = BitSignedMessage[zScalar, zG1, zG2, zGT]
	zCounts    = CountSignedMessage[zScalar, zG1, zG2, zGT]
)

func newZBits(set *zSignerSet, m Message) *zBits {
	return NewBitSignedMessage[zScalar, zG1, zG2, zGT](Z, set, m)
}

func newZCounts(set *zSignerSet, m Message) *zCounts {
	return NewCountSignedMessage[zScalar, zG1, zG2, zGT](Z, set, m)
}

func newRoster(t *testing.T, n int, seed byte) ([]*zKeypair, *zSignerSet) {
	t.Helper()
	rng := seeded(seed)
	var (
		kps  []*zKeypair
		keys []ProvenKey[zG1]
	)
	for range n {
		kp := zKey(t, rng)
		kps = append(kps, kp)
		keys = append(keys, kp.ProvenKey())
	}
	set, err := NewSignerSet[zScalar, zG1](keys...)
	require.NoError(t, err)
	return kps, set
}

func TestSignerSet(t *testing.T) {
	kps, set := newRoster(t, 3, 60)
	require.Equal(t, 3, set.Len())
	i, ok := set.Index(kps[2].PublicKey())
	require.True(t, ok)
	require.Equal(t, 2, i)
	require.True(t, set.PublicKey(1).Equal(kps[1].PublicKey()))

	_, ok = set.Index(zKey(t, seeded(61)).PublicKey())
	require.False(t, ok)

	_, err := NewSignerSet[zScalar, zG1](kps[0].ProvenKey(), kps[1].ProvenKey(), kps[0].ProvenKey())
	require.ErrorIs(t, err, ErrDuplicateSigner)
	_, err = NewSignerSet[zScalar, zG1](kps[0].ProvenKey(), ProvenKey[zG1]{})
	require.ErrorIs(t, err, ErrIdentityKey)
}

func TestBitSignedMessage(t *testing.T) {
	kps, set := newRoster(t, 5, 62)
	m := MessageFromBytes([]byte("block 7"))
	b := newZBits(set, m)
	require.False(t, b.Verify(), "no signers")

	for _, i := range []int{0, 3, 4} {
		require.NoError(t, b.Add(kps[i].SignedMessage(m)))
	}
	require.Equal(t, 3, b.Count())
	require.True(t, b.Has(3))
	require.False(t, b.Has(1))
	require.True(t, b.Verify())

	require.ErrorIs(t, b.Add(kps[3].SignedMessage(m)), ErrDuplicateSigner)
	require.ErrorIs(t, b.Add(kps[1].SignedMessage(MessageFromBytes([]byte("block 8")))), ErrMessageMismatch)
	require.ErrorIs(t, b.Add(zKey(t, seeded(63)).SignedMessage(m)), ErrUnknownSigner)
	require.Equal(t, 3, b.Count())
	require.True(t, b.Verify())
}

func TestBitSignedMessageMerge(t *testing.T) {
	kps, set := newRoster(t, 4, 64)
	m := MessageFromBytes([]byte("merge"))
	a, b, c := newZBits(set, m), newZBits(set, m), newZBits(set, m)
	require.NoError(t, a.Add(kps[0].SignedMessage(m)))
	require.NoError(t, b.Add(kps[1].SignedMessage(m)))
	require.NoError(t, b.Add(kps[2].SignedMessage(m)))
	require.NoError(t, c.Add(kps[2].SignedMessage(m)))

	require.NoError(t, a.Merge(b))
	require.Equal(t, 3, a.Count())
	require.True(t, a.Verify())

	require.ErrorIs(t, a.Merge(c), ErrDuplicateSigner)
	require.Equal(t, 3, a.Count())

	_, other := newRoster(t, 4, 65)
	require.ErrorIs(t, a.Merge(newZBits(other, m)), ErrSignerSetMismatch)

	// Merging into an empty aggregate takes the other's signature.
	empty := newZBits(set, m)
	require.NoError(t, empty.Merge(a))
	require.True(t, empty.Verify())
}

func TestBitSignedMessageForgedSignature(t *testing.T) {
	kps, set := newRoster(t, 2, 66)
	m := MessageFromBytes([]byte("honest"))
	b := newZBits(set, m)
	require.NoError(t, b.Add(kps[0].SignedMessage(m)))
	require.NoError(t, b.Add(NewSignedMessage[zScalar, zG1, zG2, zGT](Z, m, kps[1].PublicKey(), kps[1].Sign(Message{}))))
	require.False(t, b.Verify())
}

func TestCountSignedMessage(t *testing.T) {
	kps, set := newRoster(t, 3, 67)
	m := MessageFromBytes([]byte("count"))
	c := newZCounts(set, m)
	require.False(t, c.Verify(), "no contributions")

	require.NoError(t, c.Add(kps[0].SignedMessage(m)))
	require.NoError(t, c.Add(kps[0].SignedMessage(m)))
	require.NoError(t, c.Add(kps[2].SignedMessage(m)))
	require.EqualValues(t, 2, c.Count(0))
	require.EqualValues(t, 0, c.Count(1))
	require.EqualValues(t, 3, c.Total())
	require.True(t, c.Verify())

	// The yielded key is 2·pk0 + pk2.
	for _, pk := range c.MessagesAndPublicKeys() {
		want := kps[0].PublicKey().Add(kps[0].PublicKey()).Add(kps[2].PublicKey())
		require.True(t, pk.Equal(want))
	}

	require.ErrorIs(t, c.Add(zKey(t, seeded(68)).SignedMessage(m)), ErrUnknownSigner)
	require.ErrorIs(t, c.Add(kps[1].SignedMessage(Message{})), ErrMessageMismatch)
}

func TestCountSignedMessageMergesOverlaps(t *testing.T) {
	kps, set := newRoster(t, 3, 69)
	m := MessageFromBytes([]byte("overlap"))

	b1, b2 := newZBits(set, m), newZBits(set, m)
	require.NoError(t, b1.Add(kps[0].SignedMessage(m)))
	require.NoError(t, b1.Add(kps[1].SignedMessage(m)))
	require.NoError(t, b2.Add(kps[1].SignedMessage(m)))
	require.NoError(t, b2.Add(kps[2].SignedMessage(m)))
	require.ErrorIs(t, b1.Merge(b2), ErrDuplicateSigner)

	c := newZCounts(set, m)
	require.NoError(t, c.MergeBits(b1))
	require.NoError(t, c.MergeBits(b2))
	require.EqualValues(t, 2, c.Count(1))
	require.True(t, c.Verify())

	d := newZCounts(set, m)
	require.NoError(t, d.Add(kps[2].SignedMessage(m)))
	require.NoError(t, d.Merge(c))
	require.EqualValues(t, 5, d.Total())
	require.True(t, d.Verify())

	_, other := newRoster(t, 3, 70)
	require.ErrorIs(t, d.Merge(newZCounts(other, m)), ErrSignerSetMismatch)
}
