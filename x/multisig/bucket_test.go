package multisig

import (
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupBucket(t *testing.T) {
	db := store.MemStore()
	b := NewGroupBucket()

	g := &Group{Participants: []quorum.Address{quorumtest.NewAddress()}, Threshold: 1, Salt: 5}
	id, err := b.Create(db, g)
	require.NoError(t, err)
	assert.Equal(t, quorumtest.SequenceID(1), id)

	got, err := b.GetGroup(db, id)
	require.NoError(t, err)
	assert.Equal(t, g, got)
	assert.Equal(t, GroupCondition(id, 5).Address(), got.Address)

	_, err = b.GetGroup(db, quorumtest.SequenceID(2))
	assert.True(t, errors.ErrNotFound.Is(err))

	// An invalid group is not stored and does not get an address.
	_, err = b.Create(db, &Group{Threshold: 1})
	assert.True(t, ErrEmptyGroup.Is(err))
}

func TestProposalBucketByGroup(t *testing.T) {
	db := store.MemStore()
	b := NewProposalBucket()
	member := quorumtest.NewAddress()
	group := &Group{Participants: []quorum.Address{member, quorumtest.NewAddress()}, Threshold: 2}

	put := func(groupID []byte, end quorum.UnixTime, outcome Outcome) []byte {
		p, err := NewProposal(groupID, group, member, &Action{Target: member}, 10, end)
		require.NoError(t, err)
		p.Outcome = outcome
		key, err := b.Put(db, nil, p)
		require.NoError(t, err)
		return key
	}

	first := put([]byte("one"), 0, OutcomeAccepted)
	second := put([]byte("one"), 100, OutcomePending)
	put([]byte("two"), 0, OutcomeRejected)

	keys, proposals, err := b.ByGroup(db, []byte("one"))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{first, second}, keys)
	assert.Len(t, proposals, 2)

	keys, _, err = b.ByGroup(db, []byte("unknown"))
	require.NoError(t, err)
	assert.Empty(t, keys)

	open, err := b.HasOpenProposals(db, []byte("one"), 100)
	require.NoError(t, err)
	assert.True(t, open)

	open, err = b.HasOpenProposals(db, []byte("one"), 101)
	require.NoError(t, err)
	assert.False(t, open)

	open, err = b.HasOpenProposals(db, []byte("two"), 1)
	require.NoError(t, err)
	assert.False(t, open)
}
