package multisig

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	a := quorumtest.ParseAddress(t, "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0")
	b := quorumtest.ParseAddress(t, "cond:test/seq/0000000000000001")

	const genesis = `
	{
		"conf": {
			"multisig": {
				"max_participants": 5,
				"max_params": 2,
				"max_payload_size": 128
			}
		},
		"multisig": {
			"groups": [
				{
					"participants": ["E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0", "cond:test/seq/0000000000000001"],
					"threshold": 2,
					"salt": 9
				}
			]
		}
	}`
	var opts quorum.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	var ini Initializer
	require.NoError(t, ini.FromGenesis(opts, db))

	g, err := NewGroupBucket().GetGroup(db, quorumtest.SequenceID(1))
	require.NoError(t, err)
	assert.Equal(t, []quorum.Address{a, b}, g.Participants)
	assert.Equal(t, uint32(2), g.Threshold)
	assert.Equal(t, GroupCondition(quorumtest.SequenceID(1), 9).Address(), g.Address)

	conf, err := loadConf(db)
	require.NoError(t, err)
	assert.Equal(t, &Configuration{MaxParticipants: 5, MaxParams: 2, MaxPayloadSize: 128}, conf)
}

func TestGenesisDefaults(t *testing.T) {
	db := store.MemStore()
	var ini Initializer
	require.NoError(t, ini.FromGenesis(quorum.Options{}, db))

	conf, err := loadConf(db)
	require.NoError(t, err)
	want := DefaultConfiguration()
	assert.Equal(t, &want, conf)
}

func TestGenesisInvalidGroup(t *testing.T) {
	const genesis = `{"multisig": {"groups": [{"participants": [], "threshold": 1}]}}`
	var opts quorum.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	var ini Initializer
	err := ini.FromGenesis(opts, store.MemStore())
	assert.True(t, ErrEmptyGroup.Is(err), "got %+v", err)

	const badConf = `{"conf": {"multisig": {"max_participants": 0}}}`
	opts = nil
	require.NoError(t, json.Unmarshal([]byte(badConf), &opts))
	err = ini.FromGenesis(opts, store.MemStore())
	assert.True(t, errors.ErrEmpty.Is(err), "got %+v", err)
}
