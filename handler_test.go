package quorum_test

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOptions(t *testing.T) {
	opts := quorum.Options{
		"multisig": json.RawMessage(`{"threshold": 2}`),
		"broken":   json.RawMessage(`{"threshold": "two"}`),
	}

	var conf struct {
		Threshold int `json:"threshold"`
	}
	require.NoError(t, opts.ReadOptions("multisig", &conf))
	assert.Equal(t, 2, conf.Threshold)

	// a missing key leaves the destination untouched
	conf.Threshold = 5
	require.NoError(t, opts.ReadOptions("missing", &conf))
	assert.Equal(t, 5, conf.Threshold)

	assert.Error(t, opts.ReadOptions("broken", &conf))
}

type keyInitializer struct {
	key []byte
	err error
}

func (i keyInitializer) FromGenesis(opts quorum.Options, kv quorum.KVStore) error {
	if i.err != nil {
		return i.err
	}
	return kv.Set(i.key, []byte("ok"))
}

func TestChainInitializers(t *testing.T) {
	db := store.MemStore()
	init := quorum.ChainInitializers(
		keyInitializer{key: []byte("a")},
		keyInitializer{key: []byte("b")},
	)
	require.NoError(t, init.FromGenesis(quorum.Options{}, db))
	for _, k := range []string{"a", "b"} {
		ok, err := db.Has([]byte(k))
		require.NoError(t, err)
		assert.True(t, ok, k)
	}

	// the first failure stops the chain
	db = store.MemStore()
	init = quorum.ChainInitializers(
		keyInitializer{err: errors.ErrInvalidState},
		keyInitializer{key: []byte("c")},
	)
	err := init.FromGenesis(quorum.Options{}, db)
	assert.True(t, errors.ErrInvalidState.Is(err))
	ok, err := db.Has([]byte("c"))
	require.NoError(t, err)
	assert.False(t, ok)
}
