package orm

import (
	"testing"

	"github.com/iov-one/quorum/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("group", SeqID)
	b := NewSequence("proposal", SeqID)

	latest, err := a.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), latest)

	v, err := a.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	raw, err := a.NextVal(db)
	require.NoError(t, err)
	assert.Equal(t, EncodeSequence(2), raw)

	// sequences are independent
	v, err = b.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	latest, err = a.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), latest)
}

func TestDecodeSequence(t *testing.T) {
	v, err := DecodeSequence(EncodeSequence(1234))
	require.NoError(t, err)
	assert.Equal(t, int64(1234), v)

	_, err = DecodeSequence([]byte{1, 2})
	assert.Error(t, err)
}
