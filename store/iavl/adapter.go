/*
Package iavl provides a persistent, versioned CommitKVStore backed by a
tendermint iavl merkle tree.
*/
package iavl

import (
	"fmt"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultCacheSize is the number of tree nodes kept in memory.
const DefaultCacheSize = 10000

// CommitStore manages a iavl committed state
type CommitStore struct {
	tree *iavl.MutableTree
	db   dbm.DB
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore creates a new store with disk backing. name is the name of
// the database directory created inside of dir.
func NewCommitStore(dir, name string) (store CommitStore, err error) {
	defer func() {
		// the database constructor panics when the directory cannot be
		// used.
		if r := recover(); r != nil {
			err = errors.Wrapf(errors.ErrDatabase, "open %s/%s: %v", dir, name, r)
		}
	}()
	db := dbm.NewDB(name, dbm.GoLevelDBBackend, dir)
	return CommitStore{tree: iavl.NewMutableTree(db, DefaultCacheSize), db: db}, nil
}

// MockCommitStore creates a new in-memory store for testing
func MockCommitStore() CommitStore {
	db := dbm.NewMemDB()
	return CommitStore{tree: iavl.NewMutableTree(db, DefaultCacheSize), db: db}
}

// Close releases the database. Uncommitted changes are lost.
func (s CommitStore) Close() {
	s.db.Close()
}

// Get returns the value at last committed state
// returns nil iff key doesn't exist.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	version := s.tree.Version()
	_, val := s.tree.GetVersioned(key, version)
	return val, nil
}

// Commit the next version to disk, and returns info
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// CacheWrap gives us a savepoint to perform actions. Writing the cache wrap
// applies all changes to the working tree, which becomes persistent with the
// next Commit.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	adapter := treeAdapter{tree: s.tree}
	return store.NewBTreeCacheWrap(adapter, adapter.NewBatch(), nil)
}

// treeAdapter exposes the working (uncommitted) tree as a KVStore.
type treeAdapter struct {
	tree *iavl.MutableTree
}

var _ store.BatchingKVStore = treeAdapter{}

func (a treeAdapter) Get(key []byte) ([]byte, error) {
	_, val := a.tree.Get(key)
	return val, nil
}

func (a treeAdapter) Has(key []byte) (bool, error) {
	return a.tree.Has(key), nil
}

func (a treeAdapter) Set(key, value []byte) error {
	if value == nil {
		return errors.Wrap(errors.ErrHuman, "nil value")
	}
	a.tree.Set(key, value)
	return nil
}

func (a treeAdapter) Delete(key []byte) error {
	a.tree.Remove(key)
	return nil
}

// NewBatch returns a batch that writes into the working tree. The tree is
// only persisted on Commit so a non atomic batch is enough.
func (a treeAdapter) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(a)
}

func (s CommitStore) String() string {
	return fmt.Sprintf("iavl.CommitStore{version=%d}", s.tree.Version())
}
