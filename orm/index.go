package orm

import (
	"bytes"
	"regexp"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

const indexPrefix = "_i."

var isIndexName = regexp.MustCompile(`^[a-z_]{3,32}$`).MatchString

// Indexer calculates the secondary index key for a given object
type Indexer func(Object) ([]byte, error)

// MultiKeyIndexer calculates the secondary index keys for a given object
type MultiKeyIndexer func(Object) ([][]byte, error)

// Index represents a secondary index on some data.
// It is indexed by an arbitrary key returned by the indexer.
// The value is one primary key (unique),
// Or a MultiRef set of primary keys (!unique).
//
// All keys indexed under one value are stored as a single entry, so this
// index is suited for small collections (for example all proposals of one
// group).
type Index struct {
	name   string
	id     []byte
	unique bool
	index  MultiKeyIndexer
}

// NewIndex constructs an index.
// Indexer calculates the index for an object.
// unique enforces a unique constraint on the index.
func NewIndex(name string, indexer Indexer, unique bool) Index {
	return NewMultiKeyIndex(name, asMultiKeyIndexer(indexer), unique)
}

// NewMultiKeyIndex constructs an index with multi key indexer.
func NewMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool) Index {
	if !isIndexName(name) {
		panic("illegal index name: " + name)
	}
	return Index{
		name:   name,
		id:     []byte(indexPrefix + name + ":"),
		index:  indexer,
		unique: unique,
	}
}

func asMultiKeyIndexer(indexer Indexer) MultiKeyIndexer {
	return func(obj Object) ([][]byte, error) {
		key, err := indexer(obj)
		switch {
		case err != nil:
			return nil, err
		case key == nil:
			return nil, nil
		}
		return [][]byte{key}, nil
	}
}

// Name returns the name of this index.
func (i Index) Name() string {
	return i.name
}

// IndexKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (i Index) IndexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update handles updating the reference to the object in
// the secondary index.
//
// prev == nil means insert
// save == nil means delete
// both == nil is error
// if both != nil and prev.Key() != save.Key() this is an error
//
// Otherwise, it will check indexer(prev) and indexer(save)
// and make sure the key is now stored in the right location
func (i Index) Update(db quorum.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev == nil:
		keys, err := i.index(save)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := i.insert(db, key, save.Key()); err != nil {
				return err
			}
		}
		return nil
	case save == nil:
		keys, err := i.index(prev)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := i.remove(db, key, prev.Key()); err != nil {
				return err
			}
		}
		return nil
	default:
		return i.move(db, prev, save)
	}
}

// GetAt returns a list of all pk at that index (may be empty), or error
func (i Index) GetAt(db quorum.ReadOnlyKVStore, index []byte) ([][]byte, error) {
	val, err := db.Get(i.IndexKey(index))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if val == nil {
		return nil, nil
	}
	if i.unique {
		return [][]byte{val}, nil
	}
	var data MultiRef
	if err := data.Unmarshal(val); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal index refs")
	}
	return data.Refs, nil
}

func (i Index) move(db quorum.KVStore, prev Object, save Object) error {
	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrHuman, "cannot modify the primary key of an object")
	}
	oldKeys, err := i.index(prev)
	if err != nil {
		return err
	}
	newKeys, err := i.index(save)
	if err != nil {
		return err
	}
	pk := save.Key()
	for _, k := range oldKeys {
		if !contains(newKeys, k) {
			if err := i.remove(db, k, pk); err != nil {
				return err
			}
		}
	}
	for _, k := range newKeys {
		if !contains(oldKeys, k) {
			if err := i.insert(db, k, pk); err != nil {
				return err
			}
		}
	}
	return nil
}

func contains(set [][]byte, key []byte) bool {
	for _, k := range set {
		if bytes.Equal(k, key) {
			return true
		}
	}
	return false
}

func (i Index) insert(db quorum.KVStore, key []byte, pk []byte) error {
	dbkey := i.IndexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}

	if i.unique {
		if cur != nil {
			return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
		}
		return db.Set(dbkey, pk)
	}

	// append to a list
	var data MultiRef
	if cur != nil {
		if err := data.Unmarshal(cur); err != nil {
			return errors.Wrap(err, "cannot unmarshal index refs")
		}
	}
	if err := data.Add(pk); err != nil {
		return err
	}
	raw, err := data.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal index refs")
	}
	return db.Set(dbkey, raw)
}

func (i Index) remove(db quorum.KVStore, key []byte, pk []byte) error {
	dbkey := i.IndexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if cur == nil {
		return errors.Wrapf(errors.ErrNotFound, "index %s: cannot remove non-existent link", i.name)
	}

	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrapf(errors.ErrNotFound, "index %s: cannot remove link to a different key", i.name)
		}
		return db.Delete(dbkey)
	}

	var data MultiRef
	if err := data.Unmarshal(cur); err != nil {
		return errors.Wrap(err, "cannot unmarshal index refs")
	}
	if err := data.Remove(pk); err != nil {
		return err
	}
	if len(data.Refs) == 0 {
		return db.Delete(dbkey)
	}
	raw, err := data.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal index refs")
	}
	return db.Set(dbkey, raw)
}
