package app

import (
	"fmt"
	"time"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp contains a data store and all info needed to initialize it from
// a genesis and to move it from one committed version to the next.
//
// It should be embedded in another struct for CheckTx and DeliverTx.
// Transactions are processed one at a time, the application is not safe for
// concurrent use.
type StoreApp struct {
	logger log.Logger

	// name is reported together with the commit info
	name string

	// Database state (committed, check, deliver....)
	store *CommitStore

	// Code to initialize from a genesis file
	initializer quorum.Initializer

	// chainID is loaded from db in initialization
	// saved once in InitChain
	chainID string

	// baseContext contains context info that is valid for
	// lifetime of this app (eg. chainID)
	baseContext quorum.Context

	// blockContext contains context info that is valid for the
	// current block (eg. height, time), reset on BeginBlock
	blockContext quorum.Context
}

// NewStoreApp initializes this app into a ready state with some defaults.
func NewStoreApp(name string, store quorum.CommitKVStore, baseContext quorum.Context) (*StoreApp, error) {
	cs, err := NewCommitStore(store)
	if err != nil {
		return nil, err
	}
	s := &StoreApp{
		name:        name,
		store:       cs,
		baseContext: baseContext,
	}
	s = s.WithLogger(log.NewNopLogger())

	chainID, err := loadChainID(s.DeliverStore())
	if err != nil {
		return nil, err
	}
	s.chainID = chainID
	if s.chainID != "" {
		s.baseContext = quorum.WithChainID(s.baseContext, s.chainID)
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}
	s.blockContext = quorum.WithHeight(s.baseContext, info.Version)
	return s, nil
}

// GetChainID returns the current chainID
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit is used to set the init function we call
func (s *StoreApp) WithInit(init quorum.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger on the StoreApp and returns it,
// to make it easy to chain in initialization
//
// also sets baseContext logger
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.baseContext = quorum.WithLogger(s.baseContext, logger)
	s.logger = logger
	return s
}

// Logger returns the application base logger
func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext returns the block context for public use
func (s *StoreApp) BlockContext() quorum.Context {
	return s.blockContext
}

// DeliverStore returns the current DeliverTx cache for methods
func (s *StoreApp) DeliverStore() quorum.CacheableKVStore {
	return s.store.DeliverStore()
}

// CheckStore returns the current CheckTx cache for methods
func (s *StoreApp) CheckStore() quorum.CacheableKVStore {
	return s.store.CheckStore()
}

// InitChain stores the chain id and initializes all extensions from the
// genesis application state. It can be called only once in the lifetime of
// a store.
func (s *StoreApp) InitChain(g *Genesis) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrInvalidState, "app state previously loaded for chain %s", s.chainID)
	}
	if err := g.Validate(); err != nil {
		return err
	}
	if g.AppState == nil {
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis")
	}
	if s.initializer == nil {
		return errors.Wrap(errors.ErrHuman, "initializer not set")
	}
	if err := saveChainID(s.DeliverStore(), g.ChainID); err != nil {
		return err
	}
	s.chainID = g.ChainID
	s.baseContext = quorum.WithChainID(s.baseContext, s.chainID)

	if err := s.initializer.FromGenesis(g.AppState, s.DeliverStore()); err != nil {
		return errors.Wrap(err, "init from genesis")
	}
	s.logger.Info("Chain initialized", "chainID", s.chainID)
	return nil
}

// BeginBlock prepares the context for processing transactions at given
// height and time.
func (s *StoreApp) BeginBlock(height int64, now time.Time) {
	ctx := quorum.WithHeight(s.baseContext, height)
	ctx = quorum.WithBlockTime(ctx, now)
	s.blockContext = ctx
}

// Info returns the height and hash of the last committed version.
func (s *StoreApp) Info() (quorum.CommitID, error) {
	info, err := s.store.CommitInfo()
	if err != nil {
		return info, errors.Wrap(err, "commit info")
	}
	s.logger.Debug("Info synced",
		"name", s.name,
		"height", info.Version,
		"hash", fmt.Sprintf("%X", info.Hash))
	return info, nil
}

// Commit flushes all delivered changes to the store and persists a new
// version.
func (s *StoreApp) Commit() (quorum.CommitID, error) {
	info, err := s.store.Commit()
	if err != nil {
		return info, errors.Wrap(err, "commit")
	}
	s.logger.Debug("Commit synced",
		"height", info.Version,
		"hash", fmt.Sprintf("%X", info.Hash))
	return info, nil
}
