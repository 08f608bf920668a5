package main

import (
	"time"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store/iavl"
	"github.com/prometheus/client_golang/prometheus"
)

// storeName is the name of the database directory created in the home
// directory.
const storeName = "state"

// node is an application opened on the state database.
type node struct {
	app.BaseApp
	db  iavl.CommitStore
	reg *prometheus.Registry
}

func (c *cli) open() (*node, error) {
	logger, err := c.cfg.newLogger(c.errOut)
	if err != nil {
		return nil, err
	}
	db, err := iavl.NewCommitStore(c.cfg.Home, storeName)
	if err != nil {
		return nil, err
	}
	reg := prometheus.NewRegistry()
	a, err := app.NewApplication(db, logger, reg)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &node{BaseApp: a, db: db, reg: reg}, nil
}

// close releases the database and writes collected metrics if requested.
func (c *cli) close(n *node) error {
	n.db.Close()
	if c.metricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(c.metricsFile, n.reg); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "write metrics: %s", err)
	}
	return nil
}

// submit processes given message in a new block and commits the result.
func (c *cli) submit(msg quorum.Msg, tf *txFlags) (res *quorum.DeliverResult, err error) {
	signers, err := parseSigners(tf.as)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if tf.at != "" {
		t, err := quorum.ParseUnixTime(tf.at)
		if err != nil {
			return nil, errors.Wrap(err, "block time")
		}
		now = t.Time()
	}
	raw, err := app.EncodeTx(msg)
	if err != nil {
		return nil, err
	}

	n, err := c.open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := c.close(n); err == nil {
			err = cerr
		}
	}()

	if n.GetChainID() == "" {
		return nil, errors.Wrap(errors.ErrInvalidState, "state not initialized, run init first")
	}
	info, err := n.Info()
	if err != nil {
		return nil, err
	}
	n.BeginBlock(info.Version+1, now)
	if _, err := n.CheckTx(raw, signers...); err != nil {
		return nil, err
	}
	res, err = n.DeliverTx(raw, signers...)
	if err != nil {
		return nil, err
	}
	if _, err := n.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

// view opens the state for reading.
func (c *cli) view(fn func(db quorum.ReadOnlyKVStore) error) (err error) {
	n, err := c.open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.close(n); err == nil {
			err = cerr
		}
	}()
	return fn(n.DeliverStore())
}
