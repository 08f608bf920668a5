package app

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x"
)

// BaseApp adds DeliverTx and CheckTx to the storage functionality of
// StoreApp.
type BaseApp struct {
	*StoreApp
	decoder quorum.TxDecoder
	handler quorum.Handler
}

// NewBaseApp constructs a basic application
func NewBaseApp(store *StoreApp, decoder quorum.TxDecoder, handler quorum.Handler) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
	}
}

// DeliverTx decodes the transaction and dispatches it to the handler.
// Signers are the conditions the caller verified before submitting the
// transaction.
func (b BaseApp) DeliverTx(txBytes []byte, signers ...quorum.Condition) (*quorum.DeliverResult, error) {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return nil, err
	}

	ctx := quorum.WithLogInfo(x.WithSigners(b.BlockContext(), signers...),
		"call", "deliver_tx",
		"path", quorum.GetPath(tx))

	return b.handler.Deliver(ctx, b.DeliverStore(), tx)
}

// CheckTx decodes the transaction and dispatches it to the handler.
func (b BaseApp) CheckTx(txBytes []byte, signers ...quorum.Condition) (*quorum.CheckResult, error) {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return nil, err
	}

	ctx := quorum.WithLogInfo(x.WithSigners(b.BlockContext(), signers...),
		"call", "check_tx",
		"path", quorum.GetPath(tx))

	return b.handler.Check(ctx, b.CheckStore(), tx)
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx quorum.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
