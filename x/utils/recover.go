package utils

import (
	"fmt"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Recovery is a decorator that turns a panic raised while processing a
// message into an ErrPanic error. The panic is annotated with the processing
// mode and the message path, and reported on the request logger.
type Recovery struct{}

var _ quorum.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx, next quorum.Checker) (_ *quorum.CheckResult, err error) {
	defer r.catch(ctx, "check", tx, &err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (_ *quorum.DeliverResult, err error) {
	defer r.catch(ctx, "deliver", tx, &err)
	return next.Deliver(ctx, store, tx)
}

// catch must be deferred directly, otherwise recover returns nil.
func (Recovery) catch(ctx quorum.Context, mode string, tx quorum.Tx, err *error) {
	p := recover()
	if p == nil {
		return
	}
	path := quorum.GetPath(tx)
	*err = errors.Wrapf(errors.ErrPanic, "%s %s: %v", mode, path, p)
	quorum.GetLogger(ctx).Error("recovered from panic",
		"mode", mode,
		"path", path,
		"panic", fmt.Sprint(p))
}
