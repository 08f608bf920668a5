package app

import (
	"fmt"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/multisig"
)

// RouterTarget is the address a proposal must target for its payload to be
// processed by the RouterExecutor.
var RouterTarget = quorum.NewCondition("app", "router", []byte{0}).Address()

// RouterExecutor processes the payload of an accepted proposal as a
// transaction of this application. The payload must be an encoded Tx. The
// message is delivered with the authority of the group that approved it, so
// a group can for example reset its own membership.
type RouterExecutor struct {
	msgs    *MsgRegistry
	handler quorum.Handler
}

var _ multisig.Executor = (*RouterExecutor)(nil)

// NewRouterExecutor returns an executor delivering decoded payloads to given
// handler, usually the application router.
func NewRouterExecutor(msgs *MsgRegistry, h quorum.Handler) *RouterExecutor {
	return &RouterExecutor{msgs: msgs, handler: h}
}

// Execute decodes the payload and delivers it.
func (e *RouterExecutor) Execute(ctx quorum.Context, db quorum.KVStore, req *multisig.ExecutionRequest) error {
	tx, err := e.msgs.DecodeTx(req.Payload)
	if err != nil {
		return errors.Wrap(err, "payload")
	}
	ctx = quorum.WithLogInfo(ctx, "call", "execute", "proposal", fmt.Sprintf("%X", req.ProposalID))
	if _, err := e.handler.Deliver(ctx, db, tx); err != nil {
		return errors.Wrapf(err, "deliver %s", quorum.GetPath(tx))
	}
	return nil
}
