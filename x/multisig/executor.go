package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Executor carries out the action of an accepted proposal. The context holds
// the authority of the group that approved the action.
type Executor interface {
	Execute(ctx quorum.Context, db quorum.KVStore, req *ExecutionRequest) error
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx quorum.Context, db quorum.KVStore, req *ExecutionRequest) error

func (fn ExecutorFunc) Execute(ctx quorum.Context, db quorum.KVStore, req *ExecutionRequest) error {
	return fn(ctx, db, req)
}

// Dispatcher selects an executor by the target of the request.
type Dispatcher struct {
	executors map[string]Executor
	fallback  Executor
}

var _ Executor = (*Dispatcher)(nil)

// NewDispatcher returns a dispatcher without any target registered.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{executors: make(map[string]Executor)}
}

// Register binds an executor to a target address. It panics if the target
// is already bound.
func (d *Dispatcher) Register(target quorum.Address, e Executor) {
	key := string(target)
	if _, ok := d.executors[key]; ok {
		panic("executor already registered for " + target.String())
	}
	d.executors[key] = e
}

// Fallback sets the executor used for targets without a registered one.
func (d *Dispatcher) Fallback(e Executor) *Dispatcher {
	d.fallback = e
	return d
}

func (d *Dispatcher) Execute(ctx quorum.Context, db quorum.KVStore, req *ExecutionRequest) error {
	e, ok := d.executors[string(req.Target)]
	if !ok {
		if d.fallback == nil {
			return errors.Wrapf(errors.ErrNotFound, "no executor for target %s", req.Target)
		}
		e = d.fallback
	}
	return e.Execute(ctx, db, req)
}

// Handoff does nothing. The request is returned as the result data of the
// execute message, for a process outside of the store to carry it out.
var Handoff Executor = ExecutorFunc(func(quorum.Context, quorum.KVStore, *ExecutionRequest) error {
	return nil
})
