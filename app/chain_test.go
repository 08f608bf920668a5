package app

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/x/utils"
	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	d1 := &quorumtest.Decorator{}
	d2 := &quorumtest.Decorator{}
	h := &quorumtest.Handler{}

	stack := ChainDecorators(
		d1,
		utils.NewLogging(),
		utils.NewRecovery(),
		d2,
	).WithHandler(h)

	ctx := context.Background()
	tx := &quorumtest.Tx{Msg: &quorumtest.Msg{RoutePath: "test/chain"}}

	_, err := stack.Check(ctx, nil, tx)
	assert.NoError(t, err)
	_, err = stack.Deliver(ctx, nil, tx)
	assert.NoError(t, err)

	assert.Equal(t, 2, d1.CallCount())
	assert.Equal(t, 2, d2.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// a failing decorator stops the chain
	failing := &quorumtest.Decorator{DeliverErr: errors.ErrUnauthorized}
	stack = ChainDecorators(d1, failing).Chain(d2).WithHandler(h)
	_, err = stack.Deliver(ctx, nil, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 3, d1.CallCount())
	assert.Equal(t, 2, d2.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainRecoversPanics(t *testing.T) {
	d := &quorumtest.Decorator{}
	stack := ChainDecorators(
		d,
		utils.NewRecovery(),
	).WithHandler(quorumtest.PanicHandler{Value: "boom"})

	_, err := stack.Deliver(context.Background(), nil, &quorumtest.Tx{})
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Equal(t, 1, d.DeliverCallCount())
}

func TestChainSkipsNil(t *testing.T) {
	var nilDecorator *quorumtest.Decorator
	var metrics *utils.Metrics
	d := &quorumtest.Decorator{}

	chain := ChainDecorators(nil, nilDecorator, d, metrics)
	assert.Len(t, chain.chain, 1)

	var h quorum.Handler = &quorumtest.Handler{}
	_, err := chain.WithHandler(h).Check(context.Background(), nil, &quorumtest.Tx{})
	assert.NoError(t, err)
	assert.Equal(t, 1, d.CheckCallCount())
}
