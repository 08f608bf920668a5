package app

import (
	"context"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/x"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is reported with the commit info of a quorum application.
const Name = "quorum"

// Authenticator returns the authentication chain used by all handlers.
// Signers are declared in the context by the caller. Group authority is
// granted to the action of an accepted proposal.
func Authenticator() x.Authenticator {
	return x.ChainAuth(x.ContextAuth{}, multisig.Authenticate{})
}

// Messages returns a registry of every message the application accepts.
func Messages() *MsgRegistry {
	return NewMsgRegistry(
		&multisig.CreateGroupMsg{},
		&multisig.ResetGroupMsg{},
		&multisig.CreateProposalMsg{},
		&multisig.VoteMsg{},
		&multisig.ExecuteMsg{},
	)
}

// Routes returns a router with all handlers registered. Accepted proposals
// targeting RouterTarget are decoded and delivered through the same router.
// Actions with any other target are handed off.
func Routes(msgs *MsgRegistry) *Router {
	r := NewRouter()
	exec := multisig.NewDispatcher().Fallback(multisig.Handoff)
	exec.Register(RouterTarget, NewRouterExecutor(msgs, r))
	multisig.RegisterRoutes(r, Authenticator(), exec)
	return r
}

// Chain returns the decorators applied to every transaction. Metrics can be
// nil.
func Chain(metrics *utils.Metrics) Decorators {
	return ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		utils.NewSavepoint().OnDeliver(),
	)
}

// Stack returns the fully decorated application handler together with the
// decoder for its transactions.
func Stack(metrics *utils.Metrics) (quorum.Handler, quorum.TxDecoder) {
	msgs := Messages()
	return Chain(metrics).WithHandler(Routes(msgs)), msgs.TxDecoder()
}

// NewApplication returns a quorum application operating on given store.
// When a registerer is provided, request metrics are collected into it.
func NewApplication(store quorum.CommitKVStore, logger log.Logger, reg prometheus.Registerer) (BaseApp, error) {
	var metrics *utils.Metrics
	if reg != nil {
		m, err := utils.NewMetrics(reg)
		if err != nil {
			return BaseApp{}, err
		}
		metrics = m
	}
	s, err := NewStoreApp(Name, store, context.Background())
	if err != nil {
		return BaseApp{}, err
	}
	s = s.WithInit(&multisig.Initializer{}).WithLogger(logger)
	handler, decoder := Stack(metrics)
	return NewBaseApp(s, decoder, handler), nil
}
