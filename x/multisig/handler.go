package multisig

import (
	"fmt"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x"
)

const (
	createGroupCost    int64 = 100
	resetGroupCost     int64 = 100
	createProposalCost int64 = 50
	voteCost           int64 = 10
	executeCost        int64 = 50
)

// RegisterRoutes registers handlers for multisig message processing. When
// exec is nil, execution only marks the proposal and returns the encoded
// ExecutionRequest so that it can be carried out outside of the application.
func RegisterRoutes(r quorum.Registry, auth x.Authenticator, exec Executor) {
	groups := NewGroupBucket()
	proposals := NewProposalBucket()
	r.Handle(pathCreateGroupMsg, &CreateGroupHandler{auth: auth, groups: groups})
	r.Handle(pathResetGroupMsg, &ResetGroupHandler{auth: auth, groups: groups, proposals: proposals})
	r.Handle(pathCreateProposalMsg, &CreateProposalHandler{auth: auth, groups: groups, proposals: proposals})
	r.Handle(pathVoteMsg, &VoteHandler{auth: auth, proposals: proposals})
	r.Handle(pathExecuteMsg, &ExecuteHandler{groups: groups, proposals: proposals, exec: exec})
}

func blockNow(ctx quorum.Context) (quorum.UnixTime, error) {
	t, ok := quorum.BlockTime(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrHuman, "block time not set")
	}
	return quorum.AsUnixTime(t), nil
}

// signerOrMain returns given address if it is authenticated. An empty address
// is replaced with the main signer.
func signerOrMain(ctx quorum.Context, auth x.Authenticator, addr quorum.Address, role string) (quorum.Address, error) {
	if addr != nil {
		if !auth.HasAddress(ctx, addr) {
			return nil, errors.Wrapf(errors.ErrUnauthorized, "%s signature required", role)
		}
		return addr, nil
	}
	main := x.MainSigner(ctx, auth)
	if main == nil {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "no %s signature", role)
	}
	return main.Address(), nil
}

// CreateGroupHandler registers new groups. Any authenticated sender may
// create a group.
type CreateGroupHandler struct {
	auth   x.Authenticator
	groups *GroupBucket
}

var _ quorum.Handler = (*CreateGroupHandler)(nil)

func (h CreateGroupHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{GasAllocated: createGroupCost}, nil
}

func (h CreateGroupHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	group := &Group{
		Participants: msg.Participants,
		Threshold:    msg.Threshold,
		Salt:         msg.Salt,
	}
	id, err := h.groups.Create(db, group)
	if err != nil {
		return nil, err
	}
	quorum.GetLogger(ctx).Info("group created",
		"group", fmt.Sprintf("%X", id), "participants", len(group.Participants), "threshold", group.Threshold)
	return &quorum.DeliverResult{Data: id}, nil
}

func (h CreateGroupHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*CreateGroupMsg, error) {
	var msg CreateGroupMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if err := conf.checkParticipants(msg.Participants); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ResetGroupHandler replaces the membership of a group. Only the group
// authority can do it.
type ResetGroupHandler struct {
	auth      x.Authenticator
	groups    *GroupBucket
	proposals *ProposalBucket
}

var _ quorum.Handler = (*ResetGroupHandler)(nil)

func (h ResetGroupHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{GasAllocated: resetGroupCost}, nil
}

func (h ResetGroupHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, group, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	group.Participants = msg.Participants
	group.Threshold = msg.Threshold
	if _, err := h.groups.Put(db, msg.GroupID, group); err != nil {
		return nil, errors.Wrap(err, "cannot save group")
	}
	quorum.GetLogger(ctx).Info("group reset",
		"group", fmt.Sprintf("%X", msg.GroupID), "participants", len(group.Participants), "threshold", group.Threshold)
	return &quorum.DeliverResult{}, nil
}

func (h ResetGroupHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*ResetGroupMsg, *Group, error) {
	var msg ResetGroupMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, nil, err
	}
	group, err := h.groups.GetGroup(db, msg.GroupID)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, group.Address) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "group authority required")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if err := conf.checkParticipants(msg.Participants); err != nil {
		return nil, nil, err
	}
	switch open, err := h.proposals.HasOpenProposals(db, msg.GroupID, now); {
	case err != nil:
		return nil, nil, err
	case open:
		return nil, nil, errors.Wrapf(ErrPendingProposals, "group %X", msg.GroupID)
	}
	return &msg, group, nil
}

// CreateProposalHandler creates proposals. The proposer must be a member of
// the group.
type CreateProposalHandler struct {
	auth      x.Authenticator
	groups    *GroupBucket
	proposals *ProposalBucket
}

var _ quorum.Handler = (*CreateProposalHandler)(nil)

func (h CreateProposalHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{GasAllocated: createProposalCost}, nil
}

func (h CreateProposalHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	proposal, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.proposals.Put(db, nil, proposal)
	if err != nil {
		return nil, errors.Wrap(err, "cannot save proposal")
	}
	quorum.GetLogger(ctx).Info("proposal created",
		"proposal", fmt.Sprintf("%X", id), "group", fmt.Sprintf("%X", proposal.GroupID), "proposer", proposal.Proposer)
	return &quorum.DeliverResult{Data: id}, nil
}

func (h CreateProposalHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*Proposal, error) {
	var msg CreateProposalMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}
	if msg.EndTime != 0 && now > msg.EndTime {
		return nil, errors.Wrapf(ErrInvalidEndTime, "end time %s is in the past", msg.EndTime)
	}
	group, err := h.groups.GetGroup(db, msg.GroupID)
	if err != nil {
		return nil, err
	}
	proposer, err := signerOrMain(ctx, h.auth, msg.Proposer, "proposer")
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	action := msg.action()
	if err := conf.checkAction(action); err != nil {
		return nil, err
	}
	return NewProposal(msg.GroupID, group, proposer, action, now, msg.EndTime)
}

// VoteHandler records votes and tallies proposals.
type VoteHandler struct {
	auth      x.Authenticator
	proposals *ProposalBucket
}

var _ quorum.Handler = (*VoteHandler)(nil)

func (h VoteHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{GasAllocated: voteCost}, nil
}

func (h VoteHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, proposal, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.proposals.Put(db, msg.ProposalID, proposal); err != nil {
		return nil, errors.Wrap(err, "cannot save proposal")
	}
	if proposal.Outcome != OutcomePending {
		quorum.GetLogger(ctx).Info("proposal determined",
			"proposal", fmt.Sprintf("%X", msg.ProposalID), "outcome", proposal.Outcome.String())
	}
	return &quorum.DeliverResult{Log: proposal.Outcome.String()}, nil
}

// validate returns the proposal with the vote already applied.
func (h VoteHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*VoteMsg, *Proposal, error) {
	var msg VoteMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, nil, err
	}
	proposal, err := h.proposals.GetProposal(db, msg.ProposalID)
	if err != nil {
		return nil, nil, err
	}
	voter, err := signerOrMain(ctx, h.auth, msg.Voter, "voter")
	if err != nil {
		return nil, nil, err
	}
	if err := proposal.Vote(now, voter, msg.Approve); err != nil {
		return nil, nil, err
	}
	return &msg, proposal, nil
}

// ExecuteHandler hands accepted proposals to the executor.
type ExecuteHandler struct {
	groups    *GroupBucket
	proposals *ProposalBucket
	exec      Executor
}

var _ quorum.Handler = (*ExecuteHandler)(nil)

func (h ExecuteHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{GasAllocated: executeCost}, nil
}

// Deliver persists the Executed outcome before the executor runs. A failing
// executor does not revert it. Executor writes are kept only on success.
func (h ExecuteHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, proposal, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	cstore, ok := db.(quorum.CacheableKVStore)
	if h.exec != nil && !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "executor requires a cacheable store, got %T", db)
	}
	group, err := h.groups.GetGroup(db, proposal.GroupID)
	if err != nil {
		return nil, err
	}
	if err := proposal.Execute(); err != nil {
		return nil, err
	}
	if _, err := h.proposals.Put(db, msg.ProposalID, proposal); err != nil {
		return nil, errors.Wrap(err, "cannot save proposal")
	}

	capability := GroupCondition(proposal.GroupID, group.Salt)
	req := &ExecutionRequest{
		ProposalID: msg.ProposalID,
		GroupID:    proposal.GroupID,
		Target:     proposal.Action.Target,
		Params:     proposal.Action.Params,
		Payload:    proposal.Action.Payload,
		Capability: capability,
	}
	raw, err := req.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal execution request")
	}
	res := &quorum.DeliverResult{Data: raw, Log: "executed"}
	if h.exec == nil {
		return res, nil
	}

	logger := quorum.GetLogger(ctx).With("proposal", fmt.Sprintf("%X", msg.ProposalID))
	cache := cstore.CacheWrap()
	if err := runExecutor(withGroupAuthority(ctx, capability), cache, h.exec, req); err != nil {
		cache.Discard()
		logger.Error("executor failed", "err", err)
		res.Log = "executor failed: " + err.Error()
		return res, nil
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write executor changes")
	}
	logger.Info("proposal executed", "target", req.Target)
	return res, nil
}

func runExecutor(ctx quorum.Context, db quorum.KVStore, exec Executor, req *ExecutionRequest) (err error) {
	defer errors.Recover(&err)
	return exec.Execute(ctx, db, req)
}

func (h ExecuteHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*ExecuteMsg, *Proposal, error) {
	var msg ExecuteMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	proposal, err := h.proposals.GetProposal(db, msg.ProposalID)
	if err != nil {
		return nil, nil, err
	}
	if proposal.Outcome != OutcomeAccepted {
		return nil, nil, errors.Wrapf(ErrNotAccepted, "outcome %s", proposal.Outcome)
	}
	return &msg, proposal, nil
}
