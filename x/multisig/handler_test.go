package multisig

import (
	"context"
	"fmt"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/x"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// routes is the simplest registry, good enough to exercise handlers.
type routes map[string]quorum.Handler

func (r routes) Handle(path string, h quorum.Handler) {
	r[path] = h
}

// run checks the message against a throw away cache before delivering it.
func (r routes) run(ctx quorum.Context, db quorum.CacheableKVStore, msg quorum.Msg) (*quorum.DeliverResult, error) {
	h, ok := r[msg.Path()]
	if !ok {
		panic("no handler for " + msg.Path())
	}
	tx := &quorumtest.Tx{Msg: msg}
	cache := db.CacheWrap()
	_, err := h.Check(ctx, cache, tx)
	cache.Discard()
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

func newRoutes(exec Executor) routes {
	r := make(routes)
	RegisterRoutes(r, x.ChainAuth(x.ContextAuth{}, Authenticate{}), exec)
	return r
}

func ctxAt(now quorum.UnixTime, signers ...quorum.Condition) quorum.Context {
	ctx := quorum.WithBlockTime(context.Background(), now.Time())
	return x.WithSigners(ctx, signers...)
}

func addrs(conds ...quorum.Condition) []quorum.Address {
	res := make([]quorum.Address, len(conds))
	for i, c := range conds {
		res[i] = c.Address()
	}
	return res
}

func TestCreateGroupHandler(t *testing.T) {
	alice, bob, carol := quorumtest.NewCondition(), quorumtest.NewCondition(), quorumtest.NewCondition()

	cases := map[string]struct {
		signers []quorum.Condition
		conf    *Configuration
		msg     *CreateGroupMsg
		wantErr *errors.Error
	}{
		"valid group": {
			signers: []quorum.Condition{alice},
			msg:     &CreateGroupMsg{Participants: addrs(alice, bob, carol), Threshold: 2, Salt: 7},
		},
		"creator does not have to be a member": {
			signers: []quorum.Condition{quorumtest.NewCondition()},
			msg:     &CreateGroupMsg{Participants: addrs(alice, bob), Threshold: 2},
		},
		"no participants": {
			signers: []quorum.Condition{alice},
			msg:     &CreateGroupMsg{Threshold: 1},
			wantErr: ErrEmptyGroup,
		},
		"threshold above member count": {
			signers: []quorum.Condition{alice},
			msg:     &CreateGroupMsg{Participants: addrs(alice, bob), Threshold: 3},
			wantErr: ErrInvalidThreshold,
		},
		"zero threshold": {
			signers: []quorum.Condition{alice},
			msg:     &CreateGroupMsg{Participants: addrs(alice, bob), Threshold: 0},
			wantErr: ErrInvalidThreshold,
		},
		"duplicated participant": {
			signers: []quorum.Condition{alice},
			msg:     &CreateGroupMsg{Participants: addrs(alice, bob, alice), Threshold: 2},
			wantErr: ErrDuplicateMember,
		},
		"invalid participant address": {
			signers: []quorum.Condition{alice},
			msg:     &CreateGroupMsg{Participants: []quorum.Address{alice.Address(), []byte("short")}, Threshold: 1},
			wantErr: errors.ErrInvalidMsg,
		},
		"not signed": {
			msg:     &CreateGroupMsg{Participants: addrs(alice, bob), Threshold: 1},
			wantErr: errors.ErrUnauthorized,
		},
		"too many participants": {
			signers: []quorum.Condition{alice},
			conf:    &Configuration{MaxParticipants: 2, MaxParams: 1, MaxPayloadSize: 1},
			msg:     &CreateGroupMsg{Participants: addrs(alice, bob, carol), Threshold: 1},
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.conf != nil {
				require.NoError(t, gconf.Save(db, packageName, tc.conf))
			}
			r := newRoutes(nil)

			res, err := r.run(ctxAt(100, tc.signers...), db, tc.msg)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tc.wantErr.Is(err), "want %v, got %+v", tc.wantErr, err)
				// a rejected group is not persisted
				_, err := NewGroupBucket().GetGroup(db, quorumtest.SequenceID(1))
				assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)

			group, err := NewGroupBucket().GetGroup(db, res.Data)
			require.NoError(t, err)
			assert.Equal(t, tc.msg.Participants, group.Participants)
			assert.Equal(t, tc.msg.Threshold, group.Threshold)
			assert.Equal(t, GroupCondition(res.Data, tc.msg.Salt).Address(), group.Address)
		})
	}
}

// setup creates a group of three participants with threshold two and returns
// its ID.
func setup(t *testing.T, r routes, db quorum.CacheableKVStore) ([]byte, []quorum.Condition) {
	t.Helper()
	members := []quorum.Condition{quorumtest.NewCondition(), quorumtest.NewCondition(), quorumtest.NewCondition()}
	res, err := r.run(ctxAt(100, members[0]), db, &CreateGroupMsg{
		Participants: addrs(members...),
		Threshold:    2,
		Salt:         42,
	})
	require.NoError(t, err)
	return res.Data, members
}

func propose(t *testing.T, r routes, db quorum.CacheableKVStore, now quorum.UnixTime, groupID []byte, proposer quorum.Condition, end quorum.UnixTime) []byte {
	t.Helper()
	res, err := r.run(ctxAt(now, proposer), db, &CreateProposalMsg{
		GroupID: groupID,
		Target:  quorumtest.NewAddress(),
		Params:  []*AccountDescriptor{{Ref: quorumtest.NewAddress(), IsWritable: true}},
		Payload: []byte("do it"),
		EndTime: end,
	})
	require.NoError(t, err)
	return res.Data
}

func TestCreateProposalHandler(t *testing.T) {
	db := store.MemStore()
	r := newRoutes(nil)
	groupID, members := setup(t, r, db)
	stranger := quorumtest.NewCondition()

	cases := map[string]struct {
		signers []quorum.Condition
		msg     *CreateProposalMsg
		wantErr *errors.Error
	}{
		"main signer proposes": {
			signers: members[:1],
			msg:     &CreateProposalMsg{GroupID: groupID, Target: stranger.Address(), EndTime: 200},
		},
		"explicit proposer among signers": {
			signers: []quorum.Condition{stranger, members[1]},
			msg:     &CreateProposalMsg{GroupID: groupID, Proposer: members[1].Address(), Target: stranger.Address()},
		},
		"end time equal to now is still open": {
			signers: members[:1],
			msg:     &CreateProposalMsg{GroupID: groupID, Target: stranger.Address(), EndTime: 100},
		},
		"end time in the past": {
			signers: members[:1],
			msg:     &CreateProposalMsg{GroupID: groupID, Target: stranger.Address(), EndTime: 99},
			wantErr: ErrInvalidEndTime,
		},
		"end time is checked before membership": {
			signers: []quorum.Condition{stranger},
			msg:     &CreateProposalMsg{GroupID: groupID, Target: stranger.Address(), EndTime: 1},
			wantErr: ErrInvalidEndTime,
		},
		"proposer is not a member": {
			signers: []quorum.Condition{stranger},
			msg:     &CreateProposalMsg{GroupID: groupID, Target: stranger.Address()},
			wantErr: ErrInvalidMember,
		},
		"explicit proposer did not sign": {
			signers: members[:1],
			msg:     &CreateProposalMsg{GroupID: groupID, Proposer: members[1].Address(), Target: stranger.Address()},
			wantErr: errors.ErrUnauthorized,
		},
		"unknown group": {
			signers: members[:1],
			msg:     &CreateProposalMsg{GroupID: []byte("nope"), Target: stranger.Address()},
			wantErr: errors.ErrNotFound,
		},
		"missing target": {
			signers: members[:1],
			msg:     &CreateProposalMsg{GroupID: groupID},
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			cache := db.CacheWrap()
			defer cache.Discard()

			res, err := r.run(ctxAt(100, tc.signers...), cache, tc.msg)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tc.wantErr.Is(err), "want %v, got %+v", tc.wantErr, err)
				return
			}
			require.NoError(t, err)

			p, err := NewProposalBucket().GetProposal(cache, res.Data)
			require.NoError(t, err)
			assert.Equal(t, OutcomePending, p.Outcome)
			assert.Equal(t, quorum.UnixTime(100), p.StartTime)
			assert.Equal(t, tc.msg.EndTime, p.EndTime)
			assert.Equal(t, uint32(2), p.Threshold)
			require.Len(t, p.Votes, 3)
			for i, slot := range p.Votes {
				assert.Equal(t, members[i].Address(), slot.Participant)
				if slot.Participant.Equals(p.Proposer) {
					assert.Equal(t, VoteApprove, slot.Value)
				} else {
					assert.Equal(t, VoteUnset, slot.Value)
				}
			}
		})
	}
}

func TestProposalLifecycle(t *testing.T) {
	db := store.MemStore()
	r := newRoutes(nil)
	groupID, members := setup(t, r, db)

	pid := propose(t, r, db, 100, groupID, members[0], 0)

	// Pending proposal cannot be executed.
	_, err := r.run(ctxAt(101), db, &ExecuteMsg{ProposalID: pid})
	assert.True(t, ErrNotAccepted.Is(err), "got %+v", err)

	// Voting twice is refused.
	_, err = r.run(ctxAt(101, members[0]), db, &VoteMsg{ProposalID: pid, Approve: true})
	assert.True(t, ErrAlreadyVoted.Is(err), "got %+v", err)

	// Explicit voter must sign.
	_, err = r.run(ctxAt(101, members[2]), db, &VoteMsg{ProposalID: pid, Voter: members[1].Address(), Approve: true})
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)

	res, err := r.run(ctxAt(101, members[1]), db, &VoteMsg{ProposalID: pid, Approve: true})
	require.NoError(t, err)
	assert.Equal(t, "accepted", res.Log)

	_, err = r.run(ctxAt(102, members[2]), db, &VoteMsg{ProposalID: pid, Approve: false})
	assert.True(t, ErrProposalDetermined.Is(err), "got %+v", err)

	// Anyone can request the execution of an accepted proposal.
	res, err = r.run(ctxAt(103), db, &ExecuteMsg{ProposalID: pid})
	require.NoError(t, err)

	var req ExecutionRequest
	require.NoError(t, req.Unmarshal(res.Data))
	assert.Equal(t, pid, req.ProposalID)
	assert.Equal(t, groupID, req.GroupID)
	assert.Equal(t, []byte("do it"), req.Payload)
	require.Len(t, req.Params, 1)
	assert.True(t, req.Params[0].IsWritable)
	assert.Equal(t, GroupCondition(groupID, 42), req.Capability)

	p, err := NewProposalBucket().GetProposal(db, pid)
	require.NoError(t, err)
	assert.Equal(t, OutcomeExecuted, p.Outcome)

	// Execution happens exactly once.
	_, err = r.run(ctxAt(104), db, &ExecuteMsg{ProposalID: pid})
	assert.True(t, ErrNotAccepted.Is(err), "got %+v", err)
}

func TestRejectedProposal(t *testing.T) {
	db := store.MemStore()
	r := newRoutes(nil)
	groupID, members := setup(t, r, db)
	pid := propose(t, r, db, 100, groupID, members[0], 150)

	res, err := r.run(ctxAt(110, members[1]), db, &VoteMsg{ProposalID: pid, Approve: false})
	require.NoError(t, err)
	assert.Equal(t, "rejected", res.Log)

	_, err = r.run(ctxAt(111, members[2]), db, &VoteMsg{ProposalID: pid, Approve: true})
	assert.True(t, ErrProposalDetermined.Is(err), "got %+v", err)

	_, err = r.run(ctxAt(112), db, &ExecuteMsg{ProposalID: pid})
	assert.True(t, ErrNotAccepted.Is(err), "got %+v", err)
}

func TestVoteAfterWindow(t *testing.T) {
	db := store.MemStore()
	r := newRoutes(nil)
	groupID, members := setup(t, r, db)
	pid := propose(t, r, db, 100, groupID, members[0], 150)

	_, err := r.run(ctxAt(151, members[1]), db, &VoteMsg{ProposalID: pid, Approve: true})
	assert.True(t, ErrProposalFinished.Is(err), "got %+v", err)

	_, err = r.run(ctxAt(150, members[1]), db, &VoteMsg{ProposalID: pid, Approve: true})
	assert.NoError(t, err)
}

func TestExecuteHandler(t *testing.T) {
	written := []byte("executor-key")

	cases := map[string]struct {
		exec      ExecutorFunc
		wantLog   string
		wantWrite bool
	}{
		"executor succeeds": {
			exec: func(ctx quorum.Context, db quorum.KVStore, req *ExecutionRequest) error {
				if !(Authenticate{}).HasAddress(ctx, req.Capability.Address()) {
					return errors.Wrap(errors.ErrUnauthorized, "no group authority")
				}
				return db.Set(written, req.Payload)
			},
			wantLog:   "executed",
			wantWrite: true,
		},
		"executor fails": {
			exec: func(ctx quorum.Context, db quorum.KVStore, req *ExecutionRequest) error {
				if err := db.Set(written, req.Payload); err != nil {
					return err
				}
				return errors.Wrap(errors.ErrInvalidState, "target refused")
			},
			wantLog: "executor failed: target refused: invalid state",
		},
		"executor panics": {
			exec: func(quorum.Context, quorum.KVStore, *ExecutionRequest) error {
				panic("boom")
			},
			wantLog: "executor failed: boom: panic",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			r := newRoutes(tc.exec)
			groupID, members := setup(t, r, db)
			pid := propose(t, r, db, 100, groupID, members[0], 0)
			_, err := r.run(ctxAt(101, members[2]), db, &VoteMsg{ProposalID: pid, Approve: true})
			require.NoError(t, err)

			res, err := r.run(ctxAt(102), db, &ExecuteMsg{ProposalID: pid})
			require.NoError(t, err)
			assert.Equal(t, tc.wantLog, res.Log)

			has, err := db.Has(written)
			require.NoError(t, err)
			assert.Equal(t, tc.wantWrite, has)

			// Executed is final, regardless of the executor result.
			p, err := NewProposalBucket().GetProposal(db, pid)
			require.NoError(t, err)
			assert.Equal(t, OutcomeExecuted, p.Outcome)
		})
	}
}

func TestResetGroupHandler(t *testing.T) {
	db := store.MemStore()
	r := newRoutes(nil)
	groupID, members := setup(t, r, db)
	group, err := NewGroupBucket().GetGroup(db, groupID)
	require.NoError(t, err)
	authority := GroupCondition(groupID, group.Salt)
	newcomer := quorumtest.NewCondition()
	reset := &ResetGroupMsg{
		GroupID:      groupID,
		Participants: addrs(members[0], newcomer),
		Threshold:    1,
	}

	// Members cannot reset the group without the group authority.
	_, err = r.run(ctxAt(100, members...), db, reset)
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)

	asGroup := func(now quorum.UnixTime) quorum.Context {
		return withGroupAuthority(ctxAt(now), authority)
	}

	// Membership rules are the same as for creation.
	_, err = r.run(asGroup(100), db, &ResetGroupMsg{GroupID: groupID, Participants: addrs(newcomer, newcomer), Threshold: 1})
	assert.True(t, ErrDuplicateMember.Is(err), "got %+v", err)

	// An open proposal blocks the reset.
	propose(t, r, db, 100, groupID, members[0], 200)
	_, err = r.run(asGroup(150), db, reset)
	assert.True(t, ErrPendingProposals.Is(err), "got %+v", err)

	// Once its window is closed, it does not.
	_, err = r.run(asGroup(201), db, reset)
	require.NoError(t, err)

	group, err = NewGroupBucket().GetGroup(db, groupID)
	require.NoError(t, err)
	assert.Equal(t, reset.Participants, group.Participants)
	assert.Equal(t, uint32(1), group.Threshold)
	assert.Equal(t, authority.Address(), group.Address, "authority survives a reset")

	// New proposals use the new membership.
	pid := propose(t, r, db, 300, groupID, newcomer, 0)
	p, err := NewProposalBucket().GetProposal(db, pid)
	require.NoError(t, err)
	require.Len(t, p.Votes, 2)
	assert.Equal(t, OutcomePending, p.Outcome)

	res, err := r.run(ctxAt(301, members[0]), db, &VoteMsg{ProposalID: pid, Approve: false})
	require.NoError(t, err)
	assert.Equal(t, "accepted", res.Log)
}

func TestResetAllowedAfterDecision(t *testing.T) {
	db := store.MemStore()
	r := newRoutes(nil)
	groupID, members := setup(t, r, db)
	pid := propose(t, r, db, 100, groupID, members[0], 0)
	_, err := r.run(ctxAt(101, members[1]), db, &VoteMsg{ProposalID: pid, Approve: false})
	require.NoError(t, err)

	group, err := NewGroupBucket().GetGroup(db, groupID)
	require.NoError(t, err)
	ctx := withGroupAuthority(ctxAt(102), GroupCondition(groupID, group.Salt))
	_, err = r.run(ctx, db, &ResetGroupMsg{GroupID: groupID, Participants: addrs(members[:2]...), Threshold: 2})
	assert.NoError(t, err)
}

func TestMissingBlockTime(t *testing.T) {
	db := store.MemStore()
	r := newRoutes(nil)
	groupID, members := setup(t, r, db)
	ctx := x.WithSigners(context.Background(), members[0])
	_, err := r.run(ctx, db, &CreateProposalMsg{GroupID: groupID, Target: quorumtest.NewAddress()})
	assert.True(t, errors.ErrHuman.Is(err), "got %+v", err)
}

func ExampleGroupCondition() {
	cond := GroupCondition([]byte{0, 0, 0, 0, 0, 0, 0, 1}, 3)
	fmt.Println(cond)
	// Output: multisig/group/000000000000000100000003
}
