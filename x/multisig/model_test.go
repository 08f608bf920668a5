package multisig

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupValidate(t *testing.T) {
	a, b := quorumtest.NewAddress(), quorumtest.NewAddress()

	cases := map[string]struct {
		group   Group
		wantErr *errors.Error
	}{
		"valid": {
			group: Group{Participants: []quorum.Address{a, b}, Threshold: 2, Address: quorumtest.NewAddress()},
		},
		"missing authority": {
			group:   Group{Participants: []quorum.Address{a, b}, Threshold: 2},
			wantErr: errors.ErrEmpty,
		},
		"empty": {
			group:   Group{Threshold: 1, Address: quorumtest.NewAddress()},
			wantErr: ErrEmptyGroup,
		},
		"threshold too high": {
			group:   Group{Participants: []quorum.Address{a}, Threshold: 2, Address: quorumtest.NewAddress()},
			wantErr: ErrInvalidThreshold,
		},
		"duplicate": {
			group:   Group{Participants: []quorum.Address{a, b, a}, Threshold: 1, Address: quorumtest.NewAddress()},
			wantErr: ErrDuplicateMember,
		},
		"invalid participant": {
			group:   Group{Participants: []quorum.Address{a, []byte{1, 2}}, Threshold: 1, Address: quorumtest.NewAddress()},
			wantErr: errors.ErrInvalidModel,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.group.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "want %v, got %+v", tc.wantErr, err)
		})
	}
}

func TestProposalValidate(t *testing.T) {
	a, b := quorumtest.NewAddress(), quorumtest.NewAddress()
	valid := func() *Proposal {
		return &Proposal{
			GroupID:   []byte("g"),
			Action:    &Action{Target: quorumtest.NewAddress()},
			Votes:     []*VoteSlot{{Participant: a, Value: VoteApprove}, {Participant: b}},
			Threshold: 2,
			Proposer:  a,
			StartTime: 10,
		}
	}
	require.NoError(t, valid().Validate())

	cases := map[string]struct {
		mutate  func(*Proposal)
		wantErr *errors.Error
	}{
		"missing group": {
			mutate:  func(p *Proposal) { p.GroupID = nil },
			wantErr: errors.ErrEmpty,
		},
		"missing action": {
			mutate:  func(p *Proposal) { p.Action = nil },
			wantErr: errors.ErrEmpty,
		},
		"threshold above slots": {
			mutate:  func(p *Proposal) { p.Threshold = 3 },
			wantErr: errors.ErrInvalidModel,
		},
		"unknown vote value": {
			mutate:  func(p *Proposal) { p.Votes[1].Value = 9 },
			wantErr: errors.ErrInvalidState,
		},
		"unknown outcome": {
			mutate:  func(p *Proposal) { p.Outcome = 9 },
			wantErr: errors.ErrInvalidState,
		},
		"no start time": {
			mutate:  func(p *Proposal) { p.StartTime = 0 },
			wantErr: errors.ErrEmpty,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			p := valid()
			tc.mutate(p)
			err := p.Validate()
			assert.True(t, tc.wantErr.Is(err), "want %v, got %+v", tc.wantErr, err)
		})
	}
}

func TestProposalCopyIsDeep(t *testing.T) {
	p := &Proposal{
		GroupID: []byte("g"),
		Action:  &Action{Target: quorumtest.NewAddress(), Payload: []byte("x")},
		Votes:   []*VoteSlot{{Participant: quorumtest.NewAddress()}},
	}
	cpy := p.Copy().(*Proposal)
	cpy.Votes[0].Value = VoteReject
	cpy.Action.Payload[0] = 'y'
	assert.Equal(t, VoteUnset, p.Votes[0].Value)
	assert.Equal(t, []byte("x"), p.Action.Payload)
}

func TestProposalEncoding(t *testing.T) {
	p := &Proposal{
		GroupID: []byte("group"),
		Action: &Action{
			Target:  quorumtest.NewAddress(),
			Params:  []*AccountDescriptor{{Ref: quorumtest.NewAddress(), IsSigner: true}},
			Payload: []byte("payload"),
		},
		Votes: []*VoteSlot{
			{Participant: quorumtest.NewAddress(), Value: VoteApprove},
			{Participant: quorumtest.NewAddress(), Value: VoteReject},
		},
		Threshold: 1,
		Proposer:  quorumtest.NewAddress(),
		StartTime: 1000,
		EndTime:   2000,
		Outcome:   OutcomeRejected,
	}
	raw, err := p.Marshal()
	require.NoError(t, err)

	var got Proposal
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, p, &got)
}

func TestOutcomeJSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		O Outcome   `json:"o"`
		V VoteValue `json:"v"`
	}{OutcomeExecuted, VoteReject})
	require.NoError(t, err)
	assert.JSONEq(t, `{"o": "executed", "v": "reject"}`, string(raw))

	var o Outcome
	require.NoError(t, json.Unmarshal([]byte(`"accepted"`), &o))
	assert.Equal(t, OutcomeAccepted, o)
	assert.Error(t, json.Unmarshal([]byte(`"maybe"`), &o))
}
