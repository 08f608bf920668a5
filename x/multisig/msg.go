package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

const (
	pathCreateGroupMsg    = "multisig/create_group"
	pathResetGroupMsg     = "multisig/reset_group"
	pathCreateProposalMsg = "multisig/create_proposal"
	pathVoteMsg           = "multisig/vote"
	pathExecuteMsg        = "multisig/execute"
)

var (
	_ quorum.Msg = (*CreateGroupMsg)(nil)
	_ quorum.Msg = (*ResetGroupMsg)(nil)
	_ quorum.Msg = (*CreateProposalMsg)(nil)
	_ quorum.Msg = (*VoteMsg)(nil)
	_ quorum.Msg = (*ExecuteMsg)(nil)
)

// CreateGroupMsg registers a new group.
type CreateGroupMsg struct {
	Participants []quorum.Address `protobuf:"bytes,1,rep,name=participants,proto3" json:"participants"`
	Threshold    uint32           `protobuf:"varint,2,opt,name=threshold,proto3" json:"threshold"`
	Salt         uint32           `protobuf:"varint,3,opt,name=salt,proto3" json:"salt"`
}

func (CreateGroupMsg) Path() string {
	return pathCreateGroupMsg
}

func (m *CreateGroupMsg) Validate() error {
	return validateMembership(m.Participants, m.Threshold, errors.ErrInvalidMsg)
}

// ResetGroupMsg replaces the membership of a group. It must be authorized by
// the group itself.
type ResetGroupMsg struct {
	GroupID      []byte           `protobuf:"bytes,1,opt,name=group_id,json=groupId,proto3" json:"group_id"`
	Participants []quorum.Address `protobuf:"bytes,2,rep,name=participants,proto3" json:"participants"`
	Threshold    uint32           `protobuf:"varint,3,opt,name=threshold,proto3" json:"threshold"`
}

func (ResetGroupMsg) Path() string {
	return pathResetGroupMsg
}

func (m *ResetGroupMsg) Validate() error {
	if len(m.GroupID) == 0 {
		return errors.Field("GroupID", errors.ErrEmpty, "required")
	}
	return validateMembership(m.Participants, m.Threshold, errors.ErrInvalidMsg)
}

// CreateProposalMsg creates a proposal to execute an action on behalf of a
// group. When Proposer is not set, the main signer is used.
type CreateProposalMsg struct {
	GroupID  []byte               `protobuf:"bytes,1,opt,name=group_id,json=groupId,proto3" json:"group_id"`
	Proposer quorum.Address       `protobuf:"bytes,2,opt,name=proposer,proto3" json:"proposer,omitempty"`
	Target   quorum.Address       `protobuf:"bytes,3,opt,name=target,proto3" json:"target"`
	Params   []*AccountDescriptor `protobuf:"bytes,4,rep,name=params,proto3" json:"params,omitempty"`
	Payload  []byte               `protobuf:"bytes,5,opt,name=payload,proto3" json:"payload,omitempty"`
	EndTime  quorum.UnixTime      `protobuf:"varint,6,opt,name=end_time,json=endTime,proto3" json:"end_time"`
}

func (CreateProposalMsg) Path() string {
	return pathCreateProposalMsg
}

func (m *CreateProposalMsg) Validate() error {
	var errs error
	if len(m.GroupID) == 0 {
		errs = errors.AppendField(errs, "GroupID", errors.ErrEmpty)
	}
	if m.Proposer != nil {
		errs = errors.AppendField(errs, "Proposer", m.Proposer.Validate())
	}
	if err := m.action().Validate(); err != nil {
		errs = errors.Append(errs, err)
	}
	errs = errors.AppendField(errs, "EndTime", m.EndTime.Validate())
	return errs
}

func (m *CreateProposalMsg) action() *Action {
	return &Action{
		Target:  m.Target,
		Params:  m.Params,
		Payload: m.Payload,
	}
}

// VoteMsg records a vote of a participant. When Voter is not set, the main
// signer is used.
type VoteMsg struct {
	ProposalID []byte         `protobuf:"bytes,1,opt,name=proposal_id,json=proposalId,proto3" json:"proposal_id"`
	Voter      quorum.Address `protobuf:"bytes,2,opt,name=voter,proto3" json:"voter,omitempty"`
	Approve    bool           `protobuf:"varint,3,opt,name=approve,proto3" json:"approve"`
}

func (VoteMsg) Path() string {
	return pathVoteMsg
}

func (m *VoteMsg) Validate() error {
	var errs error
	if len(m.ProposalID) == 0 {
		errs = errors.AppendField(errs, "ProposalID", errors.ErrEmpty)
	}
	if m.Voter != nil {
		errs = errors.AppendField(errs, "Voter", m.Voter.Validate())
	}
	return errs
}

// ExecuteMsg hands an accepted proposal to the executor.
type ExecuteMsg struct {
	ProposalID []byte `protobuf:"bytes,1,opt,name=proposal_id,json=proposalId,proto3" json:"proposal_id"`
}

func (ExecuteMsg) Path() string {
	return pathExecuteMsg
}

func (m *ExecuteMsg) Validate() error {
	if len(m.ProposalID) == 0 {
		return errors.Field("ProposalID", errors.ErrEmpty, "required")
	}
	return nil
}
