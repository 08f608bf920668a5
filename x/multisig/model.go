package multisig

import (
	"encoding/binary"
	"encoding/json"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// VoteValue is the content of a single vote slot.
type VoteValue int32

const (
	VoteUnset VoteValue = iota
	VoteApprove
	VoteReject
)

var voteValueNames = map[VoteValue]string{
	VoteUnset:   "unset",
	VoteApprove: "approve",
	VoteReject:  "reject",
}

func (v VoteValue) String() string {
	if s, ok := voteValueNames[v]; ok {
		return s
	}
	return "invalid"
}

func (v VoteValue) Validate() error {
	if _, ok := voteValueNames[v]; !ok {
		return errors.Wrapf(errors.ErrInvalidState, "vote value %d", v)
	}
	return nil
}

func (v VoteValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *VoteValue) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "vote value must be a string")
	}
	for val, name := range voteValueNames {
		if name == s {
			*v = val
			return nil
		}
	}
	return errors.Wrapf(errors.ErrInvalidInput, "unknown vote value %q", s)
}

// Outcome is the state of a proposal.
type Outcome int32

const (
	OutcomePending Outcome = iota
	OutcomeAccepted
	OutcomeRejected
	OutcomeExecuted
)

var outcomeNames = map[Outcome]string{
	OutcomePending:  "pending",
	OutcomeAccepted: "accepted",
	OutcomeRejected: "rejected",
	OutcomeExecuted: "executed",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return "invalid"
}

func (o Outcome) Validate() error {
	if _, ok := outcomeNames[o]; !ok {
		return errors.Wrapf(errors.ErrInvalidState, "outcome %d", o)
	}
	return nil
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *Outcome) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "outcome must be a string")
	}
	for val, name := range outcomeNames {
		if name == s {
			*o = val
			return nil
		}
	}
	return errors.Wrapf(errors.ErrInvalidInput, "unknown outcome %q", s)
}

// Group is a set of participants that collectively authorize actions.
type Group struct {
	// Participants order is fixed and defines the order of vote slots.
	Participants []quorum.Address `protobuf:"bytes,1,rep,name=participants,proto3" json:"participants"`
	Threshold    uint32           `protobuf:"varint,2,opt,name=threshold,proto3" json:"threshold"`
	// Salt is combined with the group ID to derive the group authority.
	Salt uint32 `protobuf:"varint,3,opt,name=salt,proto3" json:"salt"`
	// Address is the address of the group authority condition.
	Address quorum.Address `protobuf:"bytes,4,opt,name=address,proto3" json:"address"`
}

var _ orm.Model = (*Group)(nil)

func (g *Group) Validate() error {
	if err := validateMembership(g.Participants, g.Threshold, errors.ErrInvalidModel); err != nil {
		return err
	}
	if err := g.Address.Validate(); err != nil {
		return errors.Field("Address", err, "invalid group authority")
	}
	return nil
}

func (g *Group) Copy() orm.Model {
	ps := make([]quorum.Address, len(g.Participants))
	for i, p := range g.Participants {
		ps[i] = p.Clone()
	}
	return &Group{
		Participants: ps,
		Threshold:    g.Threshold,
		Salt:         g.Salt,
		Address:      g.Address.Clone(),
	}
}

// IsMember returns true if given address is one of the group participants.
func (g *Group) IsMember(addr quorum.Address) bool {
	for _, p := range g.Participants {
		if p.Equals(addr) {
			return true
		}
	}
	return false
}

// validateMembership checks participants and threshold of a group. Any
// non-module error is wrapped with base so that a model and a message
// failure can be told apart.
func validateMembership(participants []quorum.Address, threshold uint32, base error) error {
	if len(participants) == 0 {
		return errors.Wrap(ErrEmptyGroup, "no participants")
	}
	if threshold == 0 || int(threshold) > len(participants) {
		return errors.Wrapf(ErrInvalidThreshold, "threshold %d for %d participants", threshold, len(participants))
	}
	for i, p := range participants {
		if err := p.Validate(); err != nil {
			return errors.Field("Participants", errors.Wrap(base, err.Error()), "participant #%d", i)
		}
		for j := 0; j < i; j++ {
			if participants[j].Equals(p) {
				return errors.Wrapf(ErrDuplicateMember, "participant #%d and #%d: %s", j, i, p)
			}
		}
	}
	return nil
}

// GroupCondition returns the authority condition of a group. It is a pure
// function of the group ID and the salt chosen at the group creation.
func GroupCondition(groupID []byte, salt uint32) quorum.Condition {
	data := make([]byte, len(groupID)+4)
	copy(data, groupID)
	binary.BigEndian.PutUint32(data[len(groupID):], salt)
	return quorum.NewCondition("multisig", "group", data)
}

// AccountDescriptor references an account the action operates on.
type AccountDescriptor struct {
	Ref        quorum.Address `protobuf:"bytes,1,opt,name=ref,proto3" json:"ref"`
	IsSigner   bool           `protobuf:"varint,2,opt,name=is_signer,json=isSigner,proto3" json:"is_signer"`
	IsWritable bool           `protobuf:"varint,3,opt,name=is_writable,json=isWritable,proto3" json:"is_writable"`
}

func (a *AccountDescriptor) Validate() error {
	if a == nil {
		return errors.Wrap(errors.ErrEmpty, "account descriptor")
	}
	return a.Ref.Validate()
}

func (a *AccountDescriptor) Copy() *AccountDescriptor {
	return &AccountDescriptor{
		Ref:        a.Ref.Clone(),
		IsSigner:   a.IsSigner,
		IsWritable: a.IsWritable,
	}
}

// Action is an opaque description of what a group wants to be done. It is
// interpreted only by the executor.
type Action struct {
	Target  quorum.Address       `protobuf:"bytes,1,opt,name=target,proto3" json:"target"`
	Params  []*AccountDescriptor `protobuf:"bytes,2,rep,name=params,proto3" json:"params,omitempty"`
	Payload []byte               `protobuf:"bytes,3,opt,name=payload,proto3" json:"payload,omitempty"`
}

func (a *Action) Validate() error {
	if a == nil {
		return errors.Wrap(errors.ErrEmpty, "action")
	}
	var errs error
	errs = errors.AppendField(errs, "Target", a.Target.Validate())
	for i, p := range a.Params {
		if err := p.Validate(); err != nil {
			errs = errors.Append(errs, errors.Field("Params", err, "param #%d", i))
		}
	}
	return errs
}

func (a *Action) Copy() *Action {
	if a == nil {
		return nil
	}
	params := make([]*AccountDescriptor, len(a.Params))
	for i, p := range a.Params {
		params[i] = p.Copy()
	}
	return &Action{
		Target:  a.Target.Clone(),
		Params:  params,
		Payload: append([]byte(nil), a.Payload...),
	}
}

// VoteSlot holds the vote of a single participant.
type VoteSlot struct {
	Participant quorum.Address `protobuf:"bytes,1,opt,name=participant,proto3" json:"participant"`
	Value       VoteValue      `protobuf:"varint,2,opt,name=value,proto3" json:"value"`
}

// Proposal is a request to execute an action on behalf of a group.
type Proposal struct {
	GroupID []byte  `protobuf:"bytes,1,opt,name=group_id,json=groupId,proto3" json:"group_id"`
	Action  *Action `protobuf:"bytes,2,opt,name=action,proto3" json:"action"`
	// Votes is a snapshot of the group membership taken when the proposal
	// was created. It is never resized.
	Votes []*VoteSlot `protobuf:"bytes,3,rep,name=votes,proto3" json:"votes"`
	// Threshold is a snapshot of the group threshold.
	Threshold uint32          `protobuf:"varint,4,opt,name=threshold,proto3" json:"threshold"`
	Proposer  quorum.Address  `protobuf:"bytes,5,opt,name=proposer,proto3" json:"proposer"`
	StartTime quorum.UnixTime `protobuf:"varint,6,opt,name=start_time,json=startTime,proto3" json:"start_time"`
	// EndTime closes the voting window. Zero means unbounded.
	EndTime quorum.UnixTime `protobuf:"varint,7,opt,name=end_time,json=endTime,proto3" json:"end_time"`
	Outcome Outcome         `protobuf:"varint,8,opt,name=outcome,proto3" json:"outcome"`
}

var _ orm.Model = (*Proposal)(nil)

func (p *Proposal) Validate() error {
	var errs error
	if len(p.GroupID) == 0 {
		errs = errors.AppendField(errs, "GroupID", errors.ErrEmpty)
	}
	if err := p.Action.Validate(); err != nil {
		errs = errors.Append(errs, errors.Field("Action", err, "invalid action"))
	}
	if len(p.Votes) == 0 {
		errs = errors.AppendField(errs, "Votes", errors.ErrEmpty)
	}
	for i, v := range p.Votes {
		if v == nil {
			errs = errors.Append(errs, errors.Field("Votes", errors.ErrEmpty, "slot #%d", i))
			continue
		}
		if err := v.Participant.Validate(); err != nil {
			errs = errors.Append(errs, errors.Field("Votes", err, "slot #%d participant", i))
		}
		if err := v.Value.Validate(); err != nil {
			errs = errors.Append(errs, errors.Field("Votes", err, "slot #%d value", i))
		}
	}
	if p.Threshold == 0 || int(p.Threshold) > len(p.Votes) {
		errs = errors.Append(errs, errors.Field("Threshold", errors.ErrInvalidModel, "%d for %d slots", p.Threshold, len(p.Votes)))
	}
	errs = errors.AppendField(errs, "Proposer", p.Proposer.Validate())
	if p.StartTime == 0 {
		errs = errors.AppendField(errs, "StartTime", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "StartTime", p.StartTime.Validate())
	errs = errors.AppendField(errs, "EndTime", p.EndTime.Validate())
	errs = errors.AppendField(errs, "Outcome", p.Outcome.Validate())
	return errs
}

func (p *Proposal) Copy() orm.Model {
	votes := make([]*VoteSlot, len(p.Votes))
	for i, v := range p.Votes {
		votes[i] = &VoteSlot{Participant: v.Participant.Clone(), Value: v.Value}
	}
	return &Proposal{
		GroupID:   append([]byte(nil), p.GroupID...),
		Action:    p.Action.Copy(),
		Votes:     votes,
		Threshold: p.Threshold,
		Proposer:  p.Proposer.Clone(),
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
		Outcome:   p.Outcome,
	}
}

// ExecutionRequest is handed to an Executor when an accepted proposal is
// executed. Capability is the group authority condition.
type ExecutionRequest struct {
	ProposalID []byte               `protobuf:"bytes,1,opt,name=proposal_id,json=proposalId,proto3" json:"proposal_id" cbor:"1,keyasint"`
	GroupID    []byte               `protobuf:"bytes,2,opt,name=group_id,json=groupId,proto3" json:"group_id" cbor:"2,keyasint"`
	Target     quorum.Address       `protobuf:"bytes,3,opt,name=target,proto3" json:"target" cbor:"3,keyasint"`
	Params     []*AccountDescriptor `protobuf:"bytes,4,rep,name=params,proto3" json:"params,omitempty" cbor:"4,keyasint,omitempty"`
	Payload    []byte               `protobuf:"bytes,5,opt,name=payload,proto3" json:"payload,omitempty" cbor:"5,keyasint,omitempty"`
	Capability quorum.Condition     `protobuf:"bytes,6,opt,name=capability,proto3" json:"capability" cbor:"6,keyasint"`
}

// Configuration holds limits enforced on groups and proposals.
type Configuration struct {
	MaxParticipants uint32 `protobuf:"varint,1,opt,name=max_participants,json=maxParticipants,proto3" json:"max_participants"`
	MaxParams       uint32 `protobuf:"varint,2,opt,name=max_params,json=maxParams,proto3" json:"max_params"`
	MaxPayloadSize  uint32 `protobuf:"varint,3,opt,name=max_payload_size,json=maxPayloadSize,proto3" json:"max_payload_size"`
}

func (c *Configuration) Validate() error {
	var errs error
	if c.MaxParticipants == 0 {
		errs = errors.AppendField(errs, "MaxParticipants", errors.ErrEmpty)
	}
	if c.MaxParams == 0 {
		errs = errors.AppendField(errs, "MaxParams", errors.ErrEmpty)
	}
	if c.MaxPayloadSize == 0 {
		errs = errors.AppendField(errs, "MaxPayloadSize", errors.ErrEmpty)
	}
	return errs
}
