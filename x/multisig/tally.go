package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// NewProposal returns a pending proposal for given group. Every participant
// gets an unset vote slot, except for the proposer whose slot approves. The
// outcome is only recomputed when a vote is cast.
func NewProposal(groupID []byte, g *Group, proposer quorum.Address, action *Action, now, end quorum.UnixTime) (*Proposal, error) {
	if !g.IsMember(proposer) {
		return nil, errors.Wrapf(ErrInvalidMember, "proposer %s", proposer)
	}
	votes := make([]*VoteSlot, len(g.Participants))
	for i, p := range g.Participants {
		votes[i] = &VoteSlot{Participant: p.Clone(), Value: VoteUnset}
		if p.Equals(proposer) {
			votes[i].Value = VoteApprove
		}
	}
	p := &Proposal{
		GroupID:   groupID,
		Action:    action,
		Votes:     votes,
		Threshold: g.Threshold,
		Proposer:  proposer,
		StartTime: now,
		EndTime:   end,
		Outcome:   OutcomePending,
	}
	return p, nil
}

// IsOpen returns true if votes are accepted at given time. The end time is
// inclusive.
func (p *Proposal) IsOpen(now quorum.UnixTime) bool {
	return p.EndTime == 0 || now <= p.EndTime
}

// Vote records the vote of a participant and tallies the proposal.
func (p *Proposal) Vote(now quorum.UnixTime, voter quorum.Address, approve bool) error {
	if !p.IsOpen(now) {
		return errors.Wrapf(ErrProposalFinished, "voting closed at %s", p.EndTime)
	}
	if p.Outcome != OutcomePending {
		return errors.Wrapf(ErrProposalDetermined, "outcome %s", p.Outcome)
	}
	slot := p.slot(voter)
	if slot == nil {
		return errors.Wrapf(ErrInvalidMember, "voter %s", voter)
	}
	if slot.Value != VoteUnset {
		return errors.Wrapf(ErrAlreadyVoted, "voter %s", voter)
	}
	if approve {
		slot.Value = VoteApprove
	} else {
		slot.Value = VoteReject
	}
	p.Outcome = p.tally()
	return nil
}

func (p *Proposal) slot(addr quorum.Address) *VoteSlot {
	for _, s := range p.Votes {
		if s.Participant.Equals(addr) {
			return s
		}
	}
	return nil
}

// Count returns the number of approving and rejecting votes.
func (p *Proposal) Count() (agree, disagree int) {
	for _, s := range p.Votes {
		switch s.Value {
		case VoteApprove:
			agree++
		case VoteReject:
			disagree++
		}
	}
	return agree, disagree
}

// tally returns the outcome mandated by the current votes. A proposal is
// rejected once the rejections reach the number of participants above the
// threshold. With a threshold equal to the group size that number is zero,
// so any vote that does not accept rejects. Acceptance wins when both are
// reached at once.
func (p *Proposal) tally() Outcome {
	agree, disagree := p.Count()
	threshold := int(p.Threshold)
	switch {
	case agree >= threshold:
		return OutcomeAccepted
	case disagree >= len(p.Votes)-threshold:
		return OutcomeRejected
	default:
		return OutcomePending
	}
}

// Execute marks an accepted proposal as executed.
func (p *Proposal) Execute() error {
	if p.Outcome != OutcomeAccepted {
		return errors.Wrapf(ErrNotAccepted, "outcome %s", p.Outcome)
	}
	p.Outcome = OutcomeExecuted
	return nil
}
