package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

const (
	groupBucketName    = "multigrp"
	proposalBucketName = "multiprop"

	indexNameGroup = "group"
)

// GroupBucket stores groups under a sequence generated ID.
type GroupBucket struct {
	orm.ModelBucket
	seq orm.Sequence
}

// NewGroupBucket returns a bucket for managing groups.
func NewGroupBucket() *GroupBucket {
	seq := orm.NewSequence(groupBucketName, "id")
	return &GroupBucket{
		ModelBucket: orm.NewModelBucket(groupBucketName, &Group{}, orm.WithIDSequence(seq)),
		seq:         seq,
	}
}

// Create allocates a new ID and stores the group under it. The group
// authority address is derived from the ID, so it is set here.
func (b *GroupBucket) Create(db quorum.KVStore, g *Group) ([]byte, error) {
	id, err := b.seq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "group ID")
	}
	g.Address = GroupCondition(id, g.Salt).Address()
	if _, err := b.Put(db, id, g); err != nil {
		return nil, errors.Wrap(err, "cannot save group")
	}
	return id, nil
}

// GetGroup loads the group with given ID. ErrNotFound is returned if it does
// not exist.
func (b *GroupBucket) GetGroup(db quorum.ReadOnlyKVStore, id []byte) (*Group, error) {
	var g Group
	if err := b.One(db, id, &g); err != nil {
		return nil, errors.Wrapf(err, "group %X", id)
	}
	return &g, nil
}

// ProposalBucket stores proposals, indexed by the group they belong to.
type ProposalBucket struct {
	orm.ModelBucket
}

// NewProposalBucket returns a bucket for managing proposals.
func NewProposalBucket() *ProposalBucket {
	return &ProposalBucket{
		ModelBucket: orm.NewModelBucket(proposalBucketName, &Proposal{},
			orm.WithIDSequence(orm.NewSequence(proposalBucketName, "id")),
			orm.WithIndex(indexNameGroup, proposalGroupIndexer, false),
		),
	}
}

func proposalGroupIndexer(obj orm.Object) ([]byte, error) {
	p, ok := obj.Value().(*Proposal)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return p.GroupID, nil
}

// GetProposal loads the proposal with given ID. ErrNotFound is returned if it
// does not exist.
func (b *ProposalBucket) GetProposal(db quorum.ReadOnlyKVStore, id []byte) (*Proposal, error) {
	var p Proposal
	if err := b.One(db, id, &p); err != nil {
		return nil, errors.Wrapf(err, "proposal %X", id)
	}
	return &p, nil
}

// ByGroup returns all proposals of a group together with their IDs.
func (b *ProposalBucket) ByGroup(db quorum.ReadOnlyKVStore, groupID []byte) ([][]byte, []*Proposal, error) {
	var proposals []*Proposal
	keys, err := b.ByIndex(db, indexNameGroup, groupID, &proposals)
	if err != nil {
		return nil, nil, errors.Wrap(err, "proposals by group")
	}
	return keys, proposals, nil
}

// HasOpenProposals returns true if any proposal of the group is pending and
// still accepting votes at given time.
func (b *ProposalBucket) HasOpenProposals(db quorum.ReadOnlyKVStore, groupID []byte, now quorum.UnixTime) (bool, error) {
	_, proposals, err := b.ByGroup(db, groupID)
	if err != nil {
		return false, err
	}
	for _, p := range proposals {
		if p.Outcome == OutcomePending && p.IsOpen(now) {
			return true, nil
		}
	}
	return false, nil
}
