package multisig

import "github.com/gogo/protobuf/proto"

// Every persisted model and every message is encoded with protobuf. The wire
// types share the memory layout of the public ones and exist only so that the
// protobuf library does not call back into Marshal.

func (m *Group) Marshal() ([]byte, error) { return proto.Marshal((*groupWire)(m)) }
func (m *Group) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*groupWire)(m)) }

type groupWire Group

func (m *groupWire) Reset()         { *m = groupWire{} }
func (m *groupWire) String() string { return proto.CompactTextString(m) }
func (*groupWire) ProtoMessage()    {}

func (m *Proposal) Marshal() ([]byte, error) { return proto.Marshal((*proposalWire)(m)) }
func (m *Proposal) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*proposalWire)(m)) }

type proposalWire Proposal

func (m *proposalWire) Reset()         { *m = proposalWire{} }
func (m *proposalWire) String() string { return proto.CompactTextString(m) }
func (*proposalWire) ProtoMessage()    {}

func (m *Configuration) Marshal() ([]byte, error) { return proto.Marshal((*configurationWire)(m)) }
func (m *Configuration) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*configurationWire)(m))
}

type configurationWire Configuration

func (m *configurationWire) Reset()         { *m = configurationWire{} }
func (m *configurationWire) String() string { return proto.CompactTextString(m) }
func (*configurationWire) ProtoMessage()    {}

func (m *ExecutionRequest) Marshal() ([]byte, error) {
	return proto.Marshal((*executionRequestWire)(m))
}
func (m *ExecutionRequest) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*executionRequestWire)(m))
}

type executionRequestWire ExecutionRequest

func (m *executionRequestWire) Reset()         { *m = executionRequestWire{} }
func (m *executionRequestWire) String() string { return proto.CompactTextString(m) }
func (*executionRequestWire) ProtoMessage()    {}

func (m *CreateGroupMsg) Marshal() ([]byte, error) { return proto.Marshal((*createGroupWire)(m)) }
func (m *CreateGroupMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*createGroupWire)(m))
}

type createGroupWire CreateGroupMsg

func (m *createGroupWire) Reset()         { *m = createGroupWire{} }
func (m *createGroupWire) String() string { return proto.CompactTextString(m) }
func (*createGroupWire) ProtoMessage()    {}

func (m *ResetGroupMsg) Marshal() ([]byte, error) { return proto.Marshal((*resetGroupWire)(m)) }
func (m *ResetGroupMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*resetGroupWire)(m))
}

type resetGroupWire ResetGroupMsg

func (m *resetGroupWire) Reset()         { *m = resetGroupWire{} }
func (m *resetGroupWire) String() string { return proto.CompactTextString(m) }
func (*resetGroupWire) ProtoMessage()    {}

func (m *CreateProposalMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createProposalWire)(m))
}
func (m *CreateProposalMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*createProposalWire)(m))
}

type createProposalWire CreateProposalMsg

func (m *createProposalWire) Reset()         { *m = createProposalWire{} }
func (m *createProposalWire) String() string { return proto.CompactTextString(m) }
func (*createProposalWire) ProtoMessage()    {}

func (m *VoteMsg) Marshal() ([]byte, error) { return proto.Marshal((*voteWire)(m)) }
func (m *VoteMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*voteWire)(m)) }

type voteWire VoteMsg

func (m *voteWire) Reset()         { *m = voteWire{} }
func (m *voteWire) String() string { return proto.CompactTextString(m) }
func (*voteWire) ProtoMessage()    {}

func (m *ExecuteMsg) Marshal() ([]byte, error) { return proto.Marshal((*executeWire)(m)) }
func (m *ExecuteMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*executeWire)(m)) }

type executeWire ExecuteMsg

func (m *executeWire) Reset()         { *m = executeWire{} }
func (m *executeWire) String() string { return proto.CompactTextString(m) }
func (*executeWire) ProtoMessage()    {}
