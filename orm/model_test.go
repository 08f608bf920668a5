package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum/errors"
)

// thing is a model used only in tests.
type thing struct {
	Name  string   `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Owner []byte   `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Tags  [][]byte `protobuf:"bytes,3,rep,name=tags,proto3" json:"tags,omitempty"`
}

var _ Model = (*thing)(nil)

func (t *thing) Validate() error {
	if t.Name == "" {
		return errors.Field("Name", errors.ErrEmpty, "required")
	}
	return nil
}

func (t *thing) Copy() Model {
	cpy := *t
	return &cpy
}

func (t *thing) Marshal() ([]byte, error) { return proto.Marshal((*thingWire)(t)) }
func (t *thing) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*thingWire)(t)) }

type thingWire thing

func (m *thingWire) Reset()         { *m = thingWire{} }
func (m *thingWire) String() string { return proto.CompactTextString(m) }
func (*thingWire) ProtoMessage()    {}

func ownerIndexer(obj Object) ([]byte, error) {
	t, ok := obj.Value().(*thing)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return t.Owner, nil
}

func nameIndexer(obj Object) ([]byte, error) {
	t, ok := obj.Value().(*thing)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return []byte(t.Name), nil
}

func tagsIndexer(obj Object) ([][]byte, error) {
	t, ok := obj.Value().(*thing)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return t.Tags, nil
}
