package app

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Tx is the binary envelope of a single message. The path selects both the
// message type used to decode the payload and the handler processing it.
type Tx struct {
	Path    string `protobuf:"bytes,1,opt,name=path,proto3" json:"path,omitempty"`
	Payload []byte `protobuf:"bytes,2,opt,name=payload,proto3" json:"payload,omitempty"`
}

func (m *Tx) Marshal() ([]byte, error) { return proto.Marshal((*txWire)(m)) }
func (m *Tx) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*txWire)(m)) }

type txWire Tx

func (m *txWire) Reset()         { *m = txWire{} }
func (m *txWire) String() string { return proto.CompactTextString(m) }
func (*txWire) ProtoMessage()    {}

// NewTx serializes given message into an envelope.
func NewTx(msg quorum.Msg) (*Tx, error) {
	if msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	raw, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal message")
	}
	return &Tx{Path: msg.Path(), Payload: raw}, nil
}

// EncodeTx returns the binary representation of a transaction carrying
// given message.
func EncodeTx(msg quorum.Msg) ([]byte, error) {
	tx, err := NewTx(msg)
	if err != nil {
		return nil, err
	}
	return tx.Marshal()
}

// MsgRegistry knows every message type the application accepts, by path.
type MsgRegistry struct {
	types map[string]reflect.Type
}

// NewMsgRegistry returns a registry with given messages registered.
func NewMsgRegistry(msgs ...quorum.Msg) *MsgRegistry {
	r := &MsgRegistry{types: make(map[string]reflect.Type)}
	r.Register(msgs...)
	return r
}

// Register adds message types to the registry. Only pointer messages are
// accepted. It panics when a path is registered twice.
func (r *MsgRegistry) Register(msgs ...quorum.Msg) {
	for _, msg := range msgs {
		t := reflect.TypeOf(msg)
		if t.Kind() != reflect.Ptr {
			panic(fmt.Sprintf("message %T must be a pointer", msg))
		}
		path := msg.Path()
		if _, ok := r.types[path]; ok {
			panic(fmt.Sprintf("message path %q already registered", path))
		}
		r.types[path] = t.Elem()
	}
}

// Paths returns all registered message paths in lexical order.
func (r *MsgRegistry) Paths() []string {
	paths := make([]string, 0, len(r.types))
	for p := range r.types {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Decode returns the message stored in given envelope.
func (r *MsgRegistry) Decode(tx *Tx) (quorum.Msg, error) {
	t, ok := r.types[tx.Path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "message path %q", tx.Path)
	}
	msg := reflect.New(t).Interface().(quorum.Msg)
	if err := msg.Unmarshal(tx.Payload); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "cannot unmarshal %s: %s", tx.Path, err)
	}
	return msg, nil
}

// DecodeTx parses the binary representation of a transaction.
func (r *MsgRegistry) DecodeTx(raw []byte) (quorum.Tx, error) {
	var tx Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, err.Error())
	}
	msg, err := r.Decode(&tx)
	if err != nil {
		return nil, err
	}
	return &decodedTx{raw: tx, msg: msg}, nil
}

// TxDecoder returns the decoder function for this registry.
func (r *MsgRegistry) TxDecoder() quorum.TxDecoder {
	return r.DecodeTx
}

// WrapMsg returns a transaction carrying given message.
func WrapMsg(msg quorum.Msg) (quorum.Tx, error) {
	tx, err := NewTx(msg)
	if err != nil {
		return nil, err
	}
	return &decodedTx{raw: *tx, msg: msg}, nil
}

// decodedTx is an envelope together with its already decoded message.
type decodedTx struct {
	raw Tx
	msg quorum.Msg
}

var _ quorum.Tx = (*decodedTx)(nil)

func (tx *decodedTx) GetMsg() (quorum.Msg, error) {
	return tx.msg, nil
}

func (tx *decodedTx) Marshal() ([]byte, error) {
	return tx.raw.Marshal()
}

func (tx *decodedTx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "decoded transaction cannot be unmarshaled, use a decoder")
}
