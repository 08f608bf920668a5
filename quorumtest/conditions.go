package quorumtest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/quorum"
)

var counter uint64

// NewCondition returns a condition that is unique for the whole test run.
func NewCondition() quorum.Condition {
	n := atomic.AddUint64(&counter, 1)
	seq := make([]byte, 8)
	binary.BigEndian.PutUint64(seq, n)
	return quorum.NewCondition("test", "seq", seq)
}

// NewAddress returns an address that is unique for the whole test run.
func NewAddress() quorum.Address {
	return NewCondition().Address()
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation. It fails the test if the address is malformed.
func ParseAddress(t testing.TB, encodedAddress string) quorum.Address {
	t.Helper()

	addr, err := quorum.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// SequenceID returns the 8 bytes big endian representation of n, the same
// that ID sequences produce.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
