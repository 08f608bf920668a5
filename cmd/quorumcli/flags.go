package main

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/spf13/cobra"
)

// txFlags are accepted by every command that submits a transaction.
type txFlags struct {
	as     []string
	at     string
	encode bool
}

func addTxFlags(cmd *cobra.Command, f *txFlags) {
	cmd.Flags().StringArrayVar(&f.as, "as", nil, "condition of a signer, for example sigs/ed25519/01AB (repeatable)")
	cmd.Flags().StringVar(&f.at, "time", "", "block time as RFC3339 or UNIX seconds, defaults to now")
	cmd.Flags().BoolVar(&f.encode, "encode", false, "write the encoded transaction instead of submitting it, to be used as a proposal payload")
}

// parseID accepts a sequence number and returns the key it is stored under.
func parseID(s string) ([]byte, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid ID %q", s)
	}
	id := make([]byte, 8)
	binary.BigEndian.PutUint64(id, n)
	return id, nil
}

// formatID is the reverse of parseID. Keys not created by a sequence are
// hex encoded.
func formatID(id []byte) string {
	if len(id) == 8 {
		return strconv.FormatUint(binary.BigEndian.Uint64(id), 10)
	}
	return strings.ToUpper(hex.EncodeToString(id))
}

func parseSigners(raw []string) ([]quorum.Condition, error) {
	conds := make([]quorum.Condition, 0, len(raw))
	for _, s := range raw {
		var c quorum.Condition
		if err := json.Unmarshal([]byte(strconv.Quote(s)), &c); err != nil {
			return nil, errors.Wrapf(err, "signer %q", s)
		}
		if err := c.Validate(); err != nil {
			return nil, errors.Wrapf(err, "signer %q", s)
		}
		conds = append(conds, c)
	}
	return conds, nil
}

func parseAddresses(raw []string) ([]quorum.Address, error) {
	addrs := make([]quorum.Address, 0, len(raw))
	for _, s := range raw {
		a, err := quorum.ParseAddress(s)
		if err != nil {
			return nil, errors.Wrapf(err, "address %q", s)
		}
		addrs = append(addrs, a)
	}
	return addrs, nil
}

// parseParams reads account descriptors in the form
// <address>[,signer][,writable].
func parseParams(raw []string) ([]*multisig.AccountDescriptor, error) {
	params := make([]*multisig.AccountDescriptor, 0, len(raw))
	for _, s := range raw {
		chunks := strings.Split(s, ",")
		ref, err := quorum.ParseAddress(chunks[0])
		if err != nil {
			return nil, errors.Wrapf(err, "param %q", s)
		}
		p := &multisig.AccountDescriptor{Ref: ref}
		for _, attr := range chunks[1:] {
			switch attr {
			case "signer":
				p.IsSigner = true
			case "writable":
				p.IsWritable = true
			default:
				return nil, errors.Wrapf(errors.ErrInvalidInput, "param %q: unknown attribute %q", s, attr)
			}
		}
		params = append(params, p)
	}
	return params, nil
}
