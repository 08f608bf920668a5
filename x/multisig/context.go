package multisig

import (
	"context"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/x"
)

type contextKey int

const (
	// private type creates an interface key for Context that cannot be accessed by any other package
	contextKeyGroup contextKey = iota
)

// withGroupAuthority grants the authority of a group. Only this package can
// do that, and only while executing an accepted proposal.
func withGroupAuthority(ctx quorum.Context, cond quorum.Condition) quorum.Context {
	val, _ := ctx.Value(contextKeyGroup).([]quorum.Condition)
	conds := make([]quorum.Condition, 0, len(val)+1)
	conds = append(conds, val...)
	return context.WithValue(ctx, contextKeyGroup, append(conds, cond))
}

// Authenticate exposes the group authorities granted to the current context.
type Authenticate struct {
}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the group conditions granted to this context.
func (a Authenticate) GetConditions(ctx quorum.Context) []quorum.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeyGroup).([]quorum.Condition)
	return val
}

// HasAddress returns true iff this address is in GetConditions.
func (a Authenticate) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
