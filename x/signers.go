package x

import (
	"context"

	"github.com/iov-one/quorum"
)

type contextKey int

const contextKeySigners contextKey = iota

// WithSigners returns a context that declares given conditions as
// authenticated. It is used by the surrounding system (the command line
// client, a transport layer) after it verified the identity of the caller.
// Calling it many times accumulates the conditions.
func WithSigners(ctx quorum.Context, signers ...quorum.Condition) quorum.Context {
	prev, _ := ctx.Value(contextKeySigners).([]quorum.Condition)
	all := make([]quorum.Condition, 0, len(prev)+len(signers))
	all = append(all, prev...)
	all = append(all, signers...)
	return context.WithValue(ctx, contextKeySigners, all)
}

// ContextAuth reads the conditions that were declared as authenticated by
// WithSigners.
type ContextAuth struct{}

var _ Authenticator = ContextAuth{}

// GetConditions returns all signers declared in the context.
func (ContextAuth) GetConditions(ctx quorum.Context) []quorum.Condition {
	val, _ := ctx.Value(contextKeySigners).([]quorum.Condition)
	return val
}

// HasAddress returns true if any of the declared signers has given address.
func (a ContextAuth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
