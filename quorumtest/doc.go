// Package quorumtest provides test doubles and helpers for packages built on
// top of quorum: authenticators, transactions, messages, handlers and
// decorators.
package quorumtest
