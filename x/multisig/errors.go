package multisig

import "github.com/iov-one/quorum/errors"

// Errors of the multisig extension. The range 1030-1041 is reserved.
var (
	ErrEmptyGroup         = errors.Register(1030, "empty group")
	ErrInvalidThreshold   = errors.Register(1031, "invalid threshold")
	ErrDuplicateMember    = errors.Register(1032, "duplicate member")
	ErrInvalidMember      = errors.Register(1033, "invalid member")
	ErrInvalidEndTime     = errors.Register(1034, "invalid end time")
	ErrProposalFinished   = errors.Register(1035, "proposal has finished")
	ErrProposalDetermined = errors.Register(1036, "proposal determined")
	ErrAlreadyVoted       = errors.Register(1037, "already voted")
	ErrNotAccepted        = errors.Register(1038, "proposal not accepted")
	ErrPendingProposals   = errors.Register(1039, "pending proposals")
)
