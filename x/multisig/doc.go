/*
Package multisig implements threshold authorization: a group of participants
collectively controls the right to invoke an external action, and the action
is executed only once a quorum of the participants approved it.

A Group holds an ordered list of participants and an approval threshold. Any
participant can create a Proposal describing an action. The proposal takes a
snapshot of the group membership: one vote slot per participant, in group
order, with the proposer's slot already approving. Each participant may vote
once. A new proposal is always Pending. After every vote the proposal is
tallied and moves to Accepted as soon as the approvals reach the threshold,
or to Rejected once the rejections reach the number of participants above
the threshold.

An accepted proposal can be executed exactly once. The proposal is marked
Executed before the configured Executor receives an ExecutionRequest. The
executor runs with the group authority present in the context, so the group
can authorize actions (including resetting its own membership) through the
Authenticate authenticator.

Membership of a group can only be changed by the group itself. A reset is
refused while a pending proposal of that group is still open for voting.
*/
package multisig
