package main

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/spf13/cobra"
)

func (c *cli) createGroupCmd() *cobra.Command {
	var (
		tf           txFlags
		participants []string
		threshold    uint32
		salt         uint32
	)
	cmd := &cobra.Command{
		Use:   "create-group",
		Short: "Create a group of participants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addrs, err := parseAddresses(participants)
			if err != nil {
				return err
			}
			msg := &multisig.CreateGroupMsg{
				Participants: addrs,
				Threshold:    threshold,
				Salt:         salt,
			}
			res, err := c.deliver(msg, &tf)
			if err != nil || res == nil {
				return err
			}
			return c.printJSON(map[string]interface{}{
				"group_id": formatID(res.Data),
				"address":  multisig.GroupCondition(res.Data, salt).Address(),
			})
		},
	}
	addTxFlags(cmd, &tf)
	cmd.Flags().StringArrayVar(&participants, "participant", nil, "address of a participant, in order (repeatable)")
	cmd.Flags().Uint32Var(&threshold, "threshold", 0, "number of approvals required to accept a proposal")
	cmd.Flags().Uint32Var(&salt, "salt", 0, "value mixed into the group authority address")
	return cmd
}

func (c *cli) resetGroupCmd() *cobra.Command {
	var (
		tf           txFlags
		participants []string
		threshold    uint32
	)
	cmd := &cobra.Command{
		Use:   "reset-group <group id>",
		Short: "Replace the participants and the threshold of a group",
		Long: `Replace the participants and the threshold of a group.
Only the group itself can do that. Use --encode to produce the payload of a
proposal targeting the application router.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			addrs, err := parseAddresses(participants)
			if err != nil {
				return err
			}
			msg := &multisig.ResetGroupMsg{
				GroupID:      id,
				Participants: addrs,
				Threshold:    threshold,
			}
			res, err := c.deliver(msg, &tf)
			if err != nil || res == nil {
				return err
			}
			return c.printJSON(map[string]interface{}{"group_id": formatID(id), "log": res.Log})
		},
	}
	addTxFlags(cmd, &tf)
	cmd.Flags().StringArrayVar(&participants, "participant", nil, "address of a participant, in order (repeatable)")
	cmd.Flags().Uint32Var(&threshold, "threshold", 0, "number of approvals required to accept a proposal")
	return cmd
}

type proposalSummary struct {
	ID      string           `json:"id"`
	Outcome multisig.Outcome `json:"outcome"`
}

func (c *cli) showGroupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-group <group id>",
		Short: "Print a group and its proposals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.view(func(db quorum.ReadOnlyKVStore) error {
				group, err := multisig.NewGroupBucket().GetGroup(db, id)
				if err != nil {
					return err
				}
				keys, proposals, err := multisig.NewProposalBucket().ByGroup(db, id)
				if err != nil {
					return err
				}
				summaries := make([]proposalSummary, len(keys))
				for i, key := range keys {
					summaries[i] = proposalSummary{ID: formatID(key), Outcome: proposals[i].Outcome}
				}
				return c.printJSON(struct {
					ID        string            `json:"id"`
					Group     *multisig.Group   `json:"group"`
					Proposals []proposalSummary `json:"proposals"`
				}{
					ID:        formatID(id),
					Group:     group,
					Proposals: summaries,
				})
			})
		},
	}
}
