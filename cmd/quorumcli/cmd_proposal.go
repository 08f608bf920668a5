package main

import (
	"encoding/hex"
	"io/ioutil"

	"github.com/fxamacker/cbor/v2"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/spf13/cobra"
)

func (c *cli) proposeCmd() *cobra.Command {
	var (
		tf          txFlags
		proposer    string
		target      string
		router      bool
		params      []string
		payloadHex  string
		payloadFile string
		endTime     string
	)
	cmd := &cobra.Command{
		Use:   "propose <group id>",
		Short: "Propose an action to a group, approving it as the proposer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			msg := &multisig.CreateProposalMsg{GroupID: id}
			if msg.Proposer, err = quorum.ParseAddress(proposer); err != nil {
				return errors.Wrap(err, "proposer")
			}
			switch {
			case router && target != "":
				return errors.Wrap(errors.ErrInvalidInput, "use either --router or --target")
			case router:
				msg.Target = app.RouterTarget
			default:
				if msg.Target, err = quorum.ParseAddress(target); err != nil {
					return errors.Wrap(err, "target")
				}
			}
			if msg.Params, err = parseParams(params); err != nil {
				return err
			}
			if msg.Payload, err = readPayload(payloadHex, payloadFile); err != nil {
				return err
			}
			if endTime != "" {
				if msg.EndTime, err = quorum.ParseUnixTime(endTime); err != nil {
					return errors.Wrap(err, "end time")
				}
			}
			res, err := c.deliver(msg, &tf)
			if err != nil || res == nil {
				return err
			}
			return c.printJSON(map[string]interface{}{"proposal_id": formatID(res.Data), "outcome": res.Log})
		},
	}
	addTxFlags(cmd, &tf)
	cmd.Flags().StringVar(&proposer, "proposer", "", "address of the proposer, defaults to the main signer")
	cmd.Flags().StringVar(&target, "target", "", "address of the program or account the action is addressed to")
	cmd.Flags().BoolVar(&router, "router", false, "target the application itself, the payload must be an encoded transaction")
	cmd.Flags().StringArrayVar(&params, "param", nil, "account passed to the action as <address>[,signer][,writable] (repeatable)")
	cmd.Flags().StringVar(&payloadHex, "payload", "", "hex encoded action payload")
	cmd.Flags().StringVar(&payloadFile, "payload-file", "", "file holding the raw action payload")
	cmd.Flags().StringVar(&endTime, "end-time", "", "last moment votes are accepted, RFC3339 or UNIX seconds; unbounded when empty")
	return cmd
}

func readPayload(payloadHex, payloadFile string) ([]byte, error) {
	switch {
	case payloadHex != "" && payloadFile != "":
		return nil, errors.Wrap(errors.ErrInvalidInput, "use either --payload or --payload-file")
	case payloadHex != "":
		raw, err := hex.DecodeString(payloadHex)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "payload: %s", err)
		}
		return raw, nil
	case payloadFile != "":
		raw, err := ioutil.ReadFile(payloadFile)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "payload: %s", err)
		}
		return raw, nil
	default:
		return nil, nil
	}
}

func (c *cli) voteCmd() *cobra.Command {
	var (
		tf     txFlags
		voter  string
		reject bool
	)
	cmd := &cobra.Command{
		Use:   "vote <proposal id>",
		Short: "Approve or reject a proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			msg := &multisig.VoteMsg{ProposalID: id, Approve: !reject}
			if msg.Voter, err = quorum.ParseAddress(voter); err != nil {
				return errors.Wrap(err, "voter")
			}
			res, err := c.deliver(msg, &tf)
			if err != nil || res == nil {
				return err
			}
			return c.printJSON(map[string]interface{}{"proposal_id": formatID(id), "outcome": res.Log})
		},
	}
	addTxFlags(cmd, &tf)
	cmd.Flags().StringVar(&voter, "voter", "", "address of the voter, defaults to the main signer")
	cmd.Flags().BoolVar(&reject, "reject", false, "reject the proposal instead of approving it")
	return cmd
}

func (c *cli) executeCmd() *cobra.Command {
	var (
		tf     txFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "execute <proposal id>",
		Short: "Execute an accepted proposal and print the execution request",
		Long: `Execute an accepted proposal and print the execution request.
Proposals targeting the application are carried out right away. For any other
target the request is printed for an external executor, as JSON, CBOR or
protobuf.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if format != "json" && format != "cbor" && format != "proto" {
				return errors.Wrapf(errors.ErrInvalidInput, "unknown format %q", format)
			}
			res, err := c.deliver(&multisig.ExecuteMsg{ProposalID: id}, &tf)
			if err != nil || res == nil {
				return err
			}
			var req multisig.ExecutionRequest
			if err := req.Unmarshal(res.Data); err != nil {
				return errors.Wrap(err, "execution request")
			}
			switch format {
			case "cbor":
				raw, err := encodeCBOR(&req)
				if err != nil {
					return err
				}
				_, err = c.out.Write(raw)
				return err
			case "proto":
				_, err := c.out.Write(res.Data)
				return err
			default:
				return c.printJSON(map[string]interface{}{"log": res.Log, "request": &req})
			}
		},
	}
	addTxFlags(cmd, &tf)
	cmd.Flags().StringVar(&format, "format", "json", "output format of the execution request: json, cbor or proto")
	return cmd
}

var cborMode cbor.EncMode

func init() {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cbor encoder: " + err.Error())
	}
	cborMode = mode
}

// encodeCBOR serializes the request with the core deterministic encoding,
// so the same request always produces the same bytes.
func encodeCBOR(req *multisig.ExecutionRequest) ([]byte, error) {
	raw, err := cborMode.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrType, err.Error())
	}
	return raw, nil
}

func (c *cli) showProposalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-proposal <proposal id>",
		Short: "Print a proposal with its votes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.view(func(db quorum.ReadOnlyKVStore) error {
				p, err := multisig.NewProposalBucket().GetProposal(db, id)
				if err != nil {
					return err
				}
				agree, disagree := p.Count()
				return c.printJSON(struct {
					ID       string             `json:"id"`
					GroupID  string             `json:"group_id"`
					Proposal *multisig.Proposal `json:"proposal"`
					Agree    int                `json:"agree"`
					Disagree int                `json:"disagree"`
				}{
					ID:       formatID(id),
					GroupID:  formatID(p.GroupID),
					Proposal: p,
					Agree:    agree,
					Disagree: disagree,
				})
			})
		},
	}
}
