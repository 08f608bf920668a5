package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/errors"
	"github.com/spf13/cobra"
)

type cli struct {
	cfg         *config
	out         io.Writer
	errOut      io.Writer
	metricsFile string
}

func newRootCmd(cfg *config, out, errOut io.Writer) *cobra.Command {
	c := &cli{cfg: cfg, out: out, errOut: errOut}
	root := &cobra.Command{
		Use:           "quorumcli",
		Short:         "Manage threshold groups and their proposals",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&cfg.Home, "home", cfg.Home, "directory holding the state database")
	root.PersistentFlags().StringVar(&c.metricsFile, "metrics-file", "", "write request metrics in the Prometheus text format to this file")

	root.AddCommand(
		c.initCmd(),
		c.createGroupCmd(),
		c.resetGroupCmd(),
		c.proposeCmd(),
		c.voteCmd(),
		c.executeCmd(),
		c.showGroupCmd(),
		c.showProposalCmd(),
		versionCmd(out),
	)
	return root
}

func (c *cli) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [genesis file]",
		Short: "Initialize the state from a JSON or YAML genesis file",
		Long: `Initialize the state from a JSON or YAML genesis file.
Without a file the state is initialized empty, with the chain ID taken from
QUORUM_CHAIN_ID.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			g := &app.Genesis{ChainID: c.cfg.ChainID, AppState: quorum.Options{}}
			if len(args) == 1 {
				if g, err = app.LoadGenesis(args[0]); err != nil {
					return err
				}
			}
			n, err := c.open()
			if err != nil {
				return err
			}
			defer func() {
				if cerr := c.close(n); err == nil {
					err = cerr
				}
			}()
			if err := n.InitChain(g); err != nil {
				return err
			}
			info, err := n.Commit()
			if err != nil {
				return err
			}
			return c.printJSON(map[string]interface{}{
				"chain_id": g.ChainID,
				"height":   info.Version,
				"hash":     fmt.Sprintf("%X", info.Hash),
			})
		},
	}
}

// deliver submits the message, or writes it encoded when requested.
func (c *cli) deliver(msg quorum.Msg, tf *txFlags) (*quorum.DeliverResult, error) {
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	if tf.encode {
		raw, err := app.EncodeTx(msg)
		if err != nil {
			return nil, err
		}
		_, err = c.out.Write(raw)
		return nil, err
	}
	return c.submit(msg, tf)
}

func (c *cli) printJSON(v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrType, err.Error())
	}
	_, err = fmt.Fprintln(c.out, string(raw))
	return err
}

func versionCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(out, quorum.Version())
		},
	}
}
