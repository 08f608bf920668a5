/*
Quorumcli is a command line client operating on a local quorum state
database.

Every command that changes the state is processed as a transaction in its
own block: it is checked, delivered and committed. Signers of a transaction
are declared with the -as flag and trusted as given.

	$ quorumcli init genesis.yaml
	$ quorumcli create-group --as sigs/ed25519/01AB --participant cond:sigs/ed25519/01AB ...
	$ quorumcli propose 1 --as sigs/ed25519/01AB --target ... --end-time 2030-01-01T00:00:00Z
	$ quorumcli vote 1 --as sigs/ed25519/02CD
	$ quorumcli execute 1 --format cbor > request.cbor

Configuration is read from the environment: QUORUM_HOME, QUORUM_CHAIN_ID,
QUORUM_LOG_LEVEL and QUORUM_DEBUG.
*/
package main

import (
	"fmt"
	"os"

	"github.com/iov-one/quorum/errors"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}
	if err := newRootCmd(cfg, os.Stdout, os.Stderr).Execute(); err != nil {
		code, msg := errors.Info(err, cfg.Debug)
		fmt.Fprintf(os.Stderr, "Error (code %d): %s\n", code, msg)
		os.Exit(1)
	}
}
