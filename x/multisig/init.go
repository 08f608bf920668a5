package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ quorum.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial groups and the configuration from genesis
// and save them in the database. Configuration is optional.
func (*Initializer) FromGenesis(opts quorum.Options, db quorum.KVStore) error {
	var genesis struct {
		Groups []struct {
			Participants []quorum.Address `json:"participants"`
			Threshold    uint32           `json:"threshold"`
			Salt         uint32           `json:"salt"`
		} `json:"groups"`
	}
	if err := opts.ReadOptions(packageName, &genesis); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	var conf Configuration
	if err := gconf.InitConfig(db, opts, packageName, &conf); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "init config")
	}

	bucket := NewGroupBucket()
	for i, g := range genesis.Groups {
		if err := validateMembership(g.Participants, g.Threshold, errors.ErrInvalidInput); err != nil {
			return errors.Wrapf(err, "group #%d", i)
		}
		group := Group{
			Participants: g.Participants,
			Threshold:    g.Threshold,
			Salt:         g.Salt,
		}
		if _, err := bucket.Create(db, &group); err != nil {
			return errors.Wrapf(err, "cannot save #%d group", i)
		}
	}
	return nil
}
