package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
)

const packageName = "multisig"

// DefaultConfiguration is used when no configuration was stored.
func DefaultConfiguration() Configuration {
	return Configuration{
		MaxParticipants: 100,
		MaxParams:       64,
		MaxPayloadSize:  64 * 1024,
	}
}

// loadConf returns the stored configuration or the default one.
func loadConf(db quorum.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		conf = DefaultConfiguration()
		return &conf, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}

func (c *Configuration) checkParticipants(participants []quorum.Address) error {
	if uint32(len(participants)) > c.MaxParticipants {
		return errors.Field("Participants", errors.ErrInvalidInput,
			"%d participants, at most %d allowed", len(participants), c.MaxParticipants)
	}
	return nil
}

func (c *Configuration) checkAction(a *Action) error {
	var errs error
	if uint32(len(a.Params)) > c.MaxParams {
		errs = errors.Append(errs, errors.Field("Params", errors.ErrInvalidInput,
			"%d params, at most %d allowed", len(a.Params), c.MaxParams))
	}
	if uint32(len(a.Payload)) > c.MaxPayloadSize {
		errs = errors.Append(errs, errors.Field("Payload", errors.ErrInvalidInput,
			"%d bytes, at most %d allowed", len(a.Payload), c.MaxPayloadSize))
	}
	return errs
}
