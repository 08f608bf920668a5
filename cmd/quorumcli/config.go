package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/iov-one/quorum/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// config is read from the environment. Flags take precedence.
type config struct {
	Home     string `env:"QUORUM_HOME"`
	ChainID  string `env:"QUORUM_CHAIN_ID" envDefault:"quorum-local"`
	LogLevel string `env:"QUORUM_LOG_LEVEL" envDefault:"info"`
	Debug    bool   `env:"QUORUM_DEBUG"`
}

func loadConfig() (*config, error) {
	var c config
	if err := env.Parse(&c); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "parse env: %s", err)
	}
	if c.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "home directory: %s", err)
		}
		c.Home = filepath.Join(home, ".quorum")
	}
	return &c, nil
}

// newLogger returns a logger writing to w, filtered by the configured level.
func (c *config) newLogger(w io.Writer) (log.Logger, error) {
	allow, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(w))
	return log.NewFilter(logger, allow).With("module", "quorum"), nil
}
