package app

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"gopkg.in/yaml.v3"
)

// Genesis is the initial state of an application.
type Genesis struct {
	ChainID  string         `json:"chain_id"`
	AppState quorum.Options `json:"app_state"`
}

// Validate returns an error if the genesis cannot be used to initialize
// an application.
func (g *Genesis) Validate() error {
	if !quorum.IsValidChainID(g.ChainID) {
		return errors.Field("ChainID", errors.ErrInvalidInput, "invalid chain id %q", g.ChainID)
	}
	return nil
}

// LoadGenesis reads a genesis file. Files with a .yaml or .yml extension are
// read as YAML, everything else as JSON.
func LoadGenesis(path string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "read genesis: %s", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAMLGenesis(raw)
	default:
		return ParseGenesis(raw)
	}
}

// ParseGenesis decodes a JSON serialized genesis.
func ParseGenesis(raw []byte) (*Genesis, error) {
	var g Genesis
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "genesis: %s", err)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// ParseYAMLGenesis decodes a YAML serialized genesis. The application state
// is converted to JSON, so extensions read it the same way as from a JSON
// file.
func ParseYAMLGenesis(raw []byte) (*Genesis, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "genesis: %s", err)
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "genesis: %s", err)
	}
	return ParseGenesis(asJSON)
}
