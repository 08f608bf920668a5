package app

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonGenesis = `{
  "chain_id": "test-chain",
  "app_state": {
    "conf": {"multisig": {"max_participants": 5, "max_params": 2, "max_payload_size": 128}},
    "multisig": {
      "groups": [
        {"participants": ["A1B2C3D4E5F60718293A4B5C6D7E8F9012345678", "B1B2C3D4E5F60718293A4B5C6D7E8F9012345678"], "threshold": 1}
      ]
    }
  }
}`

const yamlGenesis = `
chain_id: test-chain
app_state:
  conf:
    multisig:
      max_participants: 5
      max_params: 2
      max_payload_size: 128
  multisig:
    groups:
      - participants:
          - "A1B2C3D4E5F60718293A4B5C6D7E8F9012345678"
          - "B1B2C3D4E5F60718293A4B5C6D7E8F9012345678"
        threshold: 1
`

func TestLoadGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
		return path
	}

	fromJSON, err := LoadGenesis(write("genesis.json", jsonGenesis))
	require.NoError(t, err)
	fromYAML, err := LoadGenesis(write("genesis.yaml", yamlGenesis))
	require.NoError(t, err)

	assert.Equal(t, "test-chain", fromJSON.ChainID)
	assert.Equal(t, fromJSON.ChainID, fromYAML.ChainID)

	// both formats carry the same application state
	for _, g := range []*Genesis{fromJSON, fromYAML} {
		var conf struct {
			Multisig struct {
				MaxParticipants int `json:"max_participants"`
			} `json:"multisig"`
		}
		require.NoError(t, g.AppState.ReadOptions("conf", &conf))
		assert.Equal(t, 5, conf.Multisig.MaxParticipants)

		var ms struct {
			Groups []struct {
				Participants []string `json:"participants"`
				Threshold    int      `json:"threshold"`
			} `json:"groups"`
		}
		require.NoError(t, g.AppState.ReadOptions("multisig", &ms))
		require.Len(t, ms.Groups, 1)
		assert.Len(t, ms.Groups[0].Participants, 2)
		assert.Equal(t, 1, ms.Groups[0].Threshold)
	}

	_, err = LoadGenesis(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestParseGenesisErrors(t *testing.T) {
	cases := map[string]struct {
		raw  string
		yaml bool
	}{
		"malformed json":    {raw: `{"chain_id": `},
		"malformed yaml":    {raw: "chain_id: [unclosed", yaml: true},
		"missing chain id":  {raw: `{"app_state": {}}`},
		"invalid chain id":  {raw: `{"chain_id": "x", "app_state": {}}`},
		"yaml bad chain id": {raw: "chain_id: a b c", yaml: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var err error
			if tc.yaml {
				_, err = ParseYAMLGenesis([]byte(tc.raw))
			} else {
				_, err = ParseGenesis([]byte(tc.raw))
			}
			assert.True(t, errors.ErrInvalidInput.Is(err), "%+v", err)
		})
	}
}
