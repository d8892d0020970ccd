package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/keys"
)

func TestNetworkNameConversion(t *testing.T) {
	n, err := ConvertNetworkNameToNetwork(NetworkName_Mainnet)
	require.NoError(t, err)
	assert.Equal(t, address.Mainnet, n)

	n, err = NetworkName_Testnet.Network()
	require.NoError(t, err)
	assert.Equal(t, address.Testnet, n)

	_, err = ConvertNetworkNameToNetwork("devnet")
	assert.Error(t, err)

	name, err := ConvertNetworkToNetworkName(address.Testnet)
	require.NoError(t, err)
	assert.Equal(t, NetworkName_Testnet, name)

	_, err = ConvertNetworkToNetworkName(address.Network('x'))
	assert.Error(t, err)
}

func TestSignerConfig_Validate(t *testing.T) {
	t.Run("fills the default path", func(t *testing.T) {
		cfg := &SignerConfig{Network: NetworkName_Testnet}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, keys.DefaultTestnetPath, cfg.DerivationPath)

		cfg = &SignerConfig{Network: NetworkName_Mainnet, LedgerAddress: "127.0.0.1:9999"}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, keys.DefaultPath, cfg.DerivationPath)
	})

	t.Run("missing network", func(t *testing.T) {
		err := (&SignerConfig{}).Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "network")
	})

	t.Run("unknown network", func(t *testing.T) {
		err := (&SignerConfig{Network: "devnet"}).Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "devnet")
	})

	t.Run("aggregates every problem", func(t *testing.T) {
		err := (&SignerConfig{
			Network:        NetworkName_Mainnet,
			DerivationPath: "m/44'/1'/0/0/0",
			LedgerAddress:  "no-port",
		}).Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "derivationPath")
		assert.Contains(t, err.Error(), "ledgerAddress")
	})

	t.Run("bad path", func(t *testing.T) {
		err := (&SignerConfig{Network: NetworkName_Testnet, DerivationPath: "x/1"}).Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "derivationPath")
	})
}

func TestSignerConfig_AddressNetwork(t *testing.T) {
	cfg := &SignerConfig{Network: NetworkName_Mainnet}
	n, err := cfg.AddressNetwork()
	require.NoError(t, err)
	assert.Equal(t, address.Mainnet, n)
}
