package config

import (
	"fmt"
	"net"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/keys"
)

// Environment variable names for signer configuration
const (
	EnvSignerNetwork        = "FC_SIGNER_NETWORK"
	EnvSignerDebug          = "FC_SIGNER_DEBUG"
	EnvSignerLedgerAddr     = "FC_SIGNER_LEDGER_ADDR"
	EnvSignerDerivationPath = "FC_SIGNER_DERIVATION_PATH"
)

type NetworkName string

func (n NetworkName) String() string {
	return string(n)
}

func (n NetworkName) Network() (address.Network, error) {
	return ConvertNetworkNameToNetwork(n)
}

const (
	NetworkName_Mainnet NetworkName = "mainnet"
	NetworkName_Testnet NetworkName = "testnet"
)

func ConvertNetworkNameToNetwork(name NetworkName) (address.Network, error) {
	switch name {
	case NetworkName_Mainnet:
		return address.Mainnet, nil
	case NetworkName_Testnet:
		return address.Testnet, nil
	default:
		return 0, fmt.Errorf("unsupported network: %s", name)
	}
}

func ConvertNetworkToNetworkName(network address.Network) (NetworkName, error) {
	switch network {
	case address.Mainnet:
		return NetworkName_Mainnet, nil
	case address.Testnet:
		return NetworkName_Testnet, nil
	default:
		return "", fmt.Errorf("unsupported network prefix: %q", byte(network))
	}
}

var NetworkNameToCoinType = map[NetworkName]uint32{
	NetworkName_Mainnet: keys.CoinTypeMainnet,
	NetworkName_Testnet: keys.CoinTypeTestnet,
}

// GetDerivationPathForNetwork returns the default derivation path for a network
func GetDerivationPathForNetwork(name NetworkName) string {
	switch name {
	case NetworkName_Testnet:
		return keys.DefaultTestnetPath
	default:
		return keys.DefaultPath
	}
}

// GetSupportedNetworksString returns supported networks for CLI help
func GetSupportedNetworksString() string {
	return fmt.Sprintf("%s (f addresses), %s (t addresses)", NetworkName_Mainnet, NetworkName_Testnet)
}

// SignerConfig is the shared configuration of the signer CLI
type SignerConfig struct {
	Network        NetworkName `json:"network"`
	DerivationPath string      `json:"derivation_path"`
	LedgerAddress  string      `json:"ledger_address"` // host:port of a device emulator
	Debug          bool        `json:"debug"`
}

// Validate validates the signer configuration. An empty derivation path is
// filled with the default for the network.
func (c *SignerConfig) Validate() error {
	var allErrors field.ErrorList

	coinType, knownNetwork := NetworkNameToCoinType[c.Network]
	if c.Network == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("network"), "network is required"))
	} else if !knownNetwork {
		allErrors = append(allErrors, field.NotSupported(field.NewPath("network"), c.Network,
			[]string{NetworkName_Mainnet.String(), NetworkName_Testnet.String()}))
	}

	if c.DerivationPath == "" && knownNetwork {
		c.DerivationPath = GetDerivationPathForNetwork(c.Network)
	}
	if c.DerivationPath != "" {
		path, err := keys.ParsePath(c.DerivationPath)
		if err != nil {
			allErrors = append(allErrors, field.Invalid(field.NewPath("derivationPath"), c.DerivationPath, err.Error()))
		} else if ct, ok := path.CoinType(); ok && knownNetwork && ct != coinType {
			allErrors = append(allErrors, field.Invalid(field.NewPath("derivationPath"), c.DerivationPath,
				fmt.Sprintf("coin type %d does not match network %s", ct, c.Network)))
		}
	}

	if c.LedgerAddress != "" {
		if _, _, err := net.SplitHostPort(c.LedgerAddress); err != nil {
			allErrors = append(allErrors, field.Invalid(field.NewPath("ledgerAddress"), c.LedgerAddress, err.Error()))
		}
	}

	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// AddressNetwork returns the address network for the configured network name
func (c *SignerConfig) AddressNetwork() (address.Network, error) {
	return c.Network.Network()
}
