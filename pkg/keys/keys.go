package keys

import (
	"errors"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/bls"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/crypto"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
)

// MnemonicEntropyBits yields a 24 word mnemonic
const MnemonicEntropyBits = 256

// ExtendedKey is a derived or recovered key pair together with its address.
// ChainCode is only set for keys produced by hierarchical derivation.
type ExtendedKey struct {
	PrivateKey []byte
	// PublicKey is the uncompressed secp256k1 key or the 48 byte BLS key
	PublicKey []byte
	ChainCode []byte
	Address   address.Address
	Network   address.Network
}

// Protocol reports which signature scheme the key belongs to
func (k *ExtendedKey) Protocol() address.Protocol {
	return k.Address.Protocol()
}

// AddressString renders the address for the key's network
func (k *ExtendedKey) AddressString() string {
	return k.Address.Encode(k.Network)
}

// PublicKeyCompressed returns the 33 byte secp256k1 public key. BLS keys are returned as is.
func (k *ExtendedKey) PublicKeyCompressed() ([]byte, error) {
	if k.Protocol() != address.SECP256K1 {
		return k.PublicKey, nil
	}
	return crypto.CompressSecp256k1PublicKey(k.PublicKey)
}

// GenerateMnemonic draws fresh entropy and renders it as a 24 word English mnemonic
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(MnemonicEntropyBits)
	if err != nil {
		return "", types.WrapError(types.KindCryptoFailure, err, "failed to read entropy")
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", types.WrapError(types.KindCryptoFailure, err, "failed to encode mnemonic")
	}
	return mnemonic, nil
}

// DeriveSeed stretches a mnemonic and optional passphrase into a 64 byte seed
func DeriveSeed(mnemonic, passphrase string) ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, types.WrapError(types.KindMalformedInput, err, "invalid mnemonic")
	}
	return seed, nil
}

// Derive walks path from the root key of a mnemonic
func Derive(mnemonic, path, passphrase string) (*ExtendedKey, error) {
	seed, err := DeriveSeed(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	return DeriveFromSeed(seed, path)
}

// DeriveFromSeed walks path from the root key of seed. Keys under coin type 1
// get testnet addresses, every other path gets mainnet addresses.
func DeriveFromSeed(seed []byte, path string) (*ExtendedKey, error) {
	parsed, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	// The chain params only affect the xprv version bytes, which are never serialized here
	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		if errors.Is(err, hdkeychain.ErrInvalidSeedLen) {
			return nil, types.WrapError(types.KindMalformedInput, err, "seed")
		}
		return nil, types.WrapError(types.KindInvalidDerivation, err, "master key")
	}

	for _, index := range parsed {
		key, err = key.Derive(index)
		if err != nil {
			return nil, types.WrapError(types.KindInvalidDerivation, err, "child %d of %s", index, parsed)
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, types.WrapError(types.KindInvalidDerivation, err, "private key at %s", parsed)
	}

	network := address.Mainnet
	if coinType, ok := parsed.CoinType(); ok && coinType == CoinTypeTestnet {
		network = address.Testnet
	}

	extended, err := Recover(priv.Serialize(), network)
	if err != nil {
		return nil, err
	}
	extended.ChainCode = key.ChainCode()
	return extended, nil
}

// Recover rebuilds the public key and secp256k1 address of a raw private key
func Recover(privateKey []byte, network address.Network) (*ExtendedKey, error) {
	if len(privateKey) != crypto.Secp256k1PrivateKeyLength {
		return nil, types.NewError(types.KindInvalidKeyLength, "private key must be %d bytes, got %d", crypto.Secp256k1PrivateKeyLength, len(privateKey))
	}
	publicKey, err := crypto.Secp256k1PublicKey(privateKey)
	if err != nil {
		return nil, err
	}
	addr, err := address.NewSecp256k1Address(publicKey)
	if err != nil {
		return nil, err
	}
	return &ExtendedKey{
		PrivateKey: append([]byte(nil), privateKey...),
		PublicKey:  publicKey,
		Address:    addr,
		Network:    network,
	}, nil
}

// GenerateBLS creates a random BLS key pair
func GenerateBLS(network address.Network) (*ExtendedKey, error) {
	sk, err := bls.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return blsExtendedKey(sk, network)
}

// RecoverBLS rebuilds a BLS key pair from its 32 byte little-endian scalar
func RecoverBLS(privateKey []byte, network address.Network) (*ExtendedKey, error) {
	if len(privateKey) != bls.PrivateKeyLength {
		return nil, types.NewError(types.KindInvalidKeyLength, "bls private key must be %d bytes, got %d", bls.PrivateKeyLength, len(privateKey))
	}
	sk, err := bls.NewPrivateKeyFromBytes(privateKey)
	if err != nil {
		return nil, err
	}
	return blsExtendedKey(sk, network)
}

func blsExtendedKey(sk *bls.PrivateKey, network address.Network) (*ExtendedKey, error) {
	publicKey := sk.PublicKey().Bytes()
	addr, err := address.NewBLSAddress(publicKey)
	if err != nil {
		return nil, err
	}
	return &ExtendedKey{
		PrivateKey: sk.Bytes(),
		PublicKey:  publicKey,
		Address:    addr,
		Network:    network,
	}, nil
}
