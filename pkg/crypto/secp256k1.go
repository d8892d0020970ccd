package crypto

import (
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
)

const (
	// Secp256k1PrivateKeyLength is the size of a raw secp256k1 scalar
	Secp256k1PrivateKeyLength = 32
	// Secp256k1PublicKeyLength is the size of an uncompressed public key
	Secp256k1PublicKeyLength = 65
	// Secp256k1CompressedPublicKeyLength is the size of a compressed public key
	Secp256k1CompressedPublicKeyLength = 33
	// Secp256k1SignatureLength is r || s || v
	Secp256k1SignatureLength = 65
	// DigestLength is the size of the hash signed by secp256k1 keys
	DigestLength = 32
)

// Secp256k1PublicKey derives the uncompressed public key for a raw private key
func Secp256k1PublicKey(privateKey []byte) ([]byte, error) {
	if len(privateKey) != Secp256k1PrivateKeyLength {
		return nil, types.NewError(types.KindInvalidKeyLength, "secp256k1 private key must be %d bytes, got %d", Secp256k1PrivateKeyLength, len(privateKey))
	}
	key, err := ethcrypto.ToECDSA(privateKey)
	if err != nil {
		return nil, types.WrapError(types.KindCryptoFailure, err, "invalid secp256k1 private key")
	}
	return ethcrypto.FromECDSAPub(&key.PublicKey), nil
}

// UncompressSecp256k1PublicKey normalizes a compressed or uncompressed public key to 65 bytes
func UncompressSecp256k1PublicKey(publicKey []byte) ([]byte, error) {
	switch len(publicKey) {
	case Secp256k1PublicKeyLength:
		pk, err := ethcrypto.UnmarshalPubkey(publicKey)
		if err != nil {
			return nil, types.WrapError(types.KindCryptoFailure, err, "invalid secp256k1 public key")
		}
		return ethcrypto.FromECDSAPub(pk), nil
	case Secp256k1CompressedPublicKeyLength:
		pk, err := ethcrypto.DecompressPubkey(publicKey)
		if err != nil {
			return nil, types.WrapError(types.KindCryptoFailure, err, "invalid compressed secp256k1 public key")
		}
		return ethcrypto.FromECDSAPub(pk), nil
	default:
		return nil, types.NewError(types.KindInvalidKeyLength, "secp256k1 public key must be %d or %d bytes, got %d",
			Secp256k1PublicKeyLength, Secp256k1CompressedPublicKeyLength, len(publicKey))
	}
}

// CompressSecp256k1PublicKey returns the 33 byte form of an uncompressed key
func CompressSecp256k1PublicKey(publicKey []byte) ([]byte, error) {
	pk, err := ethcrypto.UnmarshalPubkey(publicKey)
	if err != nil {
		return nil, types.WrapError(types.KindCryptoFailure, err, "invalid secp256k1 public key")
	}
	return ethcrypto.CompressPubkey(pk), nil
}

// SignSecp256k1 produces a deterministic (RFC6979) r || s || v signature over a 32 byte digest.
// v is the recovery id in {0, 1}.
func SignSecp256k1(privateKey, digest []byte) ([]byte, error) {
	if len(privateKey) != Secp256k1PrivateKeyLength {
		return nil, types.NewError(types.KindInvalidKeyLength, "secp256k1 private key must be %d bytes, got %d", Secp256k1PrivateKeyLength, len(privateKey))
	}
	if len(digest) != DigestLength {
		return nil, types.NewError(types.KindMalformedInput, "digest must be %d bytes, got %d", DigestLength, len(digest))
	}
	key, err := ethcrypto.ToECDSA(privateKey)
	if err != nil {
		return nil, types.WrapError(types.KindCryptoFailure, err, "invalid secp256k1 private key")
	}
	sig, err := ethcrypto.Sign(digest, key)
	if err != nil {
		return nil, types.WrapError(types.KindCryptoFailure, err, "secp256k1 signing failed")
	}
	return sig, nil
}

// RecoverSecp256k1 returns the uncompressed public key that produced sig over digest
func RecoverSecp256k1(digest, sig []byte) ([]byte, error) {
	if len(sig) != Secp256k1SignatureLength {
		return nil, types.NewError(types.KindInvalidSignature, "secp256k1 signature must be %d bytes, got %d", Secp256k1SignatureLength, len(sig))
	}
	if len(digest) != DigestLength {
		return nil, types.NewError(types.KindMalformedInput, "digest must be %d bytes, got %d", DigestLength, len(digest))
	}
	if sig[64] > 1 {
		return nil, types.NewError(types.KindInvalidSignature, "invalid recovery id %d", sig[64])
	}
	pub, err := ethcrypto.Ecrecover(digest, sig)
	if err != nil {
		return nil, types.WrapError(types.KindInvalidSignature, err, "public key recovery failed")
	}
	return pub, nil
}
