package bls

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/util"
)

const (
	// PrivateKeyLength is the size of a serialized scalar
	PrivateKeyLength = 32
	// PublicKeyLength is the size of a compressed G1 point
	PublicKeyLength = 48
	// SignatureLength is the size of a compressed G2 point
	SignatureLength = 96
)

// PrivateKey represents a BLS private key.
// Serialized keys are 32 byte little-endian scalars.
type PrivateKey struct {
	scalar *fr.Element
}

// PublicKey represents a BLS public key in G1
type PublicKey struct {
	point *bls12381.G1Affine
}

// Signature represents a BLS signature in G2
type Signature struct {
	point *bls12381.G2Affine
}

// NewPrivateKeyFromBytes parses a little-endian scalar. Non-canonical and zero scalars are rejected.
func NewPrivateKeyFromBytes(data []byte) (*PrivateKey, error) {
	if len(data) != PrivateKeyLength {
		return nil, types.NewError(types.KindInvalidKeyLength, "bls private key must be %d bytes, got %d", PrivateKeyLength, len(data))
	}
	scalar := new(fr.Element)
	if err := scalar.SetBytesCanonical(util.ReverseBytes(data)); err != nil {
		return nil, types.WrapError(types.KindCryptoFailure, err, "bls private key is not a canonical scalar")
	}
	if scalar.IsZero() {
		return nil, types.NewError(types.KindCryptoFailure, "bls private key is zero")
	}
	return &PrivateKey{scalar: scalar}, nil
}

// Bytes serializes the scalar as 32 little-endian bytes
func (sk *PrivateKey) Bytes() []byte {
	be := sk.scalar.Bytes() // big-endian [32]byte
	return util.ReverseBytes(be[:])
}

// NewPublicKeyFromBytes parses a compressed G1 point. SetBytes performs the subgroup check.
func NewPublicKeyFromBytes(data []byte) (*PublicKey, error) {
	if len(data) != PublicKeyLength {
		return nil, types.NewError(types.KindInvalidKeyLength, "bls public key must be %d bytes, got %d", PublicKeyLength, len(data))
	}
	point := new(bls12381.G1Affine)
	if _, err := point.SetBytes(data); err != nil {
		return nil, types.WrapError(types.KindCryptoFailure, err, "invalid bls public key")
	}
	if point.IsInfinity() {
		return nil, types.NewError(types.KindCryptoFailure, "bls public key is the identity")
	}
	return &PublicKey{point: point}, nil
}

// Bytes serializes the public key (compressed format)
func (pk *PublicKey) Bytes() []byte {
	bytes := pk.point.Bytes() // Returns [48]byte
	return bytes[:]
}

// Equal checks if two public keys are equal
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if pk == nil || other == nil || pk.point == nil || other.point == nil {
		return false
	}
	return pk.point.Equal(other.point)
}

// NewSignatureFromBytes parses a compressed G2 point. SetBytes performs the subgroup check.
func NewSignatureFromBytes(data []byte) (*Signature, error) {
	if len(data) != SignatureLength {
		return nil, types.NewError(types.KindInvalidSignature, "bls signature must be %d bytes, got %d", SignatureLength, len(data))
	}
	point := new(bls12381.G2Affine)
	if _, err := point.SetBytes(data); err != nil {
		return nil, types.WrapError(types.KindInvalidSignature, err, "bls signature is not a valid G2 point")
	}
	return &Signature{point: point}, nil
}

// Bytes serializes the signature (compressed format)
func (s *Signature) Bytes() []byte {
	bytes := s.point.Bytes() // Returns [96]byte
	return bytes[:]
}

// IsZero checks if the signature is the identity point
func (s *Signature) IsZero() bool {
	if s.point == nil {
		return true
	}
	return s.point.IsInfinity()
}

// Equal checks if two signatures are equal
func (s *Signature) Equal(other *Signature) bool {
	if s == nil || other == nil || s.point == nil || other.point == nil {
		return false
	}
	return s.point.Equal(other.point)
}
