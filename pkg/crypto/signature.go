package crypto

import (
	"fmt"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/util"
)

// SigType is the one byte scheme discriminator that prefixes serialized signatures
type SigType byte

const (
	SigTypeUnknown   SigType = 0
	SigTypeSecp256k1 SigType = 1
	SigTypeBLS       SigType = 2
)

// BLSSignatureLength is the size of a compressed G2 signature
const BLSSignatureLength = 96

func (t SigType) String() string {
	switch t {
	case SigTypeSecp256k1:
		return "secp256k1"
	case SigTypeBLS:
		return "bls"
	default:
		return fmt.Sprintf("unknown(%d)", byte(t))
	}
}

// Signature is a scheme tagged signature as it appears on chain
type Signature struct {
	Type SigType
	Data []byte
}

// Bytes returns the type byte followed by the signature data
func (s *Signature) Bytes() []byte {
	out := make([]byte, 0, len(s.Data)+1)
	out = append(out, byte(s.Type))
	return append(out, s.Data...)
}

// Validate checks the data length against the scheme
func (s *Signature) Validate() error {
	switch s.Type {
	case SigTypeSecp256k1:
		if len(s.Data) != Secp256k1SignatureLength {
			return types.NewError(types.KindInvalidSignature, "secp256k1 signature must be %d bytes, got %d", Secp256k1SignatureLength, len(s.Data))
		}
	case SigTypeBLS:
		if len(s.Data) != BLSSignatureLength {
			return types.NewError(types.KindInvalidSignature, "bls signature must be %d bytes, got %d", BLSSignatureLength, len(s.Data))
		}
	default:
		return types.NewError(types.KindInvalidSignature, "unknown signature type %d", byte(s.Type))
	}
	return nil
}

// SignatureFromBytes parses type||data and validates the length for the scheme
func SignatureFromBytes(b []byte) (*Signature, error) {
	sig, err := signatureFromBytesLenient(b)
	if err != nil {
		return nil, err
	}
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	return sig, nil
}

// signatureFromBytesLenient only requires a known type byte; vouchers carry
// signatures whose length is checked at verification time.
func signatureFromBytesLenient(b []byte) (*Signature, error) {
	if len(b) == 0 {
		return nil, types.NewError(types.KindInvalidSignature, "empty signature")
	}
	t := SigType(b[0])
	if t != SigTypeSecp256k1 && t != SigTypeBLS {
		return nil, types.NewError(types.KindInvalidSignature, "unknown signature type %d", b[0])
	}
	data := make([]byte, len(b)-1)
	copy(data, b[1:])
	return &Signature{Type: t, Data: data}, nil
}

func (s Signature) MarshalCBOR() ([]byte, error) {
	if s.Type != SigTypeSecp256k1 && s.Type != SigTypeBLS {
		return nil, types.NewError(types.KindInvalidSignature, "unknown signature type %d", byte(s.Type))
	}
	return util.EncodeCBOR(s.Bytes())
}

func (s *Signature) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := util.DecodeCBOR(data, &raw); err != nil {
		return types.WrapError(types.KindMalformedInput, err, "signature is not a byte string")
	}
	sig, err := signatureFromBytesLenient(raw)
	if err != nil {
		return err
	}
	*s = *sig
	return nil
}
