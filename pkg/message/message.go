package message

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/ipfs/go-cid"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/bigint"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/cidutil"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/crypto"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/util"
)

// MessageVersion is the only message version accepted on chain
const MessageVersion = 0

const (
	unsignedArity = 10
	signedArity   = 2
)

// Message is either an *UnsignedMessage or a *SignedMessage
type Message interface {
	// Unsigned returns the message that was or will be signed
	Unsigned() *UnsignedMessage
	Serialize() ([]byte, error)
	isMessage()
}

// UnsignedMessage is the canonical 10 element transaction. Field order is part of the wire format.
type UnsignedMessage struct {
	_          struct{} `cbor:",toarray"`
	Version    uint64
	To         address.Address
	From       address.Address
	Nonce      uint64
	Value      bigint.BigInt
	GasLimit   int64
	GasFeeCap  bigint.BigInt
	GasPremium bigint.BigInt
	Method     uint64
	Params     []byte
}

// SignedMessage pairs a message with the signature over it
type SignedMessage struct {
	_         struct{} `cbor:",toarray"`
	Message   UnsignedMessage
	Signature crypto.Signature
}

func (m *UnsignedMessage) Unsigned() *UnsignedMessage { return m }
func (m *UnsignedMessage) isMessage()                 {}

func (m *SignedMessage) Unsigned() *UnsignedMessage { return &m.Message }
func (m *SignedMessage) isMessage()                 {}

// Validate checks the fields that the encoder cannot represent
func (m *UnsignedMessage) Validate() error {
	if m.Version != MessageVersion {
		return types.NewError(types.KindMalformedMessage, "unsupported message version %d", m.Version)
	}
	if m.To.Empty() {
		return types.NewError(types.KindMalformedMessage, "missing to address")
	}
	if m.From.Empty() {
		return types.NewError(types.KindMalformedMessage, "missing from address")
	}
	if err := m.Value.Validate(); err != nil {
		return fmt.Errorf("value: %w", err)
	}
	if err := m.GasFeeCap.Validate(); err != nil {
		return fmt.Errorf("gas fee cap: %w", err)
	}
	if err := m.GasPremium.Validate(); err != nil {
		return fmt.Errorf("gas premium: %w", err)
	}
	return nil
}

// Serialize returns the canonical CBOR encoding of the message
func (m *UnsignedMessage) Serialize() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	data, err := util.EncodeCBOR(m)
	if err != nil {
		return nil, types.WrapError(types.KindMalformedMessage, err, "failed to encode message")
	}
	return data, nil
}

// Cid returns the identifier of the unsigned message. Secp256k1 keys sign its bytes.
func (m *UnsignedMessage) Cid() (cid.Cid, error) {
	data, err := m.Serialize()
	if err != nil {
		return cid.Undef, err
	}
	return cidutil.Sum(data)
}

// Serialize returns the canonical CBOR encoding of [message, signature]
func (m *SignedMessage) Serialize() ([]byte, error) {
	if err := m.Message.Validate(); err != nil {
		return nil, err
	}
	if err := m.Signature.Validate(); err != nil {
		return nil, err
	}
	data, err := util.EncodeCBOR(m)
	if err != nil {
		return nil, types.WrapError(types.KindMalformedMessage, err, "failed to encode signed message")
	}
	return data, nil
}

// Cid returns the content identifier of the signed message bytes
func (m *SignedMessage) Cid() (cid.Cid, error) {
	data, err := m.Serialize()
	if err != nil {
		return cid.Undef, err
	}
	return cidutil.Sum(data)
}

// Parse decodes canonical CBOR into an unsigned or signed message, telling
// them apart by the length of the outer array.
func Parse(data []byte) (Message, error) {
	var items []cbor.RawMessage
	if err := util.DecodeCBOR(data, &items); err != nil {
		return nil, types.WrapError(types.KindMalformedMessage, err, "message is not a cbor array")
	}

	switch len(items) {
	case unsignedArity:
		msg, err := ParseUnsigned(data)
		if err != nil {
			return nil, err
		}
		return msg, nil
	case signedArity:
		msg, err := ParseSigned(data)
		if err != nil {
			return nil, err
		}
		return msg, nil
	default:
		return nil, types.NewError(types.KindUnrecognizedMessageShape, "array of %d items is neither an unsigned (%d) nor a signed (%d) message",
			len(items), unsignedArity, signedArity)
	}
}

// ParseUnsigned decodes a 10 element message array
func ParseUnsigned(data []byte) (*UnsignedMessage, error) {
	msg := &UnsignedMessage{}
	if err := util.DecodeCBOR(data, msg); err != nil {
		return nil, types.WrapError(types.KindMalformedMessage, err, "invalid unsigned message")
	}
	if msg.Version != MessageVersion {
		return nil, types.NewError(types.KindMalformedMessage, "unsupported message version %d", msg.Version)
	}
	if err := requireCanonical(data, msg); err != nil {
		return nil, err
	}
	if len(msg.Params) == 0 {
		msg.Params = nil
	}
	return msg, nil
}

// ParseSigned decodes a [message, signature] array and checks the signature length
func ParseSigned(data []byte) (*SignedMessage, error) {
	msg := &SignedMessage{}
	if err := util.DecodeCBOR(data, msg); err != nil {
		return nil, types.WrapError(types.KindMalformedMessage, err, "invalid signed message")
	}
	if msg.Message.Version != MessageVersion {
		return nil, types.NewError(types.KindMalformedMessage, "unsupported message version %d", msg.Message.Version)
	}
	if err := msg.Signature.Validate(); err != nil {
		return nil, err
	}
	if err := requireCanonical(data, msg); err != nil {
		return nil, err
	}
	if len(msg.Message.Params) == 0 {
		msg.Message.Params = nil
	}
	return msg, nil
}

// requireCanonical rejects input that decodes but does not re-encode to the
// same bytes, such as a null params field or a non-minimal integer head.
func requireCanonical(data []byte, v any) error {
	encoded, err := util.EncodeCBOR(v)
	if err != nil {
		return types.WrapError(types.KindMalformedMessage, err, "failed to re-encode message")
	}
	if !bytes.Equal(encoded, data) {
		return types.NewError(types.KindMalformedMessage, "message is not canonically encoded")
	}
	return nil
}
