package message

import (
	"fmt"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/bigint"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/crypto"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/util"
)

// UnsignedMessageAPI is the JSON form used by wallets and the service layer.
// Amounts are decimal strings and params are base64.
type UnsignedMessageAPI struct {
	To         string `json:"to"`
	From       string `json:"from"`
	Nonce      uint64 `json:"nonce"`
	Value      string `json:"value"`
	GasLimit   int64  `json:"gaslimit"`
	GasFeeCap  string `json:"gasfeecap"`
	GasPremium string `json:"gaspremium"`
	Method     uint64 `json:"method"`
	Params     string `json:"params"`
}

// SignatureAPI is a signature with base64 data
type SignatureAPI struct {
	Type crypto.SigType `json:"type"`
	Data string         `json:"data"`
}

// SignedMessageAPI is the JSON form of a signed message
type SignedMessageAPI struct {
	Message   UnsignedMessageAPI `json:"message"`
	Signature SignatureAPI       `json:"signature"`
}

// ToAPI renders a message with addresses for the given network
func ToAPI(m *UnsignedMessage, network address.Network) UnsignedMessageAPI {
	return UnsignedMessageAPI{
		To:         m.To.Encode(network),
		From:       m.From.Encode(network),
		Nonce:      m.Nonce,
		Value:      m.Value.String(),
		GasLimit:   m.GasLimit,
		GasFeeCap:  m.GasFeeCap.String(),
		GasPremium: m.GasPremium.String(),
		Method:     m.Method,
		Params:     util.EncodeBase64(m.Params),
	}
}

// FromAPI validates the JSON form. Addresses of either network are accepted.
func FromAPI(api UnsignedMessageAPI) (*UnsignedMessage, error) {
	to, _, err := address.DecodeAny(api.To)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	from, _, err := address.DecodeAny(api.From)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	value, err := bigint.FromString(api.Value)
	if err != nil {
		return nil, fmt.Errorf("value: %w", err)
	}
	feeCap, err := bigint.FromString(api.GasFeeCap)
	if err != nil {
		return nil, fmt.Errorf("gasfeecap: %w", err)
	}
	premium, err := bigint.FromString(api.GasPremium)
	if err != nil {
		return nil, fmt.Errorf("gaspremium: %w", err)
	}
	params, err := util.DecodeBase64(api.Params)
	if err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}

	return &UnsignedMessage{
		Version:    MessageVersion,
		To:         to,
		From:       from,
		Nonce:      api.Nonce,
		Value:      value,
		GasLimit:   api.GasLimit,
		GasFeeCap:  feeCap,
		GasPremium: premium,
		Method:     api.Method,
		Params:     params,
	}, nil
}

// SignedToAPI renders a signed message
func SignedToAPI(m *SignedMessage, network address.Network) SignedMessageAPI {
	return SignedMessageAPI{
		Message: ToAPI(&m.Message, network),
		Signature: SignatureAPI{
			Type: m.Signature.Type,
			Data: util.EncodeBase64(m.Signature.Data),
		},
	}
}

// SignedFromAPI validates the JSON form of a signed message
func SignedFromAPI(api SignedMessageAPI) (*SignedMessage, error) {
	msg, err := FromAPI(api.Message)
	if err != nil {
		return nil, err
	}
	data, err := util.DecodeBase64(api.Signature.Data)
	if err != nil {
		return nil, types.WrapError(types.KindInvalidSignature, err, "signature data")
	}
	sig := crypto.Signature{Type: api.Signature.Type, Data: data}
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	return &SignedMessage{Message: *msg, Signature: sig}, nil
}

// MessageToAPI renders whatever Parse returned
func MessageToAPI(m Message, network address.Network) interface{} {
	switch msg := m.(type) {
	case *SignedMessage:
		return SignedToAPI(msg, network)
	case *UnsignedMessage:
		return ToAPI(msg, network)
	default:
		return nil
	}
}
