package actors

import (
	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/bigint"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/message"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
)

// Envelope carries the caller supplied fields every builder copies into the outer message
type Envelope struct {
	From       address.Address
	Nonce      uint64
	GasLimit   int64
	GasFeeCap  bigint.BigInt
	GasPremium bigint.BigInt
}

// Validate rejects envelopes that cannot produce an encodable message
func (e Envelope) Validate() error {
	if e.From.Empty() {
		return types.NewError(types.KindMalformedMessage, "missing sender")
	}
	if err := e.GasFeeCap.Validate(); err != nil {
		return err
	}
	return e.GasPremium.Validate()
}

// Message assembles the outer message around encoded params
func (e Envelope) Message(to address.Address, value bigint.BigInt, method uint64, params []byte) (*message.UnsignedMessage, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := value.Validate(); err != nil {
		return nil, err
	}
	if value.Int == nil {
		value = bigint.Zero()
	}
	return &message.UnsignedMessage{
		Version:    message.MessageVersion,
		To:         to,
		From:       e.From,
		Nonce:      e.Nonce,
		Value:      value,
		GasLimit:   e.GasLimit,
		GasFeeCap:  e.GasFeeCap,
		GasPremium: e.GasPremium,
		Method:     method,
		Params:     params,
	}, nil
}

// Call encodes params and assembles the message that invokes method on to
func (e Envelope) Call(to address.Address, value bigint.BigInt, method uint64, params MessageParams) (*message.UnsignedMessage, error) {
	encoded, err := SerializeParams(params)
	if err != nil {
		return nil, err
	}
	return e.Message(to, value, method, encoded)
}

// Exec builds a message asking the init actor to construct an actor of codeID
func (e Envelope) Exec(codeID string, value bigint.BigInt, constructor MessageParams) (*message.UnsignedMessage, error) {
	exec, err := NewExecParams(codeID, constructor)
	if err != nil {
		return nil, err
	}
	return e.Call(InitActorAddr, value, MethodInitExec, exec)
}
