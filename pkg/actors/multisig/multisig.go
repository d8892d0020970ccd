package multisig

import (
	"github.com/Layr-Labs/filecoin-signer-go/pkg/actors"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/bigint"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/crypto"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/message"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
)

// Proposal is a pending multisig transaction as its approvers see it
type Proposal struct {
	Requester address.Address
	To        address.Address
	Value     bigint.BigInt
	Method    uint64
	Params    []byte
}

// ProposalHash binds an approval or cancellation to the exact proposal
func ProposalHash(p Proposal) ([]byte, error) {
	data, err := actors.SerializeParams(actors.ProposalHashData{
		Requester: p.Requester,
		To:        p.To,
		Value:     p.Value,
		Method:    p.Method,
		Params:    p.Params,
	})
	if err != nil {
		return nil, err
	}
	return crypto.Blake2b256(data), nil
}

// Create builds the Exec message that deploys a multisig wallet funded with value
func Create(env actors.Envelope, signers []address.Address, value bigint.BigInt, threshold, unlockDuration int64) (*message.UnsignedMessage, error) {
	if len(signers) == 0 {
		return nil, types.NewError(types.KindMalformedInput, "multisig needs at least one signer")
	}
	if threshold <= 0 || threshold > int64(len(signers)) {
		return nil, types.NewError(types.KindMalformedInput, "threshold %d must be between 1 and %d", threshold, len(signers))
	}
	if unlockDuration < 0 {
		return nil, types.NewError(types.KindMalformedInput, "unlock duration %d is negative", unlockDuration)
	}
	return env.Exec(actors.MultisigActorCodeID, value, actors.MultisigConstructorParams{
		Signers:               signers,
		NumApprovalsThreshold: threshold,
		UnlockDuration:        unlockDuration,
	})
}

// Propose asks the wallet at multisigAddr to send value to to, calling method with params
func Propose(env actors.Envelope, multisigAddr, to address.Address, value bigint.BigInt, method uint64, params []byte) (*message.UnsignedMessage, error) {
	return env.Call(multisigAddr, bigint.Zero(), actors.MethodMultisigPropose, actors.ProposeParams{
		To:     to,
		Value:  value,
		Method: method,
		Params: params,
	})
}

// Approve signs off on pending transaction txnID, which must match proposal
func Approve(env actors.Envelope, multisigAddr address.Address, txnID int64, proposal Proposal) (*message.UnsignedMessage, error) {
	return txnMessage(env, multisigAddr, actors.MethodMultisigApprove, txnID, proposal)
}

// Cancel withdraws pending transaction txnID. Only the requester may cancel.
func Cancel(env actors.Envelope, multisigAddr address.Address, txnID int64, proposal Proposal) (*message.UnsignedMessage, error) {
	return txnMessage(env, multisigAddr, actors.MethodMultisigCancel, txnID, proposal)
}

func txnMessage(env actors.Envelope, multisigAddr address.Address, method uint64, txnID int64, proposal Proposal) (*message.UnsignedMessage, error) {
	if txnID < 0 {
		return nil, types.NewError(types.KindMalformedInput, "transaction id %d is negative", txnID)
	}
	hash, err := ProposalHash(proposal)
	if err != nil {
		return nil, err
	}
	return env.Call(multisigAddr, bigint.Zero(), method, actors.TxnIDParams{ID: txnID, ProposalHash: hash})
}
