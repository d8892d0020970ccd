package actors

import (
	"github.com/ipfs/go-cid"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/cidutil"
)

// Singleton actors
var (
	SystemActorAddr = mustIDAddress(0)
	InitActorAddr   = mustIDAddress(1)
)

func mustIDAddress(id uint64) address.Address {
	addr, err := address.NewIDAddress(id)
	if err != nil {
		panic(err)
	}
	return addr
}

// Code identifiers of the actors that Exec can construct
const (
	MultisigActorCodeID       = "fil/1/multisig"
	PaymentChannelActorCodeID = "fil/1/paymentchannel"
)

// MethodConstructor is shared by every actor
const MethodConstructor uint64 = 1

// Init actor methods
const (
	MethodInitExec uint64 = 2
)

// Multisig actor methods
const (
	MethodMultisigPropose uint64 = 2
	MethodMultisigApprove uint64 = 3
	MethodMultisigCancel  uint64 = 4
)

// Payment channel actor methods
const (
	MethodPaychUpdateChannelState uint64 = 2
	MethodPaychSettle             uint64 = 3
	MethodPaychCollect            uint64 = 4
)

// MultisigCodeCID is the code CID of the multisig actor
func MultisigCodeCID() (cid.Cid, error) {
	return cidutil.IdentityRaw(MultisigActorCodeID)
}

// PaymentChannelCodeCID is the code CID of the payment channel actor
func PaymentChannelCodeCID() (cid.Cid, error) {
	return cidutil.IdentityRaw(PaymentChannelActorCodeID)
}
