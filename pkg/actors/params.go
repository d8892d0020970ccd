package actors

import (
	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/bigint"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/cidutil"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/crypto"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/util"
)

// MessageParams is the closed set of actor call parameters this module can encode
type MessageParams interface {
	messageParams()
}

// ExecParams asks the init actor to construct a new actor of CodeCID
type ExecParams struct {
	_                 struct{} `cbor:",toarray"`
	CodeCID           cidutil.CborCid
	ConstructorParams []byte
}

// MultisigConstructorParams configures a new multisig wallet
type MultisigConstructorParams struct {
	_                     struct{} `cbor:",toarray"`
	Signers               []address.Address
	NumApprovalsThreshold int64
	UnlockDuration        int64
}

// ProposeParams describes the call a multisig should make once approved
type ProposeParams struct {
	_      struct{} `cbor:",toarray"`
	To     address.Address
	Value  bigint.BigInt
	Method uint64
	Params []byte
}

// TxnIDParams identifies a pending multisig transaction for approval or cancellation
type TxnIDParams struct {
	_            struct{} `cbor:",toarray"`
	ID           int64
	ProposalHash []byte
}

// ProposalHashData is hashed to bind an approval to the exact pending proposal
type ProposalHashData struct {
	_         struct{} `cbor:",toarray"`
	Requester address.Address
	To        address.Address
	Value     bigint.BigInt
	Method    uint64
	Params    []byte
}

// PaychConstructorParams opens a channel from From to To
type PaychConstructorParams struct {
	_    struct{} `cbor:",toarray"`
	From address.Address
	To   address.Address
}

// ModVerifyParams names an actor method that must accept a voucher before it is redeemed
type ModVerifyParams struct {
	_      struct{} `cbor:",toarray"`
	Actor  address.Address
	Method uint64
	Data   []byte
}

// Merge folds another lane into the voucher's lane
type Merge struct {
	_     struct{} `cbor:",toarray"`
	Lane  uint64
	Nonce uint64
}

// SignedVoucher is an off-chain payment channel balance update.
// A nil Signature encodes as null, which is also the form that gets signed.
type SignedVoucher struct {
	_               struct{} `cbor:",toarray"`
	ChannelAddr     address.Address
	TimeLockMin     int64
	TimeLockMax     int64
	SecretPreimage  []byte
	Extra           *ModVerifyParams
	Lane            uint64
	Nonce           uint64
	Amount          bigint.BigInt
	MinSettleHeight int64
	Merges          []Merge
	Signature       *crypto.Signature
}

// UpdateChannelStateParams redeems a voucher on chain
type UpdateChannelStateParams struct {
	_      struct{} `cbor:",toarray"`
	Sv     SignedVoucher
	Secret []byte
	Proof  []byte
}

func (ExecParams) messageParams()                {}
func (MultisigConstructorParams) messageParams() {}
func (ProposeParams) messageParams()             {}
func (TxnIDParams) messageParams()               {}
func (ProposalHashData) messageParams()          {}
func (PaychConstructorParams) messageParams()    {}
func (SignedVoucher) messageParams()             {}
func (UpdateChannelStateParams) messageParams()  {}

// SerializeParams canonically encodes any supported params variant
func SerializeParams(p MessageParams) ([]byte, error) {
	if p == nil {
		return nil, types.NewError(types.KindMalformedInput, "params are nil")
	}
	data, err := util.EncodeCBOR(p)
	if err != nil {
		return nil, types.WrapError(types.KindMalformedInput, err, "failed to encode %T", p)
	}
	return data, nil
}

// NewExecParams wraps constructor params for the init actor
func NewExecParams(codeID string, constructor MessageParams) (*ExecParams, error) {
	code, err := cidutil.IdentityRaw(codeID)
	if err != nil {
		return nil, err
	}
	ctor, err := SerializeParams(constructor)
	if err != nil {
		return nil, err
	}
	return &ExecParams{CodeCID: cidutil.CborCid{Cid: code}, ConstructorParams: ctor}, nil
}
