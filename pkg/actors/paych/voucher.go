package paych

import (
	"fmt"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/actors"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/bigint"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/signer"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/util"
)

// VoucherOptions are the fields of a new voucher
type VoucherOptions struct {
	Channel         address.Address
	TimeLockMin     int64
	TimeLockMax     int64
	Amount          bigint.BigInt
	Lane            uint64
	Nonce           uint64
	MinSettleHeight int64
}

// NewVoucher builds an unsigned voucher with no secret, extra check or merges
func NewVoucher(opts VoucherOptions) (*actors.SignedVoucher, error) {
	if opts.Channel.Empty() {
		return nil, types.NewError(types.KindMalformedInput, "voucher needs a channel address")
	}
	if err := opts.Amount.Validate(); err != nil {
		return nil, err
	}
	if opts.TimeLockMin < 0 || opts.TimeLockMax < 0 || opts.MinSettleHeight < 0 {
		return nil, types.NewError(types.KindMalformedInput, "voucher heights must not be negative")
	}
	if opts.TimeLockMax != 0 && opts.TimeLockMax < opts.TimeLockMin {
		return nil, types.NewError(types.KindMalformedInput, "time lock max %d is before min %d", opts.TimeLockMax, opts.TimeLockMin)
	}
	amount := opts.Amount
	if amount.Int == nil {
		amount = bigint.Zero()
	}
	return &actors.SignedVoucher{
		ChannelAddr:     opts.Channel,
		TimeLockMin:     opts.TimeLockMin,
		TimeLockMax:     opts.TimeLockMax,
		Lane:            opts.Lane,
		Nonce:           opts.Nonce,
		Amount:          amount,
		MinSettleHeight: opts.MinSettleHeight,
	}, nil
}

// CreateVoucher builds an unsigned voucher and returns it base64 encoded
func CreateVoucher(opts VoucherOptions) (string, error) {
	sv, err := NewVoucher(opts)
	if err != nil {
		return "", err
	}
	return EncodeVoucher(sv)
}

// EncodeVoucher returns the base64 canonical encoding of sv
func EncodeVoucher(sv *actors.SignedVoucher) (string, error) {
	data, err := actors.SerializeParams(sv)
	if err != nil {
		return "", err
	}
	return util.EncodeBase64(data), nil
}

// DecodeVoucher parses a base64 encoded voucher
func DecodeVoucher(voucher string) (*actors.SignedVoucher, error) {
	data, err := util.DecodeBase64(voucher)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, types.NewError(types.KindMalformedInput, "empty voucher")
	}
	sv := &actors.SignedVoucher{}
	if err := util.DecodeCBOR(data, sv); err != nil {
		return nil, types.WrapError(types.KindMalformedInput, err, "invalid voucher")
	}
	return sv, nil
}

// SigningBytes encodes sv with its signature removed
func SigningBytes(sv *actors.SignedVoucher) ([]byte, error) {
	unsigned := *sv
	unsigned.Signature = nil
	return actors.SerializeParams(&unsigned)
}

// SignVoucher signs a base64 voucher with a key of the given protocol and
// returns the signed voucher, base64 encoded.
func SignVoucher(voucher string, privateKey []byte, protocol address.Protocol) (string, error) {
	sv, err := DecodeVoucher(voucher)
	if err != nil {
		return "", err
	}
	data, err := SigningBytes(sv)
	if err != nil {
		return "", err
	}
	sig, err := signer.SignBytes(data, privateKey, protocol)
	if err != nil {
		return "", fmt.Errorf("sign voucher: %w", err)
	}
	sv.Signature = sig
	return EncodeVoucher(sv)
}

// VerifyVoucherSignature checks that signerAddr signed the base64 voucher
func VerifyVoucherSignature(voucher string, signerAddr address.Address) (bool, error) {
	sv, err := DecodeVoucher(voucher)
	if err != nil {
		return false, err
	}
	if sv.Signature == nil {
		return false, types.NewError(types.KindInvalidSignature, "voucher is not signed")
	}
	data, err := SigningBytes(sv)
	if err != nil {
		return false, err
	}
	return signer.VerifyBytes(sv.Signature, data, signerAddr)
}
