package paych

import (
	"github.com/Layr-Labs/filecoin-signer-go/pkg/actors"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/bigint"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/message"
)

// Create builds the Exec message that opens a channel from env.From to to, funded with value
func Create(env actors.Envelope, to address.Address, value bigint.BigInt) (*message.UnsignedMessage, error) {
	return env.Exec(actors.PaymentChannelActorCodeID, value, actors.PaychConstructorParams{
		From: env.From,
		To:   to,
	})
}

// Update redeems a base64 encoded signed voucher against channel
func Update(env actors.Envelope, channel address.Address, voucher string) (*message.UnsignedMessage, error) {
	sv, err := DecodeVoucher(voucher)
	if err != nil {
		return nil, err
	}
	return env.Call(channel, bigint.Zero(), actors.MethodPaychUpdateChannelState, actors.UpdateChannelStateParams{Sv: *sv})
}

// Settle starts the settlement period of channel
func Settle(env actors.Envelope, channel address.Address) (*message.UnsignedMessage, error) {
	return env.Message(channel, bigint.Zero(), actors.MethodPaychSettle, nil)
}

// Collect pays out a settled channel
func Collect(env actors.Envelope, channel address.Address) (*message.UnsignedMessage, error) {
	return env.Message(channel, bigint.Zero(), actors.MethodPaychCollect, nil)
}
