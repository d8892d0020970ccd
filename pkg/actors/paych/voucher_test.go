package paych

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/bigint"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/keys"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/testutil"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
)

func goldenVoucherOptions(t *testing.T) VoucherOptions {
	return VoucherOptions{
		Channel: decode(t, testutil.VoucherChannelAddress),
		Amount:  bigint.FromUint64(10000),
		Lane:    1,
		Nonce:   1,
	}
}

func TestSignVoucher_Golden(t *testing.T) {
	key, err := keys.Derive(testutil.Mnemonic, testutil.DerivationPath, "")
	require.NoError(t, err)

	voucher, err := CreateVoucher(goldenVoucherOptions(t))
	require.NoError(t, err)

	unsigned, err := DecodeVoucher(voucher)
	require.NoError(t, err)
	assert.Nil(t, unsigned.Signature)

	signed, err := SignVoucher(voucher, key.PrivateKey, address.SECP256K1)
	require.NoError(t, err)
	assert.Equal(t, testutil.SignedVoucher, signed)

	ok, err := VerifyVoucherSignature(signed, key.Address)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyVoucherSignature(signed, decode(t, testutil.SignerAddress))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyVoucherSignature_Foreign(t *testing.T) {
	ok, err := VerifyVoucherSignature(testutil.ForeignSignedVoucher, decode(t, testutil.AddressTestnet))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSignVoucher_BLS(t *testing.T) {
	key, err := keys.RecoverBLS(testutil.MustBase64(t, testutil.BLSPrivateKeyBase64), address.Testnet)
	require.NoError(t, err)

	voucher, err := CreateVoucher(goldenVoucherOptions(t))
	require.NoError(t, err)

	signed, err := SignVoucher(voucher, key.PrivateKey, address.BLS)
	require.NoError(t, err)

	ok, err := VerifyVoucherSignature(signed, key.Address)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVoucherErrors(t *testing.T) {
	voucher, err := CreateVoucher(goldenVoucherOptions(t))
	require.NoError(t, err)

	_, err = VerifyVoucherSignature(voucher, decode(t, testutil.AddressTestnet))
	require.ErrorIs(t, err, types.ErrInvalidSignature)

	_, err = SignVoucher(voucher, make([]byte, 32), address.ID)
	require.ErrorIs(t, err, types.ErrUnsupportedAddressProtocol)

	_, err = DecodeVoucher("")
	require.ErrorIs(t, err, types.ErrMalformedInput)

	_, err = DecodeVoucher("gwECAw==")
	require.ErrorIs(t, err, types.ErrMalformedInput)

	_, err = CreateVoucher(VoucherOptions{Amount: bigint.FromUint64(1)})
	require.ErrorIs(t, err, types.ErrMalformedInput)

	opts := goldenVoucherOptions(t)
	opts.TimeLockMin, opts.TimeLockMax = 10, 5
	_, err = CreateVoucher(opts)
	require.ErrorIs(t, err, types.ErrMalformedInput)
}

func TestVoucherRoundTrip(t *testing.T) {
	sv, err := DecodeVoucher(testutil.SignedVoucher)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), sv.Lane)
	assert.Equal(t, "10000", sv.Amount.String())
	require.NotNil(t, sv.Signature)

	again, err := EncodeVoucher(sv)
	require.NoError(t, err)
	assert.Equal(t, testutil.SignedVoucher, again)
}
