package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/testutil"
)

func run(t *testing.T, args ...string) map[string]interface{} {
	t.Helper()
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	require.NoError(t, app.Run(append([]string{"fcsigner"}, args...)))

	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out), buf.String())
	return out
}

func goldenMessageJSON() string {
	return fmt.Sprintf(`{"to":%q,"from":%q,"nonce":1,"value":"100000","gaslimit":25000,"gasfeecap":"1","gaspremium":"1","method":0,"params":""}`,
		testutil.ToAddress, testutil.AddressTestnet)
}

func TestCLI_Keys(t *testing.T) {
	t.Run("derive", func(t *testing.T) {
		out := run(t, "--network", "mainnet", "--path", testutil.DerivationPath, "derive", "--mnemonic", testutil.Mnemonic)
		assert.Equal(t, testutil.PrivateKeyBase64, out["private_base64"])
	})

	t.Run("recover mainnet", func(t *testing.T) {
		out := run(t, "--network", "mainnet", "recover", "--private-key", testutil.PrivateKeyHex)
		assert.Equal(t, testutil.AddressMainnet, out["address"])
	})

	t.Run("recover bls", func(t *testing.T) {
		out := run(t, "recover", "--bls", "--private-key", testutil.PaychBLSPrivateKeyBase64)
		assert.Equal(t, testutil.PaychBLSAddress, out["address"])
	})

	t.Run("mnemonic", func(t *testing.T) {
		out := run(t, "mnemonic")
		assert.NotEmpty(t, out["mnemonic"])
	})
}

func TestCLI_Transaction(t *testing.T) {
	out := run(t, "create", "--message", goldenMessageJSON())
	assert.Equal(t, "0x"+testutil.UnsignedMessageCBOR, out["hex"])

	out = run(t, "parse", "--hex", testutil.UnsignedMessageCBOR)
	assert.Equal(t, testutil.ToAddress, out["to"])
	assert.Equal(t, "100000", out["value"])

	out = run(t, "sign", "--message", goldenMessageJSON(), "--private-key", testutil.PrivateKeyBase64)
	require.NotEmpty(t, out["hex"])
	assert.NotEmpty(t, out["cid"])

	cidOut := run(t, "cid", "--hex", out["hex"].(string))
	assert.Equal(t, out["cid"], cidOut["cid"])
}

func TestCLI_BadNetwork(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{"fcsigner", "--network", "devnet", "recover", "--private-key", testutil.PrivateKeyHex})
	assert.Error(t, err)
}

func TestCLI_Voucher(t *testing.T) {
	out := run(t, "voucher-create", "--channel", testutil.VoucherChannelAddress, "--amount", "10000", "--nonce", "1")
	voucher := out["voucher"].(string)
	require.NotEmpty(t, voucher)

	out = run(t, "voucher-sign", "--voucher", voucher, "--private-key", testutil.PrivateKeyBase64)
	signed := out["voucher"].(string)

	out = run(t, "voucher-verify", "--voucher", signed, "--signer", testutil.AddressTestnet)
	assert.Equal(t, true, out["valid"])
}

func TestCLI_Multisig(t *testing.T) {
	out := run(t, "msig-create",
		"--from", testutil.AddressTestnet,
		"--signer", testutil.AddressTestnet,
		"--signer", testutil.ToAddress,
		"--threshold", "2",
	)
	assert.Equal(t, "t01", out["to"])
	assert.EqualValues(t, 2, out["method"])
}
