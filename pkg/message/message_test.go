package message

import (
	"encoding/hex"
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/bigint"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/crypto"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/testutil"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
)

const (
	toBytesHex   = "5501fd1d0f4dfcd7e99afcb99a8326b7dc459d32c628"
	fromBytesHex = "55011eaf1c8a4bbfeeb0870b1745b1f57503470b7116"
)

func goldenAPI() UnsignedMessageAPI {
	return UnsignedMessageAPI{
		To:         testutil.ToAddress,
		From:       testutil.AddressTestnet,
		Nonce:      1,
		Value:      "100000",
		GasLimit:   25000,
		GasFeeCap:  "1",
		GasPremium: "1",
		Method:     0,
		Params:     "",
	}
}

func TestSerialize_Golden(t *testing.T) {
	msg, err := FromAPI(goldenAPI())
	require.NoError(t, err)

	data, err := msg.Serialize()
	require.NoError(t, err)
	assert.Equal(t, testutil.UnsignedMessageCBOR, hex.EncodeToString(data))

	again, err := msg.Serialize()
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestSerialize_Invalid(t *testing.T) {
	valid := func() *UnsignedMessage {
		msg, err := FromAPI(goldenAPI())
		require.NoError(t, err)
		return msg
	}

	t.Run("version", func(t *testing.T) {
		msg := valid()
		msg.Version = 1
		_, err := msg.Serialize()
		require.ErrorIs(t, err, types.ErrMalformedMessage)
	})

	t.Run("missing to", func(t *testing.T) {
		msg := valid()
		msg.To = address.Undef
		_, err := msg.Serialize()
		require.ErrorIs(t, err, types.ErrMalformedMessage)
	})

	t.Run("negative value", func(t *testing.T) {
		msg := valid()
		msg.GasPremium = bigint.BigInt{Int: big.NewInt(-1)}
		_, err := msg.Serialize()
		require.ErrorIs(t, err, types.ErrInvalidBigInteger)
	})
}

func TestParse_Unsigned(t *testing.T) {
	parsed, err := Parse(testutil.MustHex(t, testutil.UnsignedMessageCBOR))
	require.NoError(t, err)

	msg, ok := parsed.(*UnsignedMessage)
	require.True(t, ok, "expected an unsigned message")
	assert.Nil(t, msg.Params)
	assert.Equal(t, uint64(1), msg.Nonce)
	assert.Equal(t, int64(25000), msg.GasLimit)
	assert.Equal(t, "100000", msg.Value.String())

	assert.Equal(t, goldenAPI(), ToAPI(msg, address.Testnet))

	mainnet := ToAPI(msg, address.Mainnet)
	assert.Equal(t, "f17uoq6tp427uzv7fztkbsnn64iwotfrristwpryy", mainnet.To)
	assert.Equal(t, testutil.AddressMainnet, mainnet.From)
}

func TestParse_Signed(t *testing.T) {
	parsed, err := Parse(testutil.MustHex(t, testutil.SignedMessageCBOR))
	require.NoError(t, err)

	msg, ok := parsed.(*SignedMessage)
	require.True(t, ok, "expected a signed message")
	assert.Equal(t, crypto.SigTypeSecp256k1, msg.Signature.Type)
	assert.Equal(t, testutil.SignedMessageSignatureHex, hex.EncodeToString(msg.Signature.Data))
	assert.Equal(t, int64(2500), msg.Unsigned().GasLimit)

	api := SignedToAPI(msg, address.Testnet)
	assert.Equal(t, testutil.ToAddress, api.Message.To)
	assert.Equal(t, testutil.AddressTestnet, api.Message.From)

	data, err := msg.Serialize()
	require.NoError(t, err)
	assert.Equal(t, testutil.SignedMessageCBOR, hex.EncodeToString(data))
}

func TestParse_Errors(t *testing.T) {
	tail := "44000186a01961a84200014200010040"

	cases := []struct {
		name string
		hex  string
		kind error
	}{
		{"not an array", "a0", types.ErrMalformedMessage},
		{"empty input", "", types.ErrMalformedMessage},
		{"three items", "83010203", types.ErrUnrecognizedMessageShape},
		{"empty array", "80", types.ErrUnrecognizedMessageShape},
		{"trailing bytes", testutil.UnsignedMessageCBOR + "00", types.ErrMalformedMessage},
		{"nonce as bytes", "8a00" + toBytesHex + fromBytesHex + "4101" + tail, types.ErrMalformedMessage},
		{"unknown version", "8a01" + toBytesHex + fromBytesHex + "01" + tail, types.ErrMalformedMessage},
		{"signed with junk", "82" + "01" + "02", types.ErrMalformedMessage},
		{"null params", "8a00" + toBytesHex + fromBytesHex + "01" + "44000186a01961a842000142000100f6", types.ErrMalformedMessage},
		{"non-minimal nonce", "8a00" + toBytesHex + fromBytesHex + "1801" + tail, types.ErrMalformedMessage},
		{"non-minimal gas limit", "8a00" + toBytesHex + fromBytesHex + "01" + "44000186a01a000061a84200014200010040", types.ErrMalformedMessage},
		{"zero amount with sign byte only", "8a00" + toBytesHex + fromBytesHex + "01" + "41001961a84200014200010040", types.ErrMalformedMessage},
		{"signed with null params", strings.Replace(testutil.SignedMessageCBOR, "00405842", "00f65842", 1), types.ErrMalformedMessage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := hex.DecodeString(tc.hex)
			require.NoError(t, err)

			_, err = Parse(data)
			require.ErrorIs(t, err, tc.kind)
		})
	}

	t.Run("bad signature length", func(t *testing.T) {
		data := testutil.MustHex(t, "82"+testutil.UnsignedMessageCBOR+"430102aa")
		_, err := Parse(data)
		require.ErrorIs(t, err, types.ErrInvalidSignature)
	})

	t.Run("negative amount", func(t *testing.T) {
		data := testutil.MustHex(t, "8a00"+toBytesHex+fromBytesHex+"01"+"420105"+"1961a84200014200010040")
		_, err := Parse(data)
		require.Error(t, err)
	})
}

func TestRoundTrip_WithParams(t *testing.T) {
	to, err := address.Decode(testutil.MultisigAddress, address.Testnet)
	require.NoError(t, err)
	from, err := address.Decode(testutil.AddressTestnet, address.Testnet)
	require.NoError(t, err)

	msg := &UnsignedMessage{
		To:         to,
		From:       from,
		Nonce:      42,
		Value:      bigint.MustFromString("1000000000000000000000"),
		GasLimit:   1000000,
		GasFeeCap:  bigint.FromUint64(2500),
		GasPremium: bigint.Zero(),
		Method:     2,
		Params:     []byte{0x82, 0x01, 0x02},
	}

	data, err := msg.Serialize()
	require.NoError(t, err)

	parsed, err := ParseUnsigned(data)
	require.NoError(t, err)
	assert.Equal(t, ToAPI(msg, address.Testnet), ToAPI(parsed, address.Testnet))

	again, err := parsed.Serialize()
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestSignedMessage_Cid(t *testing.T) {
	api := goldenAPI()
	api.GasLimit = testutil.CidMessageGasLimit

	signed, err := SignedFromAPI(SignedMessageAPI{
		Message:   api,
		Signature: SignatureAPI{Type: crypto.SigTypeSecp256k1, Data: testutil.CidSignatureBase64},
	})
	require.NoError(t, err)

	c, err := signed.Cid()
	require.NoError(t, err)
	assert.Equal(t, testutil.ExpectedCid, c.String())

	again, err := signed.Cid()
	require.NoError(t, err)
	assert.True(t, c.Equals(again))

	unsignedCid, err := signed.Message.Cid()
	require.NoError(t, err)
	assert.False(t, c.Equals(unsignedCid))
}

func TestAPI_JSON(t *testing.T) {
	raw := `{
		"to": "t17uoq6tp427uzv7fztkbsnn64iwotfrristwpryy",
		"from": "t1d2xrzcslx7xlbbylc5c3d5lvandqw4iwl6epxba",
		"nonce": 1,
		"value": "100000",
		"gaslimit": 25000,
		"gasfeecap": "1",
		"gaspremium": "1",
		"method": 0,
		"params": ""
	}`

	var api UnsignedMessageAPI
	require.NoError(t, json.Unmarshal([]byte(raw), &api))
	assert.Equal(t, goldenAPI(), api)

	t.Run("either network is accepted", func(t *testing.T) {
		mainnet := goldenAPI()
		mainnet.From = testutil.AddressMainnet
		msg, err := FromAPI(mainnet)
		require.NoError(t, err)
		data, err := msg.Serialize()
		require.NoError(t, err)
		assert.Equal(t, testutil.UnsignedMessageCBOR, hex.EncodeToString(data))
	})

	t.Run("invalid fields", func(t *testing.T) {
		for name, mutate := range map[string]func(*UnsignedMessageAPI){
			"to":     func(a *UnsignedMessageAPI) { a.To = "t1bad" },
			"value":  func(a *UnsignedMessageAPI) { a.Value = "-1" },
			"feecap": func(a *UnsignedMessageAPI) { a.GasFeeCap = "abc" },
			"params": func(a *UnsignedMessageAPI) { a.Params = "!!" },
		} {
			api := goldenAPI()
			mutate(&api)
			_, err := FromAPI(api)
			require.Error(t, err, name)
		}
	})

	t.Run("signed", func(t *testing.T) {
		parsed, err := ParseSigned(testutil.MustHex(t, testutil.SignedMessageCBOR))
		require.NoError(t, err)

		out, err := json.Marshal(SignedToAPI(parsed, address.Testnet))
		require.NoError(t, err)

		var back SignedMessageAPI
		require.NoError(t, json.Unmarshal(out, &back))
		again, err := SignedFromAPI(back)
		require.NoError(t, err)

		data, err := again.Serialize()
		require.NoError(t, err)
		assert.Equal(t, testutil.SignedMessageCBOR, hex.EncodeToString(data))
	})

	t.Run("parse result renders by type", func(t *testing.T) {
		parsed, err := Parse(testutil.MustHex(t, testutil.UnsignedMessageCBOR))
		require.NoError(t, err)
		assert.IsType(t, UnsignedMessageAPI{}, MessageToAPI(parsed, address.Testnet))
	})
}
