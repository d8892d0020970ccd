package bigint

import (
	"encoding/hex"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/util"
)

func TestBigInt_CBOR(t *testing.T) {
	vectors := []struct {
		value string
		cbor  string
	}{
		{"0", "40"},
		{"1", "420001"},
		{"1000", "430003e8"},
		{"2500", "430009c4"},
		{"100000", "44000186a0"},
		{"10000", "43002710"},
	}

	for _, v := range vectors {
		t.Run(v.value, func(t *testing.T) {
			amount, err := FromString(v.value)
			require.NoError(t, err)

			encoded, err := util.EncodeCBOR(amount)
			require.NoError(t, err)
			assert.Equal(t, v.cbor, hex.EncodeToString(encoded))

			var decoded BigInt
			require.NoError(t, util.DecodeCBOR(encoded, &decoded))
			assert.True(t, amount.Equals(decoded))
			assert.Equal(t, v.value, decoded.String())
		})
	}
}

func TestBigInt_UnsetIsZero(t *testing.T) {
	var unset BigInt

	encoded, err := util.EncodeCBOR(unset)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x40}, encoded)
	assert.True(t, unset.IsZero())
	assert.Equal(t, "0", unset.String())
	assert.True(t, unset.Equals(Zero()))
}

func TestBigInt_RejectsNegative(t *testing.T) {
	_, err := FromString("-1")
	require.ErrorIs(t, err, types.ErrInvalidBigInteger)

	_, err = FromBig(big.NewInt(-5))
	require.ErrorIs(t, err, types.ErrInvalidBigInteger)

	negative := BigInt{Int: big.NewInt(-5)}
	require.ErrorIs(t, negative.Validate(), types.ErrInvalidBigInteger)
	_, err = util.EncodeCBOR(negative)
	require.Error(t, err)

	_, err = FromBytes([]byte{0x01, 0x05})
	require.ErrorIs(t, err, types.ErrInvalidBigInteger)

	var decoded BigInt
	require.Error(t, util.DecodeCBOR([]byte{0x42, 0x01, 0x05}, &decoded))
}

func TestBigInt_FromStringErrors(t *testing.T) {
	for _, s := range []string{"", "abc", "1.5", "0x10"} {
		_, err := FromString(s)
		require.ErrorIs(t, err, types.ErrInvalidBigInteger, s)
	}
}

func TestBigInt_FromBytes(t *testing.T) {
	v, err := FromBytes(nil)
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	_, err = FromBytes([]byte{0x07, 0x01})
	require.ErrorIs(t, err, types.ErrInvalidBigInteger)

	big1, err := FromString("340282366920938463463374607431768211456") // 2^128
	require.NoError(t, err)
	raw, err := big1.Bytes()
	require.NoError(t, err)
	assert.Len(t, raw, 18)
	back, err := FromBytes(raw)
	require.NoError(t, err)
	assert.True(t, big1.Equals(back))
}

func TestBigInt_JSON(t *testing.T) {
	type wrapper struct {
		Value BigInt `json:"value"`
	}

	out, err := json.Marshal(wrapper{Value: FromUint64(100000)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"100000"}`, string(out))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"value":"2500"}`), &w))
	assert.Equal(t, "2500", w.Value.String())

	require.Error(t, json.Unmarshal([]byte(`{"value":2500}`), &w))
	require.Error(t, json.Unmarshal([]byte(`{"value":"-1"}`), &w))
}
