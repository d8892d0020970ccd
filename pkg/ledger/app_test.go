package ledger

import (
	"context"
	"encoding/asn1"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/crypto"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/message"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/signer"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/testutil"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/transport"
)

// fakeDevice emulates the Filecoin app with an in-memory secp256k1 key
type fakeDevice struct {
	privateKey []byte
	pending    []byte
	commands   [][]byte
	failOn     byte
	failStatus StatusWord
}

var okStatus = []byte{0x90, 0x00}

func status(s StatusWord) []byte {
	return []byte{byte(s >> 8), byte(s)}
}

func (d *fakeDevice) Exchange(_ context.Context, cmd []byte) ([]byte, error) {
	d.commands = append(d.commands, append([]byte(nil), cmd...))
	if len(cmd) < 5 || int(cmd[4]) != len(cmd)-5 {
		return status(StatusWrongLength), nil
	}
	if cmd[0] != CLA {
		return status(StatusClaNotSupported), nil
	}
	ins, p1, data := cmd[1], cmd[2], cmd[5:]
	if d.failStatus != 0 && ins == d.failOn {
		return status(d.failStatus), nil
	}

	switch ins {
	case InsGetVersion:
		return append([]byte{0x00, 0x00, 0x03, 0x01}, okStatus...), nil
	case InsGetAddrSecp256k1:
		pub, err := crypto.Secp256k1PublicKey(d.privateKey)
		if err != nil {
			return nil, err
		}
		addr, err := address.NewSecp256k1Address(pub)
		if err != nil {
			return nil, err
		}
		text := addr.Encode(address.Mainnet)
		resp := append([]byte(nil), pub...)
		resp = append(resp, byte(len(addr.Bytes())))
		resp = append(resp, addr.Bytes()...)
		resp = append(resp, byte(len(text)))
		resp = append(resp, text...)
		return append(resp, okStatus...), nil
	case InsSignSecp256k1:
		switch p1 {
		case PayloadInit:
			if len(data) != 4*BIP44PathLength {
				return status(StatusDataInvalid), nil
			}
			d.pending = nil
			return okStatus, nil
		case PayloadAdd:
			d.pending = append(d.pending, data...)
			return okStatus, nil
		case PayloadLast:
			d.pending = append(d.pending, data...)
			digest, err := signer.Digest(d.pending)
			if err != nil {
				return status(StatusDataInvalid), nil
			}
			sig, err := crypto.SignSecp256k1(d.privateKey, digest)
			if err != nil {
				return nil, err
			}
			der, err := asn1.Marshal(derSignature{
				R: new(big.Int).SetBytes(sig[:32]),
				S: new(big.Int).SetBytes(sig[32:64]),
			})
			if err != nil {
				return nil, err
			}
			resp := append(sig, der...)
			return append(resp, okStatus...), nil
		}
		return status(StatusInvalidP1P2), nil
	}
	return status(StatusInsNotSupported), nil
}

func (d *fakeDevice) Close() error { return nil }

func newFakeApp(t *testing.T) (*App, *fakeDevice) {
	t.Helper()
	dev := &fakeDevice{privateKey: testutil.MustBase64(t, testutil.PrivateKeyBase64)}
	return NewApp(dev, nil), dev
}

func defaultPath(t *testing.T) BIP44Path {
	t.Helper()
	p, err := ParseBIP44Path("m/44'/461'/0'/0/0")
	require.NoError(t, err)
	return p
}

func TestApp_GetVersion(t *testing.T) {
	app, dev := newFakeApp(t)

	v, err := app.GetVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Version{Mode: 0, Major: 0, Minor: 3, Patch: 1}, v)
	assert.Equal(t, [][]byte{{CLA, InsGetVersion, 0x00, 0x00, 0x00}}, dev.commands)
}

func TestApp_GetVersion_Status(t *testing.T) {
	app, dev := newFakeApp(t)
	dev.failOn, dev.failStatus = InsGetVersion, StatusClaNotSupported

	_, err := app.GetVersion(context.Background())
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StatusClaNotSupported, se.Status)
}

func TestApp_GetAddressSecp256k1(t *testing.T) {
	app, dev := newFakeApp(t)
	path := defaultPath(t)

	t.Run("without confirmation", func(t *testing.T) {
		addr, err := app.GetAddressSecp256k1(context.Background(), path, false)
		require.NoError(t, err)
		assert.Len(t, addr.PublicKey, crypto.Secp256k1PublicKeyLength)
		assert.Equal(t, testutil.AddressMainnet, addr.AddressString)
		assert.Equal(t, testutil.AddressTestnet, addr.Address.String())

		last := dev.commands[len(dev.commands)-1]
		assert.Equal(t, []byte{CLA, InsGetAddrSecp256k1, 0x00, 0x00, 20}, last[:5])
		assert.Equal(t, path.Serialize(), last[5:])
	})

	t.Run("with confirmation sets p1", func(t *testing.T) {
		_, err := app.GetAddressSecp256k1(context.Background(), path, true)
		require.NoError(t, err)
		last := dev.commands[len(dev.commands)-1]
		assert.Equal(t, byte(1), last[2])
	})
}

func TestApp_GetAddressSecp256k1_ShortResponse(t *testing.T) {
	ex := transport.NewScriptedExchanger(transport.Step{Response: []byte{0x04, 0x01, 0x90, 0x00}})
	app := NewApp(ex, nil)

	_, err := app.GetAddressSecp256k1(context.Background(), defaultPath(t), false)
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
}

func TestApp_SignSecp256k1(t *testing.T) {
	app, dev := newFakeApp(t)
	path := defaultPath(t)
	raw := testutil.MustHex(t, testutil.UnsignedMessageCBOR)

	sig, err := app.SignSecp256k1(context.Background(), path, raw)
	require.NoError(t, err)

	require.Len(t, dev.commands, 2)
	assert.Equal(t, byte(PayloadInit), dev.commands[0][2])
	assert.Equal(t, byte(PayloadLast), dev.commands[1][2])
	assert.Equal(t, raw, dev.commands[1][5:])

	ok, err := signer.Verify(sig.Signature(), raw)
	require.NoError(t, err)
	assert.True(t, ok)

	expected, err := signer.Sign(mustParseUnsigned(t, raw), dev.privateKey)
	require.NoError(t, err)
	assert.Equal(t, expected.Data, sig.Signature().Data)
}

func TestApp_SignSecp256k1_Chunking(t *testing.T) {
	app, dev := newFakeApp(t)
	msg := mustParseUnsigned(t, testutil.MustHex(t, testutil.UnsignedMessageCBOR))
	msg.Params = make([]byte, 600)
	raw, err := msg.Serialize()
	require.NoError(t, err)

	signed, err := app.SignMessage(context.Background(), defaultPath(t), msg)
	require.NoError(t, err)

	// one path packet then ceil(len/250) message packets
	expectedPackets := 1 + (len(raw)+MessageChunkSize-1)/MessageChunkSize
	require.Len(t, dev.commands, expectedPackets)
	for i, cmd := range dev.commands[1 : expectedPackets-1] {
		assert.Equal(t, byte(PayloadAdd), cmd[2], "packet %d", i+1)
		assert.Len(t, cmd[5:], MessageChunkSize)
	}
	assert.Equal(t, byte(PayloadLast), dev.commands[expectedPackets-1][2])
	assert.Equal(t, raw, dev.pending)

	signedRaw, err := signed.Serialize()
	require.NoError(t, err)
	parsed, err := message.ParseSigned(signedRaw)
	require.NoError(t, err)
	ok, err := signer.Verify(&parsed.Signature, raw)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestApp_SignSecp256k1_Errors(t *testing.T) {
	path := defaultPath(t)

	t.Run("empty message", func(t *testing.T) {
		app, dev := newFakeApp(t)
		_, err := app.SignSecp256k1(context.Background(), path, nil)
		assert.ErrorIs(t, err, ErrEmptyMessage)
		assert.Empty(t, dev.commands)
	})

	t.Run("too many packets", func(t *testing.T) {
		app, _ := newFakeApp(t)
		_, err := app.SignSecp256k1(context.Background(), path, make([]byte, MessageChunkSize*maxPackets+1))
		assert.ErrorIs(t, err, ErrMessageTooLarge)
	})

	t.Run("device rejects", func(t *testing.T) {
		app, dev := newFakeApp(t)
		dev.failOn, dev.failStatus = InsSignSecp256k1, StatusConditionsNotSatisfied
		_, err := app.SignSecp256k1(context.Background(), path, []byte{0x01})
		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, StatusConditionsNotSatisfied, se.Status)
		assert.Contains(t, err.Error(), "conditions not satisfied")
	})

	t.Run("no signature", func(t *testing.T) {
		ex := transport.NewScriptedExchanger(
			transport.Step{Response: okStatus},
			transport.Step{Response: okStatus},
		)
		_, err := NewApp(ex, nil).SignSecp256k1(context.Background(), path, []byte{0x01})
		assert.ErrorIs(t, err, ErrNoSignature)
	})

	t.Run("der mismatch", func(t *testing.T) {
		resp := make([]byte, 65)
		resp[0] = 0x01
		der, err := asn1.Marshal(derSignature{R: big.NewInt(2), S: big.NewInt(0)})
		require.NoError(t, err)
		resp = append(resp, der...)
		ex := transport.NewScriptedExchanger(
			transport.Step{Response: okStatus},
			transport.Step{Response: append(resp, okStatus...)},
		)
		_, err = NewApp(ex, nil).SignSecp256k1(context.Background(), path, []byte{0x01})
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})
}

func mustParseUnsigned(t *testing.T, raw []byte) *message.UnsignedMessage {
	t.Helper()
	msg, err := message.ParseUnsigned(raw)
	require.NoError(t, err)
	return msg
}
