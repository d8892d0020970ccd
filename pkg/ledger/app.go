package ledger

import (
	"context"
	"encoding/asn1"
	"math/big"
	"unicode/utf8"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/crypto"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/logger"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/message"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/transport"
)

// Version reported by the device app
type Version struct {
	Mode  uint8 `json:"mode"`
	Major uint8 `json:"major"`
	Minor uint8 `json:"minor"`
	Patch uint8 `json:"patch"`
}

// DeviceAddress is a public key and the address the device derived from it
type DeviceAddress struct {
	PublicKey     []byte
	Address       address.Address
	AddressString string
}

// DeviceSignature is the r, s, v triple returned by the device along with its DER form
type DeviceSignature struct {
	R   [32]byte
	S   [32]byte
	V   byte
	DER []byte
}

// Signature converts the device output into a chain signature
func (s *DeviceSignature) Signature() *crypto.Signature {
	data := make([]byte, 0, crypto.Secp256k1SignatureLength)
	data = append(data, s.R[:]...)
	data = append(data, s.S[:]...)
	data = append(data, s.V)
	return &crypto.Signature{Type: crypto.SigTypeSecp256k1, Data: data}
}

type derSignature struct {
	R, S *big.Int
}

// App talks to the Filecoin app on a hardware wallet
type App struct {
	exchanger transport.Exchanger
	sessionID string
	logger    *zap.Logger
}

// NewApp wraps an exchanger. The logger may be nil.
func NewApp(exchanger transport.Exchanger, l *zap.Logger) *App {
	return &App{
		exchanger: exchanger,
		sessionID: uuid.New().String(),
		logger:    logger.OrNop(l),
	}
}

// Close releases the underlying exchanger
func (a *App) Close() error {
	return a.exchanger.Close()
}

func (a *App) exchange(ctx context.Context, cmd Command) (*Answer, error) {
	raw, err := cmd.Bytes()
	if err != nil {
		return nil, err
	}
	resp, err := a.exchanger.Exchange(ctx, raw)
	if err != nil {
		return nil, errors.Wrapf(err, "exchange ins 0x%02x", cmd.INS)
	}
	answer, err := ParseAnswer(resp)
	if err != nil {
		return nil, err
	}
	a.logger.Sugar().Debugw("Device answered",
		"session", a.sessionID,
		"ins", cmd.INS,
		"p1", cmd.P1,
		"status", answer.Status.String(),
	)
	return answer, nil
}

// GetVersion returns the version of the device app
func (a *App) GetVersion(ctx context.Context) (*Version, error) {
	answer, err := a.exchange(ctx, Command{CLA: CLA, INS: InsGetVersion})
	if err != nil {
		return nil, err
	}
	if err := answer.Err(); err != nil {
		return nil, errors.Wrap(err, "get version")
	}
	if len(answer.Data) < 4 {
		return nil, ErrInvalidVersion
	}
	return &Version{
		Mode:  answer.Data[0],
		Major: answer.Data[1],
		Minor: answer.Data[2],
		Patch: answer.Data[3],
	}, nil
}

// GetAddressSecp256k1 returns the key at path. With requireConfirmation the
// device shows the address and waits for the user.
func (a *App) GetAddressSecp256k1(ctx context.Context, path BIP44Path, requireConfirmation bool) (*DeviceAddress, error) {
	var p1 byte
	if requireConfirmation {
		p1 = 1
	}
	answer, err := a.exchange(ctx, Command{CLA: CLA, INS: InsGetAddrSecp256k1, P1: p1, Data: path.Serialize()})
	if err != nil {
		return nil, err
	}
	if err := answer.Err(); err != nil {
		return nil, errors.Wrapf(err, "get address %s", path)
	}

	data := answer.Data
	if len(data) < crypto.Secp256k1PublicKeyLength {
		return nil, ErrInvalidPublicKey
	}
	pub := append([]byte(nil), data[:crypto.Secp256k1PublicKeyLength]...)
	if _, err := ethcrypto.UnmarshalPubkey(pub); err != nil {
		return nil, errors.Wrap(ErrInvalidPublicKey, err.Error())
	}
	rest := data[crypto.Secp256k1PublicKeyLength:]

	addrBytes, rest, ok := readLengthPrefixed(rest)
	if !ok {
		return nil, ErrInvalidAddress
	}
	addr, err := address.NewFromBytes(addrBytes)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidAddress, err.Error())
	}
	addrText, _, ok := readLengthPrefixed(rest)
	if !ok || !utf8.Valid(addrText) {
		return nil, ErrInvalidAddress
	}

	expected, err := address.NewSecp256k1Address(pub)
	if err != nil {
		return nil, err
	}
	if expected != addr {
		return nil, errors.Wrapf(ErrInvalidAddress, "address %s does not match public key", addr)
	}

	return &DeviceAddress{
		PublicKey:     pub,
		Address:       addr,
		AddressString: string(addrText),
	}, nil
}

func readLengthPrefixed(b []byte) ([]byte, []byte, bool) {
	if len(b) < 1 {
		return nil, nil, false
	}
	n := int(b[0])
	if len(b) < 1+n {
		return nil, nil, false
	}
	return b[1 : 1+n], b[1+n:], true
}

// SignSecp256k1 asks the device to sign a serialized unsigned message with the key at path
func (a *App) SignSecp256k1(ctx context.Context, path BIP44Path, msg []byte) (*DeviceSignature, error) {
	chunks, err := chunkMessage(msg)
	if err != nil {
		return nil, err
	}

	answer, err := a.exchange(ctx, Command{CLA: CLA, INS: InsSignSecp256k1, P1: PayloadInit, Data: path.Serialize()})
	if err != nil {
		return nil, err
	}
	if err := answer.Err(); err != nil {
		return nil, errors.Wrap(err, "sign init")
	}

	for i, chunk := range chunks {
		p1 := byte(PayloadAdd)
		if i == len(chunks)-1 {
			p1 = PayloadLast
		}
		answer, err = a.exchange(ctx, Command{CLA: CLA, INS: InsSignSecp256k1, P1: p1, Data: chunk})
		if err != nil {
			return nil, err
		}
		if err := answer.Err(); err != nil {
			return nil, errors.Wrapf(err, "sign packet %d of %d", i+1, len(chunks))
		}
	}

	return parseSignature(answer.Data)
}

func parseSignature(data []byte) (*DeviceSignature, error) {
	if len(data) == 0 {
		return nil, ErrNoSignature
	}
	if len(data) <= crypto.Secp256k1SignatureLength {
		return nil, ErrInvalidSignature
	}

	sig := &DeviceSignature{V: data[64], DER: append([]byte(nil), data[65:]...)}
	copy(sig.R[:], data[:32])
	copy(sig.S[:], data[32:64])

	var der derSignature
	rest, err := asn1.Unmarshal(sig.DER, &der)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSignature, err.Error())
	}
	if len(rest) != 0 || der.R == nil || der.S == nil {
		return nil, ErrInvalidSignature
	}
	if der.R.Cmp(new(big.Int).SetBytes(sig.R[:])) != 0 || der.S.Cmp(new(big.Int).SetBytes(sig.S[:])) != 0 {
		return nil, errors.Wrap(ErrInvalidSignature, "der form does not match r and s")
	}
	return sig, nil
}

// SignMessage signs msg on the device and returns the signed message
func (a *App) SignMessage(ctx context.Context, path BIP44Path, msg *message.UnsignedMessage) (*message.SignedMessage, error) {
	raw, err := msg.Serialize()
	if err != nil {
		return nil, err
	}
	sig, err := a.SignSecp256k1(ctx, path, raw)
	if err != nil {
		return nil, err
	}
	signed := &message.SignedMessage{Message: *msg, Signature: *sig.Signature()}
	return signed, nil
}
