package address

import (
	"bytes"
	"math"
	"strconv"

	"github.com/multiformats/go-base32"
	"github.com/multiformats/go-varint"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/crypto"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/util"
)

// Network selects the leading character of the textual form. It never appears in the binary form.
type Network byte

const (
	Mainnet Network = 'f'
	Testnet Network = 't'
)

func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Testnet:
		return "testnet"
	default:
		return "unknown"
	}
}

// Valid reports whether n is one of the two known networks
func (n Network) Valid() bool {
	return n == Mainnet || n == Testnet
}

// Protocol is the first byte of a binary address
type Protocol byte

const (
	ID Protocol = iota
	SECP256K1
	Actor
	BLS
	// Unknown is returned for the undefined address
	Unknown Protocol = 255
)

func (p Protocol) String() string {
	switch p {
	case ID:
		return "id"
	case SECP256K1:
		return "secp256k1"
	case Actor:
		return "actor"
	case BLS:
		return "bls"
	default:
		return "unknown"
	}
}

const (
	// PayloadHashLength is the payload size of SECP256K1 and Actor addresses
	PayloadHashLength = crypto.PayloadHashLength
	// BlsPublicKeyLength is the payload size of BLS addresses
	BlsPublicKeyLength = 48
	// ChecksumHashLength is the checksum size of the textual form
	ChecksumHashLength = crypto.ChecksumHashLength
	// maxIDPayloadLength bounds the uvarint of an ID address
	maxIDPayloadLength = 9
	// MaxActorID is the largest id an ID address can carry
	MaxActorID = math.MaxInt64
)

// encoding is lowercase RFC4648 base32 without padding
var encoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// Address holds protocol || payload. It is comparable and safe to use as a map key.
type Address struct {
	str string
}

// Undef is the zero address
var Undef = Address{}

// NewIDAddress returns the address of an actor by its numeric id
func NewIDAddress(id uint64) (Address, error) {
	if id > MaxActorID {
		return Undef, types.NewError(types.KindMalformedAddress, "id %d exceeds %d", id, uint64(MaxActorID))
	}
	return Address{str: string(append([]byte{byte(ID)}, varint.ToUvarint(id)...))}, nil
}

// NewSecp256k1Address hashes a secp256k1 public key (compressed or uncompressed) into an address
func NewSecp256k1Address(publicKey []byte) (Address, error) {
	uncompressed, err := crypto.UncompressSecp256k1PublicKey(publicKey)
	if err != nil {
		return Undef, err
	}
	return newAddress(SECP256K1, crypto.Blake2b160(uncompressed))
}

// NewActorAddress hashes arbitrary data into an actor address
func NewActorAddress(data []byte) (Address, error) {
	return newAddress(Actor, crypto.Blake2b160(data))
}

// NewBLSAddress uses the 48 byte public key as payload
func NewBLSAddress(publicKey []byte) (Address, error) {
	return newAddress(BLS, publicKey)
}

// NewFromBytes parses the binary form
func NewFromBytes(raw []byte) (Address, error) {
	if len(raw) == 0 {
		return Undef, types.NewError(types.KindMalformedAddress, "empty address")
	}
	return newAddress(Protocol(raw[0]), raw[1:])
}

func newAddress(protocol Protocol, payload []byte) (Address, error) {
	switch protocol {
	case ID:
		if len(payload) == 0 || len(payload) > maxIDPayloadLength {
			return Undef, types.NewError(types.KindMalformedAddress, "invalid id payload length %d", len(payload))
		}
		id, n, err := varint.FromUvarint(payload)
		if err != nil {
			return Undef, types.WrapError(types.KindMalformedAddress, err, "invalid id payload")
		}
		if n != len(payload) {
			return Undef, types.NewError(types.KindMalformedAddress, "id payload has %d trailing bytes", len(payload)-n)
		}
		if id > MaxActorID {
			return Undef, types.NewError(types.KindMalformedAddress, "id %d exceeds %d", id, uint64(MaxActorID))
		}
	case SECP256K1, Actor:
		if len(payload) != PayloadHashLength {
			return Undef, types.NewError(types.KindMalformedAddress, "%s payload must be %d bytes, got %d", protocol, PayloadHashLength, len(payload))
		}
	case BLS:
		if len(payload) != BlsPublicKeyLength {
			return Undef, types.NewError(types.KindMalformedAddress, "bls payload must be %d bytes, got %d", BlsPublicKeyLength, len(payload))
		}
	default:
		return Undef, types.NewError(types.KindMalformedAddress, "unknown protocol %d", byte(protocol))
	}

	buf := make([]byte, 0, len(payload)+1)
	buf = append(buf, byte(protocol))
	buf = append(buf, payload...)
	return Address{str: string(buf)}, nil
}

// Empty reports whether a is the undefined address
func (a Address) Empty() bool {
	return a == Undef
}

// Protocol returns the address protocol
func (a Address) Protocol() Protocol {
	if a.Empty() {
		return Unknown
	}
	return Protocol(a.str[0])
}

// Payload returns the bytes after the protocol byte
func (a Address) Payload() []byte {
	if a.Empty() {
		return nil
	}
	return []byte(a.str[1:])
}

// Bytes returns the binary form used inside messages
func (a Address) Bytes() []byte {
	return []byte(a.str)
}

// ID returns the actor id of an ID address
func (a Address) ID() (uint64, error) {
	if a.Protocol() != ID {
		return 0, types.NewError(types.KindUnsupportedAddressProtocol, "%s address has no id", a.Protocol())
	}
	id, _, err := varint.FromUvarint(a.Payload())
	if err != nil {
		return 0, types.WrapError(types.KindMalformedAddress, err, "invalid id payload")
	}
	return id, nil
}

// Encode renders the textual form for the given network
func (a Address) Encode(network Network) string {
	if a.Empty() {
		return "<empty>"
	}

	prefix := string([]byte{byte(network), '0' + byte(a.Protocol())})
	if a.Protocol() == ID {
		id, err := a.ID()
		if err != nil {
			return "<invalid>"
		}
		return prefix + strconv.FormatUint(id, 10)
	}

	payload := a.Payload()
	cksum := crypto.AddressChecksum(a.Bytes())
	return prefix + encoding.EncodeToString(append(payload, cksum...))
}

// String renders the testnet form; use Encode when the network matters
func (a Address) String() string {
	return a.Encode(Testnet)
}

// Decode parses the textual form, which must carry the given network character
func Decode(s string, network Network) (Address, error) {
	addr, actual, err := DecodeAny(s)
	if err != nil {
		return Undef, err
	}
	if actual != network {
		return Undef, types.NewError(types.KindNetworkMismatch, "address %q is not a %s address", s, network)
	}
	return addr, nil
}

// DecodeAny parses the textual form for either network and reports which one it carried
func DecodeAny(s string) (Address, Network, error) {
	if len(s) < 3 {
		return Undef, 0, types.NewError(types.KindMalformedAddress, "address %q is too short", s)
	}
	network := Network(s[0])
	if !network.Valid() {
		return Undef, 0, types.NewError(types.KindMalformedAddress, "unknown network character %q", s[0])
	}
	if s[1] < '0' || s[1] > '3' {
		return Undef, 0, types.NewError(types.KindMalformedAddress, "unknown protocol digit %q", s[1])
	}
	protocol := Protocol(s[1] - '0')
	body := s[2:]

	if protocol == ID {
		if len(body) > 19 {
			return Undef, 0, types.NewError(types.KindMalformedAddress, "id %q is too long", body)
		}
		if len(body) > 1 && body[0] == '0' {
			return Undef, 0, types.NewError(types.KindMalformedAddress, "id %q has leading zeros", body)
		}
		id, err := strconv.ParseUint(body, 10, 63)
		if err != nil {
			return Undef, 0, types.WrapError(types.KindMalformedAddress, err, "invalid id %q", body)
		}
		addr, err := NewIDAddress(id)
		if err != nil {
			return Undef, 0, err
		}
		return addr, network, nil
	}

	raw, err := encoding.DecodeString(body)
	if err != nil {
		return Undef, 0, types.WrapError(types.KindMalformedAddress, err, "invalid base32 body")
	}
	if len(raw) < ChecksumHashLength {
		return Undef, 0, types.NewError(types.KindMalformedAddress, "address body is too short")
	}
	payload := raw[:len(raw)-ChecksumHashLength]
	cksum := raw[len(raw)-ChecksumHashLength:]

	addr, err := newAddress(protocol, payload)
	if err != nil {
		return Undef, 0, err
	}
	if !bytes.Equal(crypto.AddressChecksum(addr.Bytes()), cksum) {
		return Undef, 0, types.NewError(types.KindChecksumMismatch, "checksum mismatch for %q", s)
	}
	return addr, network, nil
}

func (a Address) MarshalCBOR() ([]byte, error) {
	if a.Empty() {
		return nil, types.NewError(types.KindMalformedAddress, "cannot encode undefined address")
	}
	return util.EncodeCBOR(a.Bytes())
}

func (a *Address) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := util.DecodeCBOR(data, &raw); err != nil {
		return types.WrapError(types.KindMalformedAddress, err, "address is not a byte string")
	}
	addr, err := NewFromBytes(raw)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
