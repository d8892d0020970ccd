package bigint

import (
	"encoding/json"
	"math/big"
	"strings"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/util"
)

// Sign markers of the serialized form
const (
	signPositive byte = 0x00
	signNegative byte = 0x01
)

// BigInt is a non-negative token amount. The zero value is 0.
type BigInt struct {
	*big.Int
}

// Zero returns a new zero amount
func Zero() BigInt {
	return BigInt{Int: big.NewInt(0)}
}

// FromUint64 wraps a uint64
func FromUint64(v uint64) BigInt {
	return BigInt{Int: new(big.Int).SetUint64(v)}
}

// FromBig copies a big.Int, rejecting negative values
func FromBig(v *big.Int) (BigInt, error) {
	if v == nil {
		return Zero(), nil
	}
	if v.Sign() < 0 {
		return BigInt{}, types.NewError(types.KindInvalidBigInteger, "negative amount %s", v.String())
	}
	return BigInt{Int: new(big.Int).Set(v)}, nil
}

// FromString parses a base 10 amount
func FromString(s string) (BigInt, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return BigInt{}, types.NewError(types.KindInvalidBigInteger, "empty amount")
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return BigInt{}, types.NewError(types.KindInvalidBigInteger, "%q is not a base 10 integer", s)
	}
	return FromBig(v)
}

// MustFromString is FromString for constants; it panics on invalid input
func MustFromString(s string) BigInt {
	v, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// FromBytes parses the serialized form: empty for zero, else sign byte || big-endian magnitude
func FromBytes(b []byte) (BigInt, error) {
	if len(b) == 0 {
		return Zero(), nil
	}
	switch b[0] {
	case signPositive:
		return BigInt{Int: new(big.Int).SetBytes(b[1:])}, nil
	case signNegative:
		return BigInt{}, types.NewError(types.KindInvalidBigInteger, "negative amounts are not supported")
	default:
		return BigInt{}, types.NewError(types.KindInvalidBigInteger, "invalid sign byte 0x%02x", b[0])
	}
}

// Bytes returns the serialized form. Zero serializes to an empty slice.
func (b BigInt) Bytes() ([]byte, error) {
	if b.Int == nil || b.Int.Sign() == 0 {
		return []byte{}, nil
	}
	if b.Int.Sign() < 0 {
		return nil, types.NewError(types.KindInvalidBigInteger, "negative amount %s", b.Int.String())
	}
	return append([]byte{signPositive}, b.Int.Bytes()...), nil
}

// IsZero reports whether the amount is zero or unset
func (b BigInt) IsZero() bool {
	return b.Int == nil || b.Int.Sign() == 0
}

// Validate reports an error for negative amounts
func (b BigInt) Validate() error {
	if b.Int != nil && b.Int.Sign() < 0 {
		return types.NewError(types.KindInvalidBigInteger, "negative amount %s", b.Int.String())
	}
	return nil
}

// Equals compares two amounts, treating unset as zero
func (b BigInt) Equals(other BigInt) bool {
	return b.big().Cmp(other.big()) == 0
}

func (b BigInt) big() *big.Int {
	if b.Int == nil {
		return big.NewInt(0)
	}
	return b.Int
}

func (b BigInt) String() string {
	return b.big().String()
}

func (b BigInt) MarshalCBOR() ([]byte, error) {
	raw, err := b.Bytes()
	if err != nil {
		return nil, err
	}
	return util.EncodeCBOR(raw)
}

func (b *BigInt) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := util.DecodeCBOR(data, &raw); err != nil {
		return types.WrapError(types.KindInvalidBigInteger, err, "big integer is not a byte string")
	}
	v, err := FromBytes(raw)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// MarshalJSON renders the amount as a decimal string
func (b BigInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *BigInt) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return types.WrapError(types.KindInvalidBigInteger, err, "amount must be a string")
	}
	v, err := FromString(s)
	if err != nil {
		return err
	}
	*b = v
	return nil
}
