package util

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
	"github.com/fxamacker/cbor/v2"
)

// PrivateKeyLength is the size of a raw secp256k1 or BLS private key
const PrivateKeyLength = 32

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	// nil byte slices and arrays must come out as empty items, never null
	opts := cbor.CanonicalEncOptions()
	opts.NilContainers = cbor.NilContainerAsEmpty
	encMode, err = opts.EncMode()
	if err != nil {
		panic(err)
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
		TagsMd:      cbor.TagsAllowed,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// EncodeCBOR serializes v with the canonical encoding used on chain
func EncodeCBOR(v interface{}) ([]byte, error) {
	return encMode.Marshal(v)
}

// DecodeCBOR deserializes canonical CBOR into v. Trailing bytes are rejected.
func DecodeCBOR(data []byte, v interface{}) error {
	return decMode.Unmarshal(data, v)
}

// DecodePrivateKey accepts a 32 byte private key as base64 (when it ends with '=')
// or as hex with an optional 0x prefix.
func DecodePrivateKey(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	var (
		key []byte
		err error
	)
	if strings.HasSuffix(s, "=") {
		key, err = base64.StdEncoding.DecodeString(s)
	} else {
		key, err = hex.DecodeString(strings.TrimPrefix(s, "0x"))
	}
	if err != nil {
		return nil, types.WrapError(types.KindMalformedInput, err, "private key is neither base64 nor hex")
	}
	if len(key) != PrivateKeyLength {
		return nil, types.NewError(types.KindInvalidKeyLength, "private key must be %d bytes, got %d", PrivateKeyLength, len(key))
	}
	return key, nil
}

// DecodeHex decodes a hex string with an optional 0x prefix
func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, types.WrapError(types.KindMalformedInput, err, "invalid hex")
	}
	return b, nil
}

// DecodeBase64 decodes standard padded base64. The empty string decodes to nil.
func DecodeBase64(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, types.WrapError(types.KindMalformedInput, err, "invalid base64")
	}
	return b, nil
}

// EncodeBase64 is the inverse of DecodeBase64
func EncodeBase64(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(b)
}

// ReverseBytes returns a reversed copy of b
func ReverseBytes(b []byte) []byte {
	out := bytes.Clone(b)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
