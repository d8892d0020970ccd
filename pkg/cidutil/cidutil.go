package cidutil

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/util"
)

// cborLinkTag is the IPLD tag for CIDs embedded in DAG-CBOR
const cborLinkTag = 42

// Blake2b256 is the multihash code for blake2b with a 32 byte digest
const Blake2b256 = multihash.BLAKE2B_MIN + 31

// MessagePrefix is the CID prefix of every chain object: CIDv1, dag-cbor, blake2b-256
var MessagePrefix = cid.Prefix{
	Version:  1,
	Codec:    cid.DagCBOR,
	MhType:   Blake2b256,
	MhLength: 32,
}

// Sum returns the CIDv1 (dag-cbor + blake2b-256) of canonical CBOR bytes
func Sum(data []byte) (cid.Cid, error) {
	c, err := MessagePrefix.Sum(data)
	if err != nil {
		return cid.Undef, types.WrapError(types.KindCryptoFailure, err, "failed to hash cbor")
	}
	return c, nil
}

// IdentityRaw returns a CIDv1 (raw + identity multihash) that inlines s.
// Builtin actor code identifiers are built this way.
func IdentityRaw(s string) (cid.Cid, error) {
	sum, err := multihash.Sum([]byte(s), multihash.IDENTITY, -1)
	if err != nil {
		return cid.Undef, types.WrapError(types.KindMalformedInput, err, "failed to build identity multihash")
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// CborCid wraps a CID so it encodes as a DAG-CBOR link: tag 42 over 0x00 || cid bytes
type CborCid struct {
	cid.Cid
}

func (c CborCid) MarshalCBOR() ([]byte, error) {
	if !c.Defined() {
		return nil, types.NewError(types.KindMalformedInput, "cannot encode undefined cid")
	}
	content := append([]byte{0x00}, c.Bytes()...)
	return util.EncodeCBOR(cbor.Tag{Number: cborLinkTag, Content: content})
}

func (c *CborCid) UnmarshalCBOR(data []byte) error {
	var tag cbor.RawTag
	if err := util.DecodeCBOR(data, &tag); err != nil {
		return types.WrapError(types.KindMalformedInput, err, "cid is not tagged")
	}
	if tag.Number != cborLinkTag {
		return types.NewError(types.KindMalformedInput, "unexpected tag %d for cid", tag.Number)
	}
	var raw []byte
	if err := util.DecodeCBOR(tag.Content, &raw); err != nil {
		return types.WrapError(types.KindMalformedInput, err, "cid link content is not bytes")
	}
	if len(raw) == 0 || raw[0] != 0x00 {
		return types.NewError(types.KindMalformedInput, "cid link is missing the multibase identity prefix")
	}
	parsed, err := cid.Cast(raw[1:])
	if err != nil {
		return types.WrapError(types.KindMalformedInput, err, "invalid cid")
	}
	c.Cid = parsed
	return nil
}
