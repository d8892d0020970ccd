package ledger

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/keys"
)

// BIP44PathLength is the number of components the device expects
const BIP44PathLength = 5

// BIP44Path is purpose / coin type / account / change / index, with hardening bits set
type BIP44Path [BIP44PathLength]uint32

// ParseBIP44Path parses a textual path such as m/44'/461'/0'/0/0
func ParseBIP44Path(s string) (BIP44Path, error) {
	var out BIP44Path
	p, err := keys.ParsePath(s)
	if err != nil {
		return out, err
	}
	if len(p) != BIP44PathLength {
		return out, errors.Errorf("bip44 path must have %d components, got %d", BIP44PathLength, len(p))
	}
	copy(out[:], p)
	return out, nil
}

// Serialize encodes each component as a little-endian uint32
func (p BIP44Path) Serialize() []byte {
	out := make([]byte, 4*BIP44PathLength)
	for i, v := range p {
		binary.LittleEndian.PutUint32(out[4*i:], v)
	}
	return out
}

func (p BIP44Path) String() string {
	return keys.Path(p[:]).String()
}
