package keys

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
)

const (
	// Purpose is the BIP44 purpose segment
	Purpose uint32 = 44
	// CoinTypeMainnet is the registered coin type for mainnet keys
	CoinTypeMainnet uint32 = 461
	// CoinTypeTestnet is the coin type shared by all test networks
	CoinTypeTestnet uint32 = 1

	// DefaultPath is the first mainnet account
	DefaultPath = "m/44'/461'/0/0/0"
	// DefaultTestnetPath is the first testnet account
	DefaultTestnetPath = "m/44'/1'/0/0/0"
)

// Path is a parsed derivation path. Hardened indices carry hdkeychain.HardenedKeyStart.
type Path []uint32

// ParsePath parses strings like m/44'/461'/0/0/0. A trailing ' or h marks a hardened segment.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	segments := strings.Split(s, "/")
	if len(segments) == 0 || segments[0] != "m" {
		return nil, types.NewError(types.KindInvalidPath, "path %q must start with m", s)
	}

	path := make(Path, 0, len(segments)-1)
	for i, seg := range segments[1:] {
		hardened := false
		if strings.HasSuffix(seg, "'") || strings.HasSuffix(seg, "h") {
			hardened = true
			seg = seg[:len(seg)-1]
		}
		if seg == "" || strings.HasPrefix(seg, "+") || strings.HasPrefix(seg, "-") {
			return nil, types.NewError(types.KindInvalidPath, "segment %d of %q is empty or signed", i+1, s)
		}
		index, err := strconv.ParseUint(seg, 10, 32)
		if err != nil {
			return nil, types.WrapError(types.KindInvalidPath, err, "segment %d of %q", i+1, s)
		}
		if index >= uint64(hdkeychain.HardenedKeyStart) {
			return nil, types.NewError(types.KindInvalidPath, "segment %d of %q is out of range", i+1, s)
		}
		if hardened {
			index += uint64(hdkeychain.HardenedKeyStart)
		}
		path = append(path, uint32(index))
	}
	return path, nil
}

// CoinType returns the unhardened coin type segment, if the path has one
func (p Path) CoinType() (uint32, bool) {
	if len(p) < 2 {
		return 0, false
	}
	return p[1] &^ hdkeychain.HardenedKeyStart, true
}

func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, index := range p {
		if index >= hdkeychain.HardenedKeyStart {
			fmt.Fprintf(&sb, "/%d'", index-hdkeychain.HardenedKeyStart)
			continue
		}
		fmt.Fprintf(&sb, "/%d", index)
	}
	return sb.String()
}
