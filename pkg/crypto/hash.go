package crypto

import (
	"golang.org/x/crypto/blake2b"
)

const (
	// PayloadHashLength is the size of secp256k1 and actor address payloads
	PayloadHashLength = 20
	// ChecksumHashLength is the size of the checksum appended to textual addresses
	ChecksumHashLength = 4
)

// Blake2b256 returns the 32 byte blake2b digest of data
func Blake2b256(data []byte) []byte {
	sum := blake2b.Sum256(data)
	return sum[:]
}

// Blake2b160 returns the 20 byte blake2b digest of data
func Blake2b160(data []byte) []byte {
	return blake2bSized(data, PayloadHashLength)
}

// AddressChecksum computes the 4 byte blake2b checksum over protocol||payload
func AddressChecksum(ingest []byte) []byte {
	return blake2bSized(ingest, ChecksumHashLength)
}

func blake2bSized(data []byte, size int) []byte {
	h, err := blake2b.New(size, nil)
	if err != nil {
		// only reachable with an invalid size constant
		panic(err)
	}
	_, _ = h.Write(data)
	return h.Sum(nil)
}
