package bls

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func FuzzSignVerify(f *testing.F) {
	f.Add([]byte("a"))
	f.Add([]byte{})
	f.Add([]byte{0x8a, 0x00, 0x55})

	sk, err := GeneratePrivateKey()
	if err != nil {
		f.Fatal(err)
	}
	pk := sk.PublicKey()

	f.Fuzz(func(t *testing.T, msg []byte) {
		sig, err := sk.Sign(msg)
		require.NoError(t, err)

		ok, err := Verify(pk, msg, sig)
		require.NoError(t, err)
		require.True(t, ok)

		tampered := append(append([]byte{}, msg...), 0x00)
		ok, err = Verify(pk, tampered, sig)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func FuzzSignatureBytes(f *testing.F) {
	f.Add(make([]byte, SignatureLength))
	f.Add([]byte{0xc0})

	f.Fuzz(func(t *testing.T, data []byte) {
		// Parsing arbitrary bytes must never panic
		sig, err := NewSignatureFromBytes(data)
		if err == nil {
			require.Len(t, sig.Bytes(), SignatureLength)
		}
	})
}
