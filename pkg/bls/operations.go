package bls

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
)

// DST is the ciphersuite used by Filecoin for G2 signatures (basic scheme, no proof of possession)
var DST = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_")

// g1GeneratorNeg folds verification into a single pairing check
var g1GeneratorNeg bls12381.G1Affine

func init() {
	_, _, g1Gen, _ := bls12381.Generators()
	g1GeneratorNeg.Neg(&g1Gen)
}

// HashToG2 hashes a message to a G2 point using proper hash-to-curve
func HashToG2(msg []byte) (*bls12381.G2Affine, error) {
	point, err := bls12381.HashToG2(msg, DST)
	if err != nil {
		return nil, types.WrapError(types.KindCryptoFailure, err, "hash to G2 failed")
	}
	return &point, nil
}

// GeneratePrivateKey generates a random non-zero private key
func GeneratePrivateKey() (*PrivateKey, error) {
	scalar := new(fr.Element)
	for scalar.IsZero() {
		if _, err := scalar.SetRandom(); err != nil {
			return nil, types.WrapError(types.KindCryptoFailure, err, "failed to generate random scalar")
		}
	}
	return &PrivateKey{scalar: scalar}, nil
}

// PublicKey derives the G1 public key from the private key
func (sk *PrivateKey) PublicKey() *PublicKey {
	scalarBig := new(big.Int)
	sk.scalar.BigInt(scalarBig)

	pk := new(bls12381.G1Affine).ScalarMultiplicationBase(scalarBig)
	return &PublicKey{point: pk}
}

// Sign hashes msg to G2 and multiplies by the private key. The message is not pre-hashed.
func (sk *PrivateKey) Sign(msg []byte) (*Signature, error) {
	msgPoint, err := HashToG2(msg)
	if err != nil {
		return nil, err
	}

	scalarBig := new(big.Int)
	sk.scalar.BigInt(scalarBig)

	sig := new(bls12381.G2Affine).ScalarMultiplication(msgPoint, scalarBig)
	return &Signature{point: sig}, nil
}

// Verify checks e(G1, sig) == e(pk, H(msg))
func Verify(pk *PublicKey, msg []byte, sig *Signature) (bool, error) {
	if pk == nil || sig == nil || pk.point == nil || sig.point == nil {
		return false, nil
	}
	return AggregateVerify([]*PublicKey{pk}, [][]byte{msg}, sig)
}

// Aggregate sums signatures over distinct messages into one G2 point
func Aggregate(sigs []*Signature) (*Signature, error) {
	if len(sigs) == 0 {
		return nil, types.NewError(types.KindMalformedInput, "no signatures to aggregate")
	}

	result := new(bls12381.G2Affine).SetInfinity()
	for i, sig := range sigs {
		if sig == nil || sig.point == nil {
			return nil, types.NewError(types.KindInvalidSignature, "signature %d is empty", i)
		}
		result = new(bls12381.G2Affine).Add(result, sig.point)
	}

	return &Signature{point: result}, nil
}

// AggregateVerify checks e(G1, agg) == prod e(pk_i, H(msg_i)).
// Messages must be distinct; a repeated message fails verification.
func AggregateVerify(pks []*PublicKey, msgs [][]byte, agg *Signature) (bool, error) {
	if len(pks) == 0 || len(pks) != len(msgs) || agg == nil || agg.point == nil {
		return false, nil
	}
	if hasDuplicates(msgs) {
		return false, nil
	}

	g1 := make([]bls12381.G1Affine, 0, len(pks)+1)
	g2 := make([]bls12381.G2Affine, 0, len(pks)+1)
	g1 = append(g1, g1GeneratorNeg)
	g2 = append(g2, *agg.point)

	for i, pk := range pks {
		if pk == nil || pk.point == nil {
			return false, nil
		}
		msgPoint, err := HashToG2(msgs[i])
		if err != nil {
			return false, err
		}
		g1 = append(g1, *pk.point)
		g2 = append(g2, *msgPoint)
	}

	ok, err := bls12381.PairingCheck(g1, g2)
	if err != nil {
		return false, types.WrapError(types.KindCryptoFailure, err, "pairing check failed")
	}
	return ok, nil
}

func hasDuplicates(msgs [][]byte) bool {
	seen := make(map[string]struct{}, len(msgs))
	for _, m := range msgs {
		key := string(m)
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
	}
	return false
}

