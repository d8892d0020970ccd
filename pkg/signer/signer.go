package signer

import (
	"bytes"
	"fmt"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/address"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/bls"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/cidutil"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/crypto"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/message"
	"github.com/Layr-Labs/filecoin-signer-go/pkg/types"
)

// Digest returns the secp256k1 signing input for canonical message bytes:
// blake2b-256 over the bytes of the message CID.
func Digest(messageBytes []byte) ([]byte, error) {
	c, err := cidutil.Sum(messageBytes)
	if err != nil {
		return nil, err
	}
	return crypto.Blake2b256(c.Bytes()), nil
}

// SignBytes signs arbitrary data with the scheme of protocol. Secp256k1 keys
// sign the blake2b-256 hash of data, BLS keys sign data as is.
func SignBytes(data, privateKey []byte, protocol address.Protocol) (*crypto.Signature, error) {
	switch protocol {
	case address.SECP256K1:
		sig, err := crypto.SignSecp256k1(privateKey, crypto.Blake2b256(data))
		if err != nil {
			return nil, err
		}
		return &crypto.Signature{Type: crypto.SigTypeSecp256k1, Data: sig}, nil
	case address.BLS:
		sk, err := bls.NewPrivateKeyFromBytes(privateKey)
		if err != nil {
			return nil, err
		}
		sig, err := sk.Sign(data)
		if err != nil {
			return nil, err
		}
		return &crypto.Signature{Type: crypto.SigTypeBLS, Data: sig.Bytes()}, nil
	default:
		return nil, types.NewError(types.KindUnsupportedAddressProtocol, "cannot sign for %s addresses", protocol)
	}
}

// Sign signs a message with the scheme selected by its from address
func Sign(msg *message.UnsignedMessage, privateKey []byte) (*crypto.Signature, error) {
	data, err := msg.Serialize()
	if err != nil {
		return nil, err
	}
	input, err := signingInput(data, msg.From.Protocol())
	if err != nil {
		return nil, err
	}
	return SignBytes(input, privateKey, msg.From.Protocol())
}

// SignTransaction signs msg and returns the signed message
func SignTransaction(msg *message.UnsignedMessage, privateKey []byte) (*message.SignedMessage, error) {
	sig, err := Sign(msg, privateKey)
	if err != nil {
		return nil, err
	}
	return &message.SignedMessage{Message: *msg, Signature: *sig}, nil
}

// signingInput maps canonical message bytes to what SignBytes receives.
// Secp256k1 signs the CID bytes, BLS signs the message bytes.
func signingInput(messageBytes []byte, protocol address.Protocol) ([]byte, error) {
	switch protocol {
	case address.SECP256K1:
		c, err := cidutil.Sum(messageBytes)
		if err != nil {
			return nil, err
		}
		return c.Bytes(), nil
	case address.BLS:
		return messageBytes, nil
	default:
		return nil, types.NewError(types.KindUnsupportedAddressProtocol, "no signature scheme for %s addresses", protocol)
	}
}

// Verify checks sig against canonical unsigned message bytes. The signer is
// the message's from address; for BLS its payload is trusted as the public key.
// Structurally invalid signatures return an InvalidSignature error, a valid
// signature by someone else returns false.
func Verify(sig *crypto.Signature, messageBytes []byte) (bool, error) {
	msg, err := message.ParseUnsigned(messageBytes)
	if err != nil {
		return false, err
	}
	input, err := signingInput(messageBytes, msg.From.Protocol())
	if err != nil {
		return false, err
	}
	return VerifyBytes(sig, input, msg.From)
}

// VerifyBytes checks a signature produced by SignBytes against the signer address
func VerifyBytes(sig *crypto.Signature, data []byte, signer address.Address) (bool, error) {
	if sig == nil {
		return false, types.NewError(types.KindInvalidSignature, "missing signature")
	}
	if err := sig.Validate(); err != nil {
		return false, err
	}

	switch signer.Protocol() {
	case address.SECP256K1:
		if sig.Type != crypto.SigTypeSecp256k1 {
			return false, nil
		}
		publicKey, err := crypto.RecoverSecp256k1(crypto.Blake2b256(data), sig.Data)
		if err != nil {
			return false, err
		}
		recovered, err := address.NewSecp256k1Address(publicKey)
		if err != nil {
			return false, err
		}
		return recovered == signer, nil
	case address.BLS:
		if sig.Type != crypto.SigTypeBLS {
			return false, nil
		}
		pk, err := bls.NewPublicKeyFromBytes(signer.Payload())
		if err != nil {
			return false, err
		}
		blsSig, err := bls.NewSignatureFromBytes(sig.Data)
		if err != nil {
			return false, err
		}
		return bls.Verify(pk, data, blsSig)
	default:
		return false, types.NewError(types.KindUnsupportedAddressProtocol, "cannot verify for %s addresses", signer.Protocol())
	}
}

// AggregateSignatures combines BLS signatures over distinct messages
func AggregateSignatures(sigs []*crypto.Signature) (*crypto.Signature, error) {
	points := make([]*bls.Signature, 0, len(sigs))
	for i, sig := range sigs {
		if sig == nil || sig.Type != crypto.SigTypeBLS {
			return nil, types.NewError(types.KindUnsupportedAddressProtocol, "signature %d is not a bls signature", i)
		}
		point, err := bls.NewSignatureFromBytes(sig.Data)
		if err != nil {
			return nil, fmt.Errorf("signature %d: %w", i, err)
		}
		points = append(points, point)
	}
	agg, err := bls.Aggregate(points)
	if err != nil {
		return nil, err
	}
	return &crypto.Signature{Type: crypto.SigTypeBLS, Data: agg.Bytes()}, nil
}

// AggregateVerify checks one BLS signature against many canonical message
// bytes, each signed by the key in its from address. Every sender must be a
// BLS address. Repeated messages and an empty batch verify as false.
func AggregateVerify(agg *crypto.Signature, messages [][]byte) (bool, error) {
	if agg == nil || agg.Type != crypto.SigTypeBLS {
		return false, types.NewError(types.KindInvalidSignature, "aggregate must be a bls signature")
	}
	aggSig, err := bls.NewSignatureFromBytes(agg.Data)
	if err != nil {
		return false, err
	}

	pks := make([]*bls.PublicKey, 0, len(messages))
	for i, data := range messages {
		msg, err := message.ParseUnsigned(data)
		if err != nil {
			return false, fmt.Errorf("message %d: %w", i, err)
		}
		if msg.From.Protocol() != address.BLS {
			return false, types.NewError(types.KindUnsupportedAddressProtocol, "message %d is sent from a %s address", i, msg.From.Protocol())
		}
		pk, err := bls.NewPublicKeyFromBytes(msg.From.Payload())
		if err != nil {
			return false, fmt.Errorf("message %d: %w", i, err)
		}
		pks = append(pks, pk)
	}
	return bls.AggregateVerify(pks, messages, aggSig)
}

// SameSigner reports whether privateKey controls addr
func SameSigner(privateKey []byte, addr address.Address) (bool, error) {
	switch addr.Protocol() {
	case address.SECP256K1:
		publicKey, err := crypto.Secp256k1PublicKey(privateKey)
		if err != nil {
			return false, err
		}
		derived, err := address.NewSecp256k1Address(publicKey)
		if err != nil {
			return false, err
		}
		return derived == addr, nil
	case address.BLS:
		sk, err := bls.NewPrivateKeyFromBytes(privateKey)
		if err != nil {
			return false, err
		}
		return bytes.Equal(sk.PublicKey().Bytes(), addr.Payload()), nil
	default:
		return false, types.NewError(types.KindUnsupportedAddressProtocol, "%s addresses have no key", addr.Protocol())
	}
}
