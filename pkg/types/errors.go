package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the signer can return
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindMalformedInput
	KindMalformedAddress
	KindMalformedMessage
	KindUnrecognizedMessageShape
	KindChecksumMismatch
	KindNetworkMismatch
	KindInvalidPath
	KindInvalidKeyLength
	KindUnsupportedAddressProtocol
	KindInvalidSignature
	KindInvalidBigInteger
	KindCryptoFailure
	KindInvalidDerivation
)

var kindNames = map[ErrorKind]string{
	KindUnknown:                    "unknown",
	KindMalformedInput:             "malformed input",
	KindMalformedAddress:           "malformed address",
	KindMalformedMessage:           "malformed message",
	KindUnrecognizedMessageShape:   "unrecognized message shape",
	KindChecksumMismatch:           "checksum mismatch",
	KindNetworkMismatch:            "network mismatch",
	KindInvalidPath:                "invalid derivation path",
	KindInvalidKeyLength:           "invalid key length",
	KindUnsupportedAddressProtocol: "unsupported address protocol",
	KindInvalidSignature:           "invalid signature",
	KindInvalidBigInteger:          "invalid big integer",
	KindCryptoFailure:              "crypto failure",
	KindInvalidDerivation:          "invalid derivation",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// matches reports whether an error of kind k satisfies target.
// A malformed address is also malformed input.
func (k ErrorKind) matches(target ErrorKind) bool {
	if k == target {
		return true
	}
	return k == KindMalformedAddress && target == KindMalformedInput
}

// SignerError is the single error type returned by the codec, derivation and signing packages
type SignerError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *SignerError) Error() string {
	msg := e.Kind.String()
	if e.Msg != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *SignerError) Unwrap() error {
	return e.Err
}

// Is matches on kind so callers can compare against the sentinels below
func (e *SignerError) Is(target error) bool {
	var t *SignerError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind.matches(t.Kind)
}

var (
	ErrMalformedInput             = &SignerError{Kind: KindMalformedInput}
	ErrMalformedAddress           = &SignerError{Kind: KindMalformedAddress}
	ErrMalformedMessage           = &SignerError{Kind: KindMalformedMessage}
	ErrUnrecognizedMessageShape   = &SignerError{Kind: KindUnrecognizedMessageShape}
	ErrChecksumMismatch           = &SignerError{Kind: KindChecksumMismatch}
	ErrNetworkMismatch            = &SignerError{Kind: KindNetworkMismatch}
	ErrInvalidPath                = &SignerError{Kind: KindInvalidPath}
	ErrInvalidKeyLength           = &SignerError{Kind: KindInvalidKeyLength}
	ErrUnsupportedAddressProtocol = &SignerError{Kind: KindUnsupportedAddressProtocol}
	ErrInvalidSignature           = &SignerError{Kind: KindInvalidSignature}
	ErrInvalidBigInteger          = &SignerError{Kind: KindInvalidBigInteger}
	ErrCryptoFailure              = &SignerError{Kind: KindCryptoFailure}
	ErrInvalidDerivation          = &SignerError{Kind: KindInvalidDerivation}
)

// NewError creates a SignerError of the given kind
func NewError(kind ErrorKind, format string, args ...interface{}) *SignerError {
	return &SignerError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WrapError creates a SignerError of the given kind around an underlying error.
// An err that already carries a kind keeps it.
func WrapError(kind ErrorKind, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	var se *SignerError
	if errors.As(err, &se) {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
	}
	return &SignerError{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind carried by err, or KindUnknown
func KindOf(err error) ErrorKind {
	var se *SignerError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}
