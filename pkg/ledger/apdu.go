package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

const (
	CLA = 0x06

	InsGetVersion       = 0x00
	InsGetAddrSecp256k1 = 0x01
	InsSignSecp256k1    = 0x02
)

// Payload types carried in P1 of sign packets
const (
	PayloadInit = 0x00
	PayloadAdd  = 0x01
	PayloadLast = 0x02
)

// MessageChunkSize is the largest message slice sent in one sign packet
const MessageChunkSize = 250

const maxPackets = 255

// StatusWord is the two byte code that ends every device response
type StatusWord uint16

const (
	StatusNoError                StatusWord = 0x9000
	StatusExecutionError         StatusWord = 0x6400
	StatusWrongLength            StatusWord = 0x6700
	StatusEmptyBuffer            StatusWord = 0x6982
	StatusOutputBufferTooSmall   StatusWord = 0x6983
	StatusDataInvalid            StatusWord = 0x6984
	StatusConditionsNotSatisfied StatusWord = 0x6985
	StatusCommandNotAllowed      StatusWord = 0x6986
	StatusBadKeyHandle           StatusWord = 0x6A80
	StatusInvalidP1P2            StatusWord = 0x6B00
	StatusInsNotSupported        StatusWord = 0x6D00
	StatusClaNotSupported        StatusWord = 0x6E00
	StatusUnknown                StatusWord = 0x6F00
	StatusSignVerifyError        StatusWord = 0x6F01
)

var statusNames = map[StatusWord]string{
	StatusNoError:                "no error",
	StatusExecutionError:         "execution error",
	StatusWrongLength:            "wrong length",
	StatusEmptyBuffer:            "empty buffer",
	StatusOutputBufferTooSmall:   "output buffer too small",
	StatusDataInvalid:            "data is invalid",
	StatusConditionsNotSatisfied: "conditions not satisfied",
	StatusCommandNotAllowed:      "command not allowed",
	StatusBadKeyHandle:           "bad key handle",
	StatusInvalidP1P2:            "invalid P1/P2",
	StatusInsNotSupported:        "instruction not supported",
	StatusClaNotSupported:        "CLA not supported",
	StatusUnknown:                "unknown",
	StatusSignVerifyError:        "sign/verify error",
}

func (s StatusWord) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unrecognized status"
}

// StatusError is returned when the device answers with anything but StatusNoError
type StatusError struct {
	Status StatusWord
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("device returned %s (0x%04X)", e.Status, uint16(e.Status))
}

var (
	ErrEmptyMessage     = errors.New("message to sign is empty")
	ErrMessageTooLarge  = errors.New("message to sign needs more than 255 packets")
	ErrShortResponse    = errors.New("device response is shorter than its status word")
	ErrInvalidVersion   = errors.New("device returned an invalid version")
	ErrInvalidPublicKey = errors.New("device returned an invalid public key")
	ErrInvalidAddress   = errors.New("device returned an invalid address")
	ErrNoSignature      = errors.New("device returned no signature")
	ErrInvalidSignature = errors.New("device returned an invalid signature")
)

// Command is one APDU sent to the device
type Command struct {
	CLA  byte
	INS  byte
	P1   byte
	P2   byte
	Data []byte
}

// Bytes serializes the command as CLA INS P1 P2 Lc data
func (c Command) Bytes() ([]byte, error) {
	if len(c.Data) > 0xff {
		return nil, errors.Errorf("apdu data of %d bytes does not fit a short length", len(c.Data))
	}
	out := make([]byte, 0, 5+len(c.Data))
	out = append(out, c.CLA, c.INS, c.P1, c.P2, byte(len(c.Data)))
	return append(out, c.Data...), nil
}

// Answer is a device response split into data and status word
type Answer struct {
	Data   []byte
	Status StatusWord
}

// ParseAnswer splits a raw response
func ParseAnswer(raw []byte) (*Answer, error) {
	if len(raw) < 2 {
		return nil, ErrShortResponse
	}
	n := len(raw) - 2
	return &Answer{
		Data:   raw[:n],
		Status: StatusWord(binary.BigEndian.Uint16(raw[n:])),
	}, nil
}

// Err returns a *StatusError unless the status is StatusNoError
func (a *Answer) Err() error {
	if a.Status == StatusNoError {
		return nil
	}
	return &StatusError{Status: a.Status}
}

// chunkMessage splits msg into sign packets after the path packet
func chunkMessage(msg []byte) ([][]byte, error) {
	if len(msg) == 0 {
		return nil, ErrEmptyMessage
	}
	var chunks [][]byte
	for start := 0; start < len(msg); start += MessageChunkSize {
		end := start + MessageChunkSize
		if end > len(msg) {
			end = len(msg)
		}
		chunks = append(chunks, msg[start:end])
	}
	if len(chunks) > maxPackets {
		return nil, ErrMessageTooLarge
	}
	return chunks, nil
}
