package transport

import (
	"context"
	"encoding/binary"
	"io"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Layr-Labs/filecoin-signer-go/pkg/logger"
)

// Exchanger sends one command APDU to a device and returns its response,
// including the trailing two byte status word.
type Exchanger interface {
	Exchange(ctx context.Context, command []byte) ([]byte, error)
	Close() error
}

// RetryConfig configures retry behavior
type RetryConfig struct {
	MaxAttempts     int
	InitialBackoff  time.Duration
	MaxBackoff      time.Duration
	BackoffMultiple float64
}

// DefaultRetryConfig provides default retry settings
var DefaultRetryConfig = RetryConfig{
	MaxAttempts:     5,
	InitialBackoff:  100 * time.Millisecond,
	MaxBackoff:      5 * time.Second,
	BackoffMultiple: 2.0,
}

// statusWordLength is the size of the status word that ends every response
const statusWordLength = 2

// maxFrameLength bounds the length prefix read from the socket
const maxFrameLength = 64 * 1024

// TCPExchanger speaks the length prefixed APDU framing of device emulators:
// a 4 byte big-endian length followed by the command, answered by a 4 byte
// length, the response data and the status word.
type TCPExchanger struct {
	addr        string
	retryConfig RetryConfig
	logger      *zap.Logger

	mu   sync.Mutex
	conn net.Conn
}

// NewTCPExchanger creates an exchanger for addr. The connection is opened on first use.
func NewTCPExchanger(addr string, retryConfig RetryConfig, l *zap.Logger) *TCPExchanger {
	if retryConfig.MaxAttempts <= 0 {
		retryConfig = DefaultRetryConfig
	}
	return &TCPExchanger{
		addr:        addr,
		retryConfig: retryConfig,
		logger:      logger.OrNop(l),
	}
}

// Exchange implements Exchanger
func (t *TCPExchanger) Exchange(ctx context.Context, command []byte) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	conn, err := t.connect(ctx)
	if err != nil {
		return nil, err
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Time{})
	}

	frame := make([]byte, 4+len(command))
	binary.BigEndian.PutUint32(frame, uint32(len(command)))
	copy(frame[4:], command)
	if _, err := conn.Write(frame); err != nil {
		t.reset()
		return nil, errors.Wrapf(err, "failed to write apdu to %s", t.addr)
	}

	var header [4]byte
	if _, err := io.ReadFull(conn, header[:]); err != nil {
		t.reset()
		return nil, errors.Wrapf(err, "failed to read response length from %s", t.addr)
	}
	length := binary.BigEndian.Uint32(header[:])
	if length > maxFrameLength {
		t.reset()
		return nil, errors.Errorf("response length %d from %s exceeds %d", length, t.addr, maxFrameLength)
	}

	response := make([]byte, int(length)+statusWordLength)
	if _, err := io.ReadFull(conn, response); err != nil {
		t.reset()
		return nil, errors.Wrapf(err, "failed to read response from %s", t.addr)
	}

	t.logger.Sugar().Debugw("APDU exchanged",
		"commandLength", len(command),
		"responseLength", len(response),
	)
	return response, nil
}

// connect dials with exponential backoff. Callers hold t.mu.
func (t *TCPExchanger) connect(ctx context.Context) (net.Conn, error) {
	if t.conn != nil {
		return t.conn, nil
	}

	var (
		dialer  net.Dialer
		lastErr error
	)
	backoff := t.retryConfig.InitialBackoff
	for attempt := 0; attempt < t.retryConfig.MaxAttempts; attempt++ {
		conn, err := dialer.DialContext(ctx, "tcp", t.addr)
		if err == nil {
			t.conn = conn
			t.logger.Sugar().Debugw("Connected to device", "addr", t.addr, "attempt", attempt+1)
			return conn, nil
		}
		lastErr = err
		t.logger.Sugar().Debugw("Failed to connect to device",
			"addr", t.addr,
			"attempt", attempt+1,
			"error", err,
		)

		if attempt < t.retryConfig.MaxAttempts-1 {
			select {
			case <-ctx.Done():
				return nil, errors.Wrap(ctx.Err(), "gave up connecting to device")
			case <-time.After(backoff):
			}
			backoff = time.Duration(float64(backoff) * t.retryConfig.BackoffMultiple)
			if backoff > t.retryConfig.MaxBackoff {
				backoff = t.retryConfig.MaxBackoff
			}
		}
	}

	return nil, errors.Wrapf(lastErr, "failed to connect to %s after %d attempts", t.addr, t.retryConfig.MaxAttempts)
}

func (t *TCPExchanger) reset() {
	if t.conn != nil {
		_ = t.conn.Close()
		t.conn = nil
	}
}

// Close releases the connection, if one is open
func (t *TCPExchanger) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}
