package transport

import (
	"bytes"
	"context"
	"sync"

	"github.com/pkg/errors"
)

// Step is one expected command and the response to replay for it
type Step struct {
	Command  []byte
	Response []byte
}

// ScriptedExchanger replays a fixed conversation. It fails on the first
// command that differs from the script.
type ScriptedExchanger struct {
	mu    sync.Mutex
	steps []Step
	next  int
}

// NewScriptedExchanger creates an exchanger that expects steps in order
func NewScriptedExchanger(steps ...Step) *ScriptedExchanger {
	return &ScriptedExchanger{steps: steps}
}

// Exchange implements Exchanger
func (s *ScriptedExchanger) Exchange(ctx context.Context, command []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next >= len(s.steps) {
		return nil, errors.Errorf("unexpected command %x after %d scripted steps", command, len(s.steps))
	}
	step := s.steps[s.next]
	if step.Command != nil && !bytes.Equal(step.Command, command) {
		return nil, errors.Errorf("step %d: expected command %x, got %x", s.next, step.Command, command)
	}
	s.next++
	return append([]byte(nil), step.Response...), nil
}

// Remaining reports how many scripted steps have not been played
func (s *ScriptedExchanger) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.steps) - s.next
}

// Close implements Exchanger
func (s *ScriptedExchanger) Close() error {
	return nil
}
