package automation

import (
	"context"
	"sync"

	"github.com/example/courier/internal/config"
	"github.com/example/courier/internal/models"
	"github.com/example/courier/internal/ports/secondary"
)

// RecordedSequence is one SendSequence call as seen by the recording backend.
type RecordedSequence struct {
	Target secondary.InjectionTarget
	Text   string
	Mode   models.SendMode
}

// RecordingSimulator logs requested sequences without touching the desktop.
// It backs dry runs and every unit test of the delivery path.
type RecordingSimulator struct {
	mu        sync.Mutex
	sequences []RecordedSequence

	// FailFor lists agent IDs whose injections should fail, for exercising
	// the fallback path.
	FailFor map[string]error
}

// NewRecordingSimulator creates an empty recording backend.
func NewRecordingSimulator() *RecordingSimulator {
	return &RecordingSimulator{FailFor: make(map[string]error)}
}

// Name implements secondary.InputSimulator.
func (s *RecordingSimulator) Name() string { return config.BackendRecording }

// Available implements secondary.InputSimulator.
func (s *RecordingSimulator) Available() error { return nil }

// SendSequence implements secondary.InputSimulator.
func (s *RecordingSimulator) SendSequence(ctx context.Context, target secondary.InjectionTarget, text string, mode models.SendMode) error {
	if err := ctx.Err(); err != nil {
		return simFailed(s.Name(), "start", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cause, ok := s.FailFor[target.AgentID]; ok {
		return simFailed(s.Name(), "type", cause)
	}

	s.sequences = append(s.sequences, RecordedSequence{Target: target, Text: text, Mode: mode})
	return nil
}

// Sequences returns a copy of everything recorded so far.
func (s *RecordingSimulator) Sequences() []RecordedSequence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedSequence(nil), s.sequences...)
}
