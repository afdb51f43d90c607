// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"fmt"

	"github.com/example/courier/internal/models"
)

// InjectionTarget tells a simulator where to deliver text. Desktop backends
// use Coords; the tmux backend uses TmuxTarget and ignores Coords.
type InjectionTarget struct {
	AgentID    string
	Coords     models.Point
	TmuxTarget string
}

// InputSimulator performs the physical sequence that lands text in a target
// input surface. There is exactly one pointer and keyboard per host, so
// implementations must serialize SendSequence process-wide.
type InputSimulator interface {
	// SendSequence runs the full injection sequence for the given mode:
	// focus, clear, type, submit, with mode-appropriate pauses between
	// steps. Any backend failure is returned as *SimulationFailedError;
	// callers never see raw automation errors.
	SendSequence(ctx context.Context, target InjectionTarget, text string, mode models.SendMode) error

	// Available reports whether the backend can run on this host (binary on
	// PATH, server reachable). Used by doctor checks and dry runs.
	Available() error

	// Name identifies the backend for reports and logs.
	Name() string
}

// SimulationFailedError wraps any automation-layer failure. The original
// cause is preserved for logs but the delivery path treats all of them the
// same: degrade to the fallback inbox.
type SimulationFailedError struct {
	Backend string
	Step    string
	Cause   error
}

func (e *SimulationFailedError) Error() string {
	return fmt.Sprintf("input simulation failed (%s, step %s): %v", e.Backend, e.Step, e.Cause)
}

func (e *SimulationFailedError) Unwrap() error {
	return e.Cause
}
