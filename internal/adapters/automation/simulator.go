// Package automation contains the InputSimulator backends: xdotool for
// desktop windows, tmux for terminal panes, and a recording backend for
// tests and dry runs.
package automation

import (
	"sync"
	"time"

	"github.com/example/courier/internal/config"
	"github.com/example/courier/internal/ports/secondary"
)

// hostInput serializes injection sequences process-wide. There is exactly
// one pointer and keyboard on the host; interleaving two sequences would
// scatter keystrokes across the wrong windows.
var hostInput sync.Mutex

// pause sleeps for a configured number of seconds. Pauses inside a sequence
// are load-bearing and always run to completion; cancellation is checked
// between recipients, never mid-sequence.
func pause(seconds float64) {
	time.Sleep(config.Duration(seconds))
}

// simFailed wraps a backend error in the typed error callers expect.
func simFailed(backend, step string, cause error) *secondary.SimulationFailedError {
	return &secondary.SimulationFailedError{Backend: backend, Step: step, Cause: cause}
}
