// Package agent resolves the identity of the agent running the CLI.
package agent

import (
	"fmt"
	"os"
	"regexp"

	"github.com/example/courier/internal/config"
)

// CoordinatorID is the sender ID used when no agent workspace config is
// present. The coordinator is not an addressable roster agent.
const CoordinatorID = "COORDINATOR"

var agentIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Identity is the resolved local sender identity.
type Identity struct {
	ID string
	// Workspace is true when the ID came from a .courier/config.json in the
	// working directory rather than the coordinator default.
	Workspace bool
}

// Current detects the local identity from the working directory context.
// An agent workspace carries .courier/config.json with agent_id set;
// anything else is the coordinator.
func Current() (*Identity, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.LoadConfig(cwd)
	if err == nil && cfg.AgentID != "" {
		return &Identity{ID: cfg.AgentID, Workspace: true}, nil
	}

	return &Identity{ID: CoordinatorID}, nil
}

// ValidateID checks that an agent ID is well formed (letters, digits,
// hyphens and underscores, starting with a letter).
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("agent ID must not be empty")
	}
	if !agentIDPattern.MatchString(id) {
		return fmt.Errorf("invalid agent ID %q (expected letters, digits, '-' or '_')", id)
	}
	return nil
}
