package agent

import (
	"testing"

	"github.com/example/courier/internal/config"
)

func TestValidateID(t *testing.T) {
	valid := []string{"Agent-1", "Agent_6", "a", "COORDINATOR", "qa2"}
	for _, id := range valid {
		if err := ValidateID(id); err != nil {
			t.Errorf("expected %q to be valid: %v", id, err)
		}
	}

	invalid := []string{"", "1agent", "-agent", "agent 1", "agent/1", "*"}
	for _, id := range invalid {
		if err := ValidateID(id); err == nil {
			t.Errorf("expected %q to be rejected", id)
		}
	}
}

func TestCurrentInAgentWorkspace(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{AgentID: "Agent-3", RosterPath: "roster.yaml", InboxRoot: "inbox"}
	if err := config.SaveConfig(dir, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	t.Setenv("HOME", t.TempDir())
	t.Chdir(dir)

	ident, err := Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if ident.ID != "Agent-3" || !ident.Workspace {
		t.Errorf("expected workspace identity Agent-3, got %+v", ident)
	}
}

func TestCurrentDefaultsToCoordinator(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	ident, err := Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if ident.ID != CoordinatorID || ident.Workspace {
		t.Errorf("expected coordinator identity, got %+v", ident)
	}
}
