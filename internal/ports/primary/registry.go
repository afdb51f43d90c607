package primary

import (
	"context"

	"github.com/example/courier/internal/models"
)

// RegistryService exposes the coordinate roster to callers.
type RegistryService interface {
	// ListAgents returns all loaded profiles, active and inactive.
	ListAgents(ctx context.Context) ([]*models.AgentProfile, error)

	// GetAgent returns one profile by ID.
	GetAgent(ctx context.Context, agentID string) (*models.AgentProfile, error)

	// Reload re-reads the roster source. On failure the previous snapshot
	// stays in effect.
	Reload(ctx context.Context) (*ReloadResult, error)
}

// ReloadResult summarizes a roster load.
type ReloadResult struct {
	AgentsLoaded int
	Warnings     []string
}
