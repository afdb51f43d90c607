package app

import (
	"context"

	"github.com/example/courier/internal/models"
	"github.com/example/courier/internal/ports/primary"
	"github.com/example/courier/internal/registry"
)

// RegistryServiceImpl exposes the coordinate registry through the primary port.
type RegistryServiceImpl struct {
	registry *registry.Registry
}

// NewRegistryService creates a new RegistryService.
func NewRegistryService(reg *registry.Registry) *RegistryServiceImpl {
	return &RegistryServiceImpl{registry: reg}
}

// ListAgents implements primary.RegistryService.
func (s *RegistryServiceImpl) ListAgents(ctx context.Context) ([]*models.AgentProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.registry.Snapshot(), nil
}

// GetAgent implements primary.RegistryService.
func (s *RegistryServiceImpl) GetAgent(ctx context.Context, agentID string) (*models.AgentProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.registry.Profile(agentID)
}

// Reload implements primary.RegistryService.
func (s *RegistryServiceImpl) Reload(ctx context.Context) (*primary.ReloadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := s.registry.Reload()
	if err != nil {
		return nil, err
	}
	return &primary.ReloadResult{AgentsLoaded: res.AgentsLoaded, Warnings: res.Warnings}, nil
}

// Ensure RegistryServiceImpl implements the interface.
var _ primary.RegistryService = (*RegistryServiceImpl)(nil)
