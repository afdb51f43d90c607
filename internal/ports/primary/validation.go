package primary

import (
	"context"

	"github.com/example/courier/internal/models"
)

// ValidationService detects and corrects SSOT divergences across config sources.
type ValidationService interface {
	// Validate compares every tracked field for every agent across all
	// registered sources and returns the divergences, most severe first.
	// Validation never mutates a source.
	Validate(ctx context.Context) ([]*models.Conflict, error)

	// ApplyFix writes the chosen value into the named sources. Each source
	// is updated all-or-nothing; sources not named stay untouched.
	ApplyFix(ctx context.Context, req ApplyFixRequest) (*FixResult, error)
}

// ApplyFixRequest names one conflict resolution.
type ApplyFixRequest struct {
	EntityID    string
	FieldName   string
	ChosenValue string
	// Sources lists the source names (ConfigSource.Name) to update.
	Sources []string
}

// FixResult reports which sources were updated.
type FixResult struct {
	Updated []string
}
