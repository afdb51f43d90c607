package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/example/courier/internal/models"
	"github.com/example/courier/internal/ports/primary"
	"github.com/example/courier/internal/ports/secondary"
)

// trackedFields is the comparison order; it also makes validation output
// deterministic so the same sources always yield the same conflict list.
var trackedFields = []string{
	models.FieldRole,
	models.FieldChatCoords,
	models.FieldActive,
	models.FieldCapabilities,
	models.FieldDisplayName,
}

// ValidationServiceImpl implements the ValidationService interface: it
// compares every tracked field across all registered sources and applies
// approved corrections. Validation is read-only; fixes happen only when a
// caller names the sources to update.
type ValidationServiceImpl struct {
	sources []secondary.ConfigSource

	// sourceLocks serializes writes per source so two concurrent fixes
	// cannot corrupt one file. Fixes to disjoint sources may run in parallel.
	mu          sync.Mutex
	sourceLocks map[string]*sync.Mutex
}

// NewValidationService creates a validator over the given sources.
func NewValidationService(sources []secondary.ConfigSource) *ValidationServiceImpl {
	return &ValidationServiceImpl{
		sources:     sources,
		sourceLocks: make(map[string]*sync.Mutex),
	}
}

// Validate implements primary.ValidationService.
func (s *ValidationServiceImpl) Validate(ctx context.Context) ([]*models.Conflict, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entityIDs, err := s.allEntityIDs()
	if err != nil {
		return nil, err
	}

	var conflicts []*models.Conflict
	for _, entityID := range entityIDs {
		for _, field := range trackedFields {
			values := make(map[string]string)
			distinct := make(map[string]struct{})
			for _, src := range s.sources {
				v, ok, err := src.Field(entityID, field)
				if err != nil {
					return nil, fmt.Errorf("source %s: %w", src.Name(), err)
				}
				if !ok {
					// A source that does not mention the field holds no
					// opinion; absence is not divergence.
					continue
				}
				values[src.Name()] = v
				distinct[v] = struct{}{}
			}
			if len(distinct) > 1 {
				conflicts = append(conflicts, &models.Conflict{
					EntityID:     entityID,
					FieldName:    field,
					SourceValues: values,
					Severity:     fieldSeverity(field),
				})
			}
		}
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		if conflicts[i].Severity != conflicts[j].Severity {
			return models.SeverityRank[conflicts[i].Severity] < models.SeverityRank[conflicts[j].Severity]
		}
		return conflicts[i].EntityID < conflicts[j].EntityID
	})
	return conflicts, nil
}

// ApplyFix implements primary.ValidationService. Each named source is
// updated all-or-nothing; failures on one source do not roll back another.
func (s *ValidationServiceImpl) ApplyFix(ctx context.Context, req primary.ApplyFixRequest) (*primary.FixResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.EntityID == "" || req.FieldName == "" {
		return nil, fmt.Errorf("fix request must name an entity and a field")
	}
	if len(req.Sources) == 0 {
		return nil, fmt.Errorf("fix request must name at least one source to update")
	}

	result := &primary.FixResult{}
	var errs []error
	for _, name := range req.Sources {
		src := s.findSource(name)
		if src == nil {
			errs = append(errs, &secondary.SourceWriteError{Source: name, Cause: fmt.Errorf("unknown source")})
			continue
		}
		writable, ok := src.(secondary.WritableSource)
		if !ok {
			errs = append(errs, &secondary.SourceWriteError{Source: name, Cause: fmt.Errorf("source is read-only")})
			continue
		}

		lock := s.lockFor(name)
		lock.Lock()
		err := writable.SetField(req.EntityID, req.FieldName, req.ChosenValue)
		lock.Unlock()

		if err != nil {
			errs = append(errs, &secondary.SourceWriteError{Source: name, Cause: err})
			continue
		}
		result.Updated = append(result.Updated, name)
	}

	return result, errors.Join(errs...)
}

func (s *ValidationServiceImpl) allEntityIDs() ([]string, error) {
	seen := make(map[string]struct{})
	for _, src := range s.sources {
		ids, err := src.EntityIDs()
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Name(), err)
		}
		for _, id := range ids {
			seen[id] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (s *ValidationServiceImpl) findSource(name string) secondary.ConfigSource {
	for _, src := range s.sources {
		if src.Name() == name {
			return src
		}
	}
	return nil
}

func (s *ValidationServiceImpl) lockFor(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.sourceLocks[name]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.sourceLocks[name] = l
	return l
}

func fieldSeverity(field string) models.Severity {
	if sev, ok := models.FieldSeverity[field]; ok {
		return sev
	}
	return models.SeverityLow
}

// Ensure ValidationServiceImpl implements the interface.
var _ primary.ValidationService = (*ValidationServiceImpl)(nil)
