// Package registry holds the authoritative in-memory view of the agent
// coordinate roster. All readers see one consistent snapshot; reloads swap
// the snapshot atomically or not at all.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/example/courier/internal/models"
)

// maxCoordinate bounds sane screen coordinates. Multi-monitor layouts put
// secondary displays at negative x offsets, so x is checked by magnitude.
// Negative y is rejected: no supported layout stacks displays above the
// primary, and a negative y is overwhelmingly a config typo.
const maxCoordinate = 32768

// RosterSource loads agent profiles from the canonical coordinate config.
// Parse-level failures must surface as *models.MalformedConfigError.
type RosterSource interface {
	// Name identifies the source (usually the roster file path).
	Name() string

	// LoadProfiles parses the source into profiles. Profiles without an
	// explicit onboarding coordinate have OnboardingExplicit=false; the
	// registry derives the coordinate. Warnings cover non-fatal findings
	// such as inactive agents missing coordinates.
	LoadProfiles() (profiles []*models.AgentProfile, warnings []string, err error)
}

// DeriveOnboarding computes the onboarding input location from the chat
// input location: same column, offset rows below. Pure, so the derivation
// rule is testable with no GUI anywhere near it.
func DeriveOnboarding(chat models.Point, offset int) models.Point {
	return models.Point{X: chat.X, Y: chat.Y + offset}
}

// Registry is the single owner of the coordinate snapshot.
type Registry struct {
	mu       sync.RWMutex
	source   RosterSource
	offset   int
	profiles map[string]*models.AgentProfile
	warnings []string
	loaded   bool
}

// New creates a registry reading from source, deriving onboarding
// coordinates with the given vertical offset.
func New(source RosterSource, offset int) *Registry {
	return &Registry{
		source:   source,
		offset:   offset,
		profiles: make(map[string]*models.AgentProfile),
	}
}

// LoadResult summarizes one successful load.
type LoadResult struct {
	AgentsLoaded int
	Warnings     []string
}

// Load parses the source and swaps in the new snapshot. On any error the
// previous snapshot is retained untouched.
func (r *Registry) Load() (*LoadResult, error) {
	profiles, warnings, err := r.source.LoadProfiles()
	if err != nil {
		return nil, err
	}

	next := make(map[string]*models.AgentProfile, len(profiles))
	for _, p := range profiles {
		if _, dup := next[p.ID]; dup {
			return nil, &models.MalformedConfigError{
				Source: r.source.Name(),
				Reason: fmt.Sprintf("duplicate agent ID %q", p.ID),
			}
		}
		cp := *p
		if !cp.OnboardingExplicit {
			cp.Onboarding = DeriveOnboarding(cp.ChatInput, r.offset)
		}
		if cp.Active {
			if err := checkBounds(cp.ID, cp.ChatInput); err != nil {
				return nil, &models.MalformedConfigError{Source: r.source.Name(), Reason: err.Error()}
			}
			if err := checkBounds(cp.ID, cp.Onboarding); err != nil {
				return nil, &models.MalformedConfigError{Source: r.source.Name(), Reason: err.Error()}
			}
		}
		next[cp.ID] = &cp
	}

	r.mu.Lock()
	r.profiles = next
	r.warnings = warnings
	r.loaded = true
	r.mu.Unlock()

	return &LoadResult{AgentsLoaded: len(next), Warnings: warnings}, nil
}

// Reload re-reads the last-used source. Safe to call while deliveries are in
// flight: readers hold the read lock and an in-progress broadcast works from
// its own snapshot.
func (r *Registry) Reload() (*LoadResult, error) {
	return r.Load()
}

func checkBounds(agentID string, p models.Point) error {
	if p.X < -maxCoordinate || p.X > maxCoordinate || p.Y < 0 || p.Y > maxCoordinate {
		return fmt.Errorf("agent %s: coordinate (%d,%d) outside screen bounds", agentID, p.X, p.Y)
	}
	return nil
}

// ChatCoordinates returns the chat input location for an active agent.
func (r *Registry) ChatCoordinates(agentID string) (models.Point, error) {
	p, err := r.activeProfile(agentID)
	if err != nil {
		return models.Point{}, err
	}
	return p.ChatInput, nil
}

// OnboardingCoordinates returns the onboarding input location for an active
// agent, explicit or derived.
func (r *Registry) OnboardingCoordinates(agentID string) (models.Point, error) {
	p, err := r.activeProfile(agentID)
	if err != nil {
		return models.Point{}, err
	}
	return p.Onboarding, nil
}

func (r *Registry) activeProfile(agentID string) (*models.AgentProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[agentID]
	if !ok {
		return nil, &models.UnknownAgentError{AgentID: agentID}
	}
	if !p.Active {
		return nil, &models.UnknownAgentError{AgentID: agentID, Reason: "agent is inactive"}
	}
	return p, nil
}

// Profile returns a copy of one profile, active or not.
func (r *Registry) Profile(agentID string) (*models.AgentProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[agentID]
	if !ok {
		return nil, &models.UnknownAgentError{AgentID: agentID}
	}
	cp := *p
	return &cp, nil
}

// Snapshot returns copies of all profiles, sorted by ID. The slice is a
// consistent view taken under one read lock.
func (r *Registry) Snapshot() []*models.AgentProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.AgentProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ActiveSnapshot returns copies of the active profiles, sorted by ID. A
// broadcast resolves its recipient list from one call and never re-evaluates
// mid-flight.
func (r *Registry) ActiveSnapshot() []*models.AgentProfile {
	all := r.Snapshot()
	out := all[:0]
	for _, p := range all {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

// Loaded reports whether an initial load has succeeded.
func (r *Registry) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// Warnings returns the warnings from the last successful load.
func (r *Registry) Warnings() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.warnings...)
}
