// Package models contains the domain types shared across courier services.
package models

// Role identifies an agent's function in the swarm. The set is closed:
// config sources naming any other role fail validation at load time.
type Role string

const (
	RoleCoordinator       Role = "COORDINATOR"
	RoleImplementer       Role = "IMPLEMENTER"
	RoleQualitySpecialist Role = "QUALITY_SPECIALIST"
	RoleSSOTManager       Role = "SSOT_MANAGER"
	RoleDocsWriter        Role = "DOCS_WRITER"
	RoleObserver          Role = "OBSERVER"
)

// ValidRole reports whether r is a member of the closed role set.
func ValidRole(r Role) bool {
	switch r {
	case RoleCoordinator, RoleImplementer, RoleQualitySpecialist,
		RoleSSOTManager, RoleDocsWriter, RoleObserver:
		return true
	}
	return false
}

// Point is a screen coordinate. Negative values are legal (multi-monitor
// setups place secondary displays at negative x), but both components must
// come from the config source as numbers; there is no (0,0) default.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// AgentProfile is one agent's entry in the coordinate roster.
// Profiles are produced only by registry loads; delivery code never mutates
// them in place.
type AgentProfile struct {
	ID           string
	Role         Role
	DisplayName  string
	ChatInput    Point
	Onboarding   Point
	// OnboardingExplicit records whether Onboarding came from the source or
	// was derived from ChatInput plus the configured vertical offset.
	OnboardingExplicit bool
	Active             bool
	Capabilities       []string
	// TmuxTarget, when set, routes injection through the tmux backend
	// (session:window.pane) instead of desktop coordinates.
	TmuxTarget string
}
