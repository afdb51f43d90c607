// Package config loads and saves the courier process configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Simulator backend names accepted in config.
const (
	BackendXdotool   = "xdotool"
	BackendTmux      = "tmux"
	BackendRecording = "recording"
)

// DefaultOnboardingOffset is the vertical distance in pixels between an
// agent's chat input and its onboarding input when the roster does not give
// an explicit onboarding coordinate.
const DefaultOnboardingOffset = 19

// TimingProfile holds the pause durations (seconds) used inside an injection
// sequence. The pauses are load-bearing: the target window needs them to
// register focus and finish rendering before the next event arrives.
type TimingProfile struct {
	ClickPause         float64 `json:"click_pause"`
	ClearPause         float64 `json:"clear_pause"`
	PostTypePause      float64 `json:"post_type_pause"`
	OnboardingPrime    float64 `json:"onboarding_prime_pause"`
	OnboardingSettle   float64 `json:"onboarding_settle_pause"`
	OnboardingPostType float64 `json:"onboarding_post_type_pause"`
}

// Duration converts a seconds value to time.Duration.
func Duration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// DefaultTiming returns the observed working defaults.
func DefaultTiming() TimingProfile {
	return TimingProfile{
		ClickPause:         1.0,
		ClearPause:         0.5,
		PostTypePause:      1.0,
		OnboardingPrime:    1.0,
		OnboardingSettle:   3.0,
		OnboardingPostType: 2.0,
	}
}

// Config is the flat courier configuration stored at .courier/config.json.
type Config struct {
	Version string `json:"version"`

	// AgentID identifies the local agent for sender tagging. Empty outside
	// an agent workspace (a coordinator context).
	AgentID string `json:"agent_id,omitempty"`

	// RosterPath is the canonical coordinate config source.
	RosterPath string `json:"roster_path"`

	// SSOTSources lists the additional config sources the validator compares
	// against the roster. Paths ending in .json load as unified configs,
	// paths ending in .yaml/.yml as capability matrices.
	SSOTSources []string `json:"ssot_sources,omitempty"`

	// InboxRoot is the directory holding per-agent fallback inboxes.
	InboxRoot string `json:"inbox_root"`

	// Backend selects the input simulator: "xdotool", "tmux" or "recording".
	Backend string `json:"backend,omitempty"`

	// OnboardingOffset is the derived onboarding coordinate offset in pixels.
	// Zero means DefaultOnboardingOffset.
	OnboardingOffset int `json:"onboarding_offset,omitempty"`

	Timing TimingProfile `json:"timing"`
}

// EffectiveOffset returns the onboarding offset to use for derivation.
func (c *Config) EffectiveOffset() int {
	if c.OnboardingOffset == 0 {
		return DefaultOnboardingOffset
	}
	return c.OnboardingOffset
}

// EffectiveBackend returns the simulator backend name, defaulting to xdotool.
func (c *Config) EffectiveBackend() string {
	if c.Backend == "" {
		return BackendXdotool
	}
	return c.Backend
}

// LoadConfig reads .courier/config.json from the specified directory.
// Resolution order: dir, then the user home directory. Returns an error if
// neither location has a config; callers decide whether that is fatal.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".courier", "config.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		path = filepath.Join(home, ".courier", "config.json")
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	applyTimingDefaults(&cfg.Timing)

	return &cfg, nil
}

// SaveConfig writes config.json under dir/.courier.
func SaveConfig(dir string, cfg *Config) error {
	courierDir := filepath.Join(dir, ".courier")
	if err := os.MkdirAll(courierDir, 0755); err != nil {
		return fmt.Errorf("failed to create .courier dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(courierDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultInboxRoot returns ~/.courier/inbox.
func DefaultInboxRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".courier", "inbox"), nil
}

// applyTimingDefaults fills zero pauses with the defaults so a partial
// timing block in config does not produce zero-length pauses.
func applyTimingDefaults(t *TimingProfile) {
	def := DefaultTiming()
	if t.ClickPause == 0 {
		t.ClickPause = def.ClickPause
	}
	if t.ClearPause == 0 {
		t.ClearPause = def.ClearPause
	}
	if t.PostTypePause == 0 {
		t.PostTypePause = def.PostTypePause
	}
	if t.OnboardingPrime == 0 {
		t.OnboardingPrime = def.OnboardingPrime
	}
	if t.OnboardingSettle == 0 {
		t.OnboardingSettle = def.OnboardingSettle
	}
	if t.OnboardingPostType == 0 {
		t.OnboardingPostType = def.OnboardingPostType
	}
}
