package automation

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/GianlucaP106/gotmux/gotmux"

	"github.com/example/courier/internal/config"
	"github.com/example/courier/internal/models"
	"github.com/example/courier/internal/ports/secondary"
)

// TmuxSimulator injects text into agents bound to tmux panes instead of
// desktop windows. The target is the agent's tmux_target from the roster
// (session:window.pane); screen coordinates are ignored.
type TmuxSimulator struct {
	timing config.TimingProfile
}

// NewTmuxSimulator creates the tmux backend with the given timing profile.
func NewTmuxSimulator(timing config.TimingProfile) *TmuxSimulator {
	return &TmuxSimulator{timing: timing}
}

// Name implements secondary.InputSimulator.
func (s *TmuxSimulator) Name() string { return config.BackendTmux }

// Available checks that a tmux server is reachable.
func (s *TmuxSimulator) Available() error {
	tmux, err := gotmux.DefaultTmux()
	if err != nil {
		return fmt.Errorf("tmux client unavailable: %w", err)
	}
	if _, err := tmux.ListSessions(); err != nil {
		return fmt.Errorf("no tmux server reachable: %w", err)
	}
	return nil
}

// SendSequence implements secondary.InputSimulator. Clearing the input line
// and submitting are keystrokes like any others, so the whole sequence is
// send-keys invocations with the same pauses the desktop backend uses.
func (s *TmuxSimulator) SendSequence(ctx context.Context, target secondary.InjectionTarget, text string, mode models.SendMode) error {
	if err := ctx.Err(); err != nil {
		return simFailed(s.Name(), "start", err)
	}
	if target.TmuxTarget == "" {
		return simFailed(s.Name(), "resolve", fmt.Errorf("agent %s has no tmux_target", target.AgentID))
	}

	hostInput.Lock()
	defer hostInput.Unlock()

	if mode == models.SendModeOnboarding {
		// Prime a fresh prompt before the first-contact message.
		if err := s.sendKeys("prime", target.TmuxTarget, "C-c"); err != nil {
			return err
		}
		pause(s.timing.OnboardingPrime)
	}

	if err := s.sendKeys("focus", target.TmuxTarget, "C-u"); err != nil {
		return err
	}
	if mode == models.SendModeOnboarding {
		pause(s.timing.OnboardingSettle)
	} else {
		pause(s.timing.ClickPause)
	}

	if err := s.run("type", "send-keys", "-t", target.TmuxTarget, "-l", text); err != nil {
		return err
	}
	if mode == models.SendModeOnboarding {
		pause(s.timing.OnboardingPostType)
	} else {
		pause(s.timing.PostTypePause)
	}

	return s.sendKeys("submit", target.TmuxTarget, "Enter")
}

func (s *TmuxSimulator) sendKeys(step, target, key string) error {
	return s.run(step, "send-keys", "-t", target, key)
}

func (s *TmuxSimulator) run(step string, args ...string) error {
	cmd := exec.Command("tmux", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return simFailed(s.Name(), step, fmt.Errorf("tmux %v: %w (%s)", args, err, out))
	}
	return nil
}
