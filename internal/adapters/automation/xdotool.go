package automation

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/example/courier/internal/config"
	"github.com/example/courier/internal/models"
	"github.com/example/courier/internal/ports/secondary"
)

// defaultPrimeKey opens a new conversation in the target application before
// an onboarding send.
const defaultPrimeKey = "ctrl+n"

// XdotoolSimulator drives the real desktop through xdotool. The sequence for
// a normal send: move+click the input field, clear it, type the text, submit.
// Onboarding sends prime a new conversation first and wait longer for the
// slower initial render.
type XdotoolSimulator struct {
	timing   config.TimingProfile
	primeKey string
}

// NewXdotoolSimulator creates the desktop backend with the given timing profile.
func NewXdotoolSimulator(timing config.TimingProfile) *XdotoolSimulator {
	return &XdotoolSimulator{timing: timing, primeKey: defaultPrimeKey}
}

// Name implements secondary.InputSimulator.
func (s *XdotoolSimulator) Name() string { return config.BackendXdotool }

// Available checks that xdotool is on PATH.
func (s *XdotoolSimulator) Available() error {
	if _, err := exec.LookPath("xdotool"); err != nil {
		return fmt.Errorf("xdotool not found on PATH: %w", err)
	}
	return nil
}

// SendSequence implements secondary.InputSimulator.
func (s *XdotoolSimulator) SendSequence(ctx context.Context, target secondary.InjectionTarget, text string, mode models.SendMode) error {
	if err := ctx.Err(); err != nil {
		return simFailed(s.Name(), "start", err)
	}

	hostInput.Lock()
	defer hostInput.Unlock()

	if mode == models.SendModeOnboarding {
		if err := s.run("prime", "key", s.primeKey); err != nil {
			return err
		}
		pause(s.timing.OnboardingPrime)
	}

	x := strconv.Itoa(target.Coords.X)
	y := strconv.Itoa(target.Coords.Y)
	if err := s.run("click", "mousemove", "--sync", x, y, "click", "1"); err != nil {
		return err
	}
	if mode == models.SendModeOnboarding {
		pause(s.timing.OnboardingSettle)
	} else {
		pause(s.timing.ClickPause)
	}

	if err := s.run("clear", "key", "ctrl+a", "key", "Delete"); err != nil {
		return err
	}
	pause(s.timing.ClearPause)

	if err := s.run("type", "type", "--delay", "12", "--", text); err != nil {
		return err
	}
	if mode == models.SendModeOnboarding {
		pause(s.timing.OnboardingPostType)
	} else {
		pause(s.timing.PostTypePause)
	}

	return s.run("submit", "key", "Return")
}

// run executes one xdotool invocation, converting any failure into the
// typed simulation error.
func (s *XdotoolSimulator) run(step string, args ...string) error {
	cmd := exec.Command("xdotool", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return simFailed(s.Name(), step, fmt.Errorf("xdotool %v: %w (%s)", args, err, out))
	}
	return nil
}
