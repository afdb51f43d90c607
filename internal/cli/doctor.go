package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/courier/internal/adapters/automation"
	"github.com/example/courier/internal/config"
	"github.com/example/courier/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	OK      bool
	Details string
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the courier environment",
		Long: `Environment health check for courier.

Validates:
- Roster file parses and agents load
- Configured simulator backend is usable
- Inbox root is writable

Examples:
  courier doctor           # Run full health check
  courier doctor --quiet   # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()

			results := []CheckResult{
				checkRoster(),
				checkBackend(cfg),
				checkInboxRoot(cfg),
			}

			hasErrors := false
			for _, r := range results {
				if !r.OK {
					hasErrors = true
				}
				if quiet {
					continue
				}
				badge := color.New(color.FgGreen).Sprint("✓")
				if !r.OK {
					badge = color.New(color.FgRed).Sprint("✗")
				}
				fmt.Printf("%s %s\n", badge, r.Name)
				if r.Details != "" && !r.OK {
					fmt.Printf("    %s\n", r.Details)
				}
			}

			if hasErrors {
				return fmt.Errorf("environment has issues")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "exit code only, no output")

	return cmd
}

func checkRoster() CheckResult {
	reg := wire.Registry()
	if !reg.Loaded() {
		return CheckResult{Name: "roster loads", Details: "registry has no snapshot"}
	}
	agents := reg.Snapshot()
	return CheckResult{Name: fmt.Sprintf("roster loads (%d agents)", len(agents)), OK: true}
}

func checkBackend(cfg *config.Config) CheckResult {
	name := cfg.EffectiveBackend()
	var err error
	switch name {
	case config.BackendTmux:
		err = automation.NewTmuxSimulator(cfg.Timing).Available()
	case config.BackendRecording:
		err = automation.NewRecordingSimulator().Available()
	default:
		err = automation.NewXdotoolSimulator(cfg.Timing).Available()
	}
	if err != nil {
		return CheckResult{Name: "backend " + name, Details: err.Error()}
	}
	return CheckResult{Name: "backend " + name, OK: true}
}

func checkInboxRoot(cfg *config.Config) CheckResult {
	root := cfg.InboxRoot
	if root == "" {
		var err error
		root, err = config.DefaultInboxRoot()
		if err != nil {
			return CheckResult{Name: "inbox root", Details: err.Error()}
		}
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return CheckResult{Name: "inbox root " + root, Details: err.Error()}
	}
	probe := filepath.Join(root, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return CheckResult{Name: "inbox root " + root, Details: "not writable: " + err.Error()}
	}
	os.Remove(probe)
	return CheckResult{Name: "inbox root " + root, OK: true}
}
