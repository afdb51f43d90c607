package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/courier/internal/config"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var rosterPath, inboxRoot, backend, agentID string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a courier config in the current directory",
		Long: `Create .courier/config.json in the current directory with timing defaults.

An agent workspace passes --agent-id so outgoing messages carry its identity;
the coordinator workspace omits it.

Examples:
  courier init --roster ~/swarm/roster.yaml
  courier init --roster ./roster.yaml --agent-id Agent-3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rosterPath == "" {
				return fmt.Errorf("--roster is required")
			}
			abs, err := filepath.Abs(rosterPath)
			if err != nil {
				return fmt.Errorf("failed to resolve roster path: %w", err)
			}

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			cfg := &config.Config{
				Version:    "1",
				AgentID:    agentID,
				RosterPath: abs,
				InboxRoot:  inboxRoot,
				Backend:    backend,
				Timing:     config.DefaultTiming(),
			}
			if err := config.SaveConfig(cwd, cfg); err != nil {
				return err
			}

			fmt.Printf("✓ Config written to %s\n", filepath.Join(cwd, ".courier", "config.json"))
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  courier doctor")
			fmt.Println("  courier registry show")
			return nil
		},
	}

	cmd.Flags().StringVar(&rosterPath, "roster", "", "path to the roster YAML (required)")
	cmd.Flags().StringVar(&inboxRoot, "inbox-root", "", "fallback inbox root (default ~/.courier/inbox)")
	cmd.Flags().StringVar(&backend, "backend", "", "simulator backend: xdotool, tmux or recording")
	cmd.Flags().StringVar(&agentID, "agent-id", "", "local agent identity for sender tagging")

	return cmd
}
