package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/courier/internal/ctxutil"
	"github.com/example/courier/internal/registry"
	"github.com/example/courier/internal/wire"
)

// RegistryCmd returns the registry command
func RegistryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect and reload the coordinate roster",
	}

	cmd.AddCommand(registryShowCmd())
	cmd.AddCommand(registryReloadCmd())
	cmd.AddCommand(registryWatchCmd())

	return cmd
}

func registryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List all agents and their coordinates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			agents, err := wire.RegistryService().ListAgents(ctx)
			if err != nil {
				return err
			}

			for _, a := range agents {
				state := color.New(color.FgGreen).Sprint("active  ")
				if !a.Active {
					state = color.New(color.FgYellow).Sprint("inactive")
				}
				derived := ""
				if !a.OnboardingExplicit {
					derived = " (derived)"
				}
				fmt.Printf("%s  %-12s %-20s chat (%d,%d)  onboarding (%d,%d)%s\n",
					state, a.ID, a.Role,
					a.ChatInput.X, a.ChatInput.Y,
					a.Onboarding.X, a.Onboarding.Y, derived)
			}
			fmt.Printf("%d agents\n", len(agents))

			for _, w := range wire.Registry().Warnings() {
				fmt.Printf("%s %s\n", color.New(color.FgYellow).Sprint("⚠"), w)
			}
			return nil
		},
	}
}

func registryReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Re-read the roster file",
		Long: `Re-read the roster file and swap in the new snapshot.

If the roster fails to parse, the previous snapshot stays in effect and the
command reports the error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			res, err := wire.RegistryService().Reload(ctx)
			if err != nil {
				return fmt.Errorf("reload failed (previous roster still active): %w", err)
			}

			fmt.Printf("✓ Roster reloaded: %d agents\n", res.AgentsLoaded)
			for _, w := range res.Warnings {
				fmt.Printf("%s %s\n", color.New(color.FgYellow).Sprint("⚠"), w)
			}
			return nil
		},
	}
}

func registryWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the roster file and reload on change",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()

			ctx, cancel := signal.NotifyContext(
				ctxutil.WithSenderID(cmd.Context(), SenderID()),
				os.Interrupt, syscall.SIGTERM,
			)
			defer cancel()

			watcher := registry.NewWatcher(wire.Registry(), cfg.RosterPath)
			watcher.OnReload = func(res *registry.LoadResult, err error) {
				if err != nil {
					fmt.Printf("%s reload failed, previous roster still active: %v\n",
						color.New(color.FgRed).Sprint("✗"), err)
					return
				}
				fmt.Printf("✓ Roster reloaded: %d agents\n", res.AgentsLoaded)
			}

			fmt.Printf("Watching %s (ctrl-c to stop)\n", cfg.RosterPath)
			if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
}
