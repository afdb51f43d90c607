package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/courier/internal/cli"
	"github.com/example/courier/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "courier",
		Short:   "courier - message delivery for co-located agent swarms",
		Version: version.String(),
		Long: `courier delivers messages between agents running on one desktop.
It injects text directly into each agent's input field at its roster
coordinates, falling back to a per-agent inbox directory when injection
is unavailable, and keeps the agent config sources consistent.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.DetectAndStoreSender()
		},
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.SendCmd())
	rootCmd.AddCommand(cli.BroadcastCmd())
	rootCmd.AddCommand(cli.InboxCmd())
	rootCmd.AddCommand(cli.RegistryCmd())
	rootCmd.AddCommand(cli.ValidateCmd())
	rootCmd.AddCommand(cli.FixCmd())
	rootCmd.AddCommand(cli.LogCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
