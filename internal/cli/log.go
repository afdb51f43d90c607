package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/courier/internal/ports/secondary"
	"github.com/example/courier/internal/wire"
)

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	var recipient, outcome string
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the delivery audit log",
		Long: `Show recent delivery attempts, newest first.

Examples:
  courier log
  courier log --recipient Agent-3
  courier log --outcome FAILED --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			attempts, err := wire.Attempts().List(ctx, secondary.AttemptFilters{
				RecipientID: recipient,
				Outcome:     outcome,
				Limit:       limit,
			})
			if err != nil {
				return err
			}

			for _, a := range attempts {
				badge := color.New(color.FgGreen).Sprint("✓")
				if a.Outcome == "FAILED" {
					badge = color.New(color.FgRed).Sprint("✗")
				}
				line := fmt.Sprintf("%s %s  %s -> %s  %s", badge, a.Timestamp, a.SenderID, a.RecipientID, a.Mode)
				if a.Error != "" {
					line += "  (" + a.Error + ")"
				}
				fmt.Println(line)
			}
			fmt.Printf("%d attempts\n", len(attempts))
			return nil
		},
	}

	cmd.Flags().StringVar(&recipient, "recipient", "", "filter by recipient agent ID")
	cmd.Flags().StringVar(&outcome, "outcome", "", "filter by outcome: SUCCESS or FAILED")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum rows to show")

	return cmd
}
