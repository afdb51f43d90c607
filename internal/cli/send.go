package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/courier/internal/agent"
	"github.com/example/courier/internal/models"
	"github.com/example/courier/internal/ports/primary"
	"github.com/example/courier/internal/wire"
)

// SendCmd returns the send command
func SendCmd() *cobra.Command {
	var to []string
	var from, priority, mode string
	var tags []string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "send <body>",
		Short: "Deliver a message to one or more agents",
		Long: `Deliver a message into each recipient's input field.

If injection fails for a recipient, the message lands in that recipient's
fallback inbox instead. The command prints one line per recipient either way.

Examples:
  courier send "Please review PR #42" --to Agent-3
  courier send "Standup in 5" --to Agent-1 --to Agent-2 --priority HIGH
  courier send "Welcome aboard" --to Agent-7 --mode onboarding`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if len(to) == 0 {
				return fmt.Errorf("--to is required (or use 'courier broadcast')")
			}
			for _, id := range to {
				if id == models.BroadcastRecipient {
					return fmt.Errorf("use 'courier broadcast' to reach all active agents")
				}
				if err := agent.ValidateID(id); err != nil {
					return err
				}
			}

			sendMode := models.SendModeNormal
			if mode == "onboarding" {
				sendMode = models.SendModeOnboarding
			} else if mode != "" && mode != "normal" {
				return fmt.Errorf("unknown mode %q (normal or onboarding)", mode)
			}

			// The detected identity rides on the context; --from overrides it.
			report, err := wire.DeliveryService().SendMessage(ctx, primary.SendMessageRequest{
				SenderID:   from,
				Recipients: to,
				Body:       args[0],
				Priority:   models.Priority(priority),
				Tags:       tags,
				Mode:       sendMode,
				DryRun:     dryRun,
			})
			if err != nil {
				return err
			}

			printReport(report)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&to, "to", nil, "recipient agent ID (repeatable)")
	cmd.Flags().StringVar(&from, "from", "", "override the detected sender ID")
	cmd.Flags().StringVar(&priority, "priority", "NORMAL", "LOW, NORMAL, HIGH or URGENT")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "message tag (repeatable)")
	cmd.Flags().StringVar(&mode, "mode", "normal", "injection sequence: normal or onboarding")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "record the sequence without touching the desktop")

	return cmd
}

// printReport prints one line per attempt plus the aggregate counts.
func printReport(report *models.DeliveryReport) {
	for _, a := range report.Attempts {
		switch {
		case a.Outcome == models.OutcomeFailed:
			fmt.Printf("%s %s: %s\n", color.New(color.FgRed).Sprint("✗"), a.RecipientID, a.Error)
		case a.Mode == models.ModeInjected:
			fmt.Printf("%s %s: injected\n", color.New(color.FgGreen).Sprint("✓"), a.RecipientID)
		default:
			fmt.Printf("%s %s: fallback inbox (%s)\n", color.New(color.FgYellow).Sprint("!"), a.RecipientID, a.Error)
		}
	}
	fmt.Printf("delivered %d/%d (injected %d, fallback %d, failed %d)\n",
		report.Injected+report.Fallback, len(report.Attempts),
		report.Injected, report.Fallback, report.Failed)
}
