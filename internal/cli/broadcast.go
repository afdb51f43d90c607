package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/courier/internal/models"
	"github.com/example/courier/internal/ports/primary"
	"github.com/example/courier/internal/wire"
)

// BroadcastCmd returns the broadcast command
func BroadcastCmd() *cobra.Command {
	var from, priority string
	var tags []string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "broadcast <body>",
		Short: "Deliver a message to every active agent",
		Long: `Deliver a message to all agents active at the moment the command runs.

The recipient set is resolved once up front; agents activated mid-broadcast
are not picked up. Delivery is sequential and continues past individual
failures, so the report always covers every resolved recipient.

Examples:
  courier broadcast "Deploy starting in 10 minutes" --priority HIGH
  courier broadcast "EOD status please" --tag standup`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			// The detected identity rides on the context; --from overrides it.
			report, err := wire.DeliveryService().Broadcast(ctx, primary.SendMessageRequest{
				SenderID: from,
				Body:     args[0],
				Priority: models.Priority(priority),
				Tags:     tags,
				DryRun:   dryRun,
			})
			if err != nil {
				return err
			}

			printReport(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "override the detected sender ID")
	cmd.Flags().StringVar(&priority, "priority", "NORMAL", "LOW, NORMAL, HIGH or URGENT")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "message tag (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "record the sequences without touching the desktop")

	return cmd
}
