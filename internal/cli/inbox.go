package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/example/courier/internal/adapters/inbox"
	"github.com/example/courier/internal/agent"
	"github.com/example/courier/internal/models"
	"github.com/example/courier/internal/wire"
)

// InboxCmd returns the inbox command
func InboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Inspect fallback inboxes",
	}

	cmd.AddCommand(inboxLsCmd())

	return cmd
}

func inboxLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <agent-id>",
		Short: "List fallback inbox entries for an agent",
		Long: `List the messages waiting in an agent's fallback inbox, most urgent
first, then newest first. Entries are consumed by the recipient's own inbox
processor; this command only reads.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if err := agent.ValidateID(args[0]); err != nil {
				return err
			}

			entries, err := wire.InboxWriter().List(ctx, args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("inbox empty")
				return nil
			}

			files := make([]*inbox.EntryFile, 0, len(entries))
			for _, e := range entries {
				ef, err := inbox.ReadEntryFile(e.Path)
				if err != nil {
					continue
				}
				files = append(files, ef)
			}
			sort.SliceStable(files, func(i, j int) bool {
				pi := models.PriorityRank[models.Priority(files[i].Priority)]
				pj := models.PriorityRank[models.Priority(files[j].Priority)]
				return pi > pj
			})

			for _, ef := range files {
				fmt.Printf("%-8s %s  from %s: %s\n",
					ef.Priority,
					ef.DeliveredAt.Format("2006-01-02 15:04"),
					ef.SenderID,
					ef.Body)
			}
			fmt.Printf("%d entries\n", len(files))
			return nil
		},
	}
}
