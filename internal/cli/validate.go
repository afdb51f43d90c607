package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/courier/internal/models"
	"github.com/example/courier/internal/ports/primary"
	"github.com/example/courier/internal/wire"
)

// ValidateCmd returns the validate command
func ValidateCmd() *cobra.Command {
	var failOn string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check config sources for SSOT divergences",
		Long: `Compare agent roles, coordinates, active flags and capabilities across
every configured source and report divergences by severity.

Validation never modifies a source. Use 'courier fix' to apply a correction.

Examples:
  courier validate
  courier validate --fail-on HIGH    # non-zero exit on HIGH or CRITICAL`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			conflicts, err := wire.ValidationService().Validate(ctx)
			if err != nil {
				return err
			}

			if len(conflicts) == 0 {
				fmt.Println("✓ All sources agree")
				return nil
			}

			for _, c := range conflicts {
				fmt.Printf("%s %s.%s\n", severityBadge(c.Severity), c.EntityID, c.FieldName)
				names := make([]string, 0, len(c.SourceValues))
				for name := range c.SourceValues {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Printf("    %s: %s\n", name, c.SourceValues[name])
				}
			}
			fmt.Printf("%d conflicts\n", len(conflicts))

			if failOn != "" {
				threshold, ok := models.SeverityRank[models.Severity(strings.ToUpper(failOn))]
				if !ok {
					return fmt.Errorf("unknown severity %q", failOn)
				}
				for _, c := range conflicts {
					if models.SeverityRank[c.Severity] <= threshold {
						return fmt.Errorf("conflicts at or above %s severity", strings.ToUpper(failOn))
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&failOn, "fail-on", "", "exit non-zero if conflicts at or above this severity exist")

	return cmd
}

// FixCmd returns the fix command
func FixCmd() *cobra.Command {
	var sources []string

	cmd := &cobra.Command{
		Use:   "fix <agent-id> <field> <value>",
		Short: "Apply an approved correction to named sources",
		Long: `Write the chosen value into the named sources, leaving every other field
untouched. Each source is updated all-or-nothing.

The value uses the canonical forms shown by 'courier validate': coordinates
as "x,y", capability lists comma-joined, active as true/false.

Examples:
  courier fix Agent-6 role QUALITY_SPECIALIST --source team/unified.json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if len(sources) == 0 {
				return fmt.Errorf("--source is required: corrections are never applied implicitly")
			}

			result, err := wire.ValidationService().ApplyFix(ctx, primary.ApplyFixRequest{
				EntityID:    args[0],
				FieldName:   args[1],
				ChosenValue: args[2],
				Sources:     sources,
			})
			if result != nil {
				for _, name := range result.Updated {
					fmt.Printf("✓ Updated %s\n", name)
				}
			}
			return err
		},
	}

	cmd.Flags().StringArrayVar(&sources, "source", nil, "source to update, by name (repeatable)")

	return cmd
}

func severityBadge(s models.Severity) string {
	switch s {
	case models.SeverityCritical:
		return color.New(color.FgRed, color.Bold).Sprint("CRITICAL")
	case models.SeverityHigh:
		return color.New(color.FgRed).Sprint("HIGH    ")
	case models.SeverityMedium:
		return color.New(color.FgYellow).Sprint("MEDIUM  ")
	default:
		return color.New(color.FgBlue).Sprint("LOW     ")
	}
}
