package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/mazeprobe/internal/ports/primary"
	"github.com/example/mazeprobe/internal/wire"
)

// LogCmd returns the log command with all subcommands attached.
func LogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "View the audit log",
		Long:  "View and prune the audit trail of maze imports, deletions and recorded runs",
	}

	cmd.AddCommand(logListCmd())
	cmd.AddCommand(logPruneCmd())

	return cmd
}

func logListCmd() *cobra.Command {
	var filters primary.LogFilters

	cmd := &cobra.Command{
		Use:   "list [entity-id]",
		Short: "Show recent activity",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				filters.EntityID = args[0]
			}
			if filters.Limit <= 0 {
				filters.Limit = 50
			}
			_, err := wire.LogAdapter().List(NewContext(), filters)
			return err
		},
	}

	cmd.Flags().StringVar(&filters.EntityType, "type", "", "Filter by entity type (maze, run)")
	cmd.Flags().IntVarP(&filters.Limit, "limit", "n", 50, "Number of entries to show")

	return cmd
}

func logPruneCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old log entries",
		Long:  "Delete log entries older than the specified number of days (default 30)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.LogAdapter().Prune(NewContext(), days)
			return err
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "Delete entries older than N days")

	return cmd
}
