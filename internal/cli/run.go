package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/mazeprobe/internal/ports/primary"
	"github.com/example/mazeprobe/internal/wire"
)

// RunCmd returns the run command
func RunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Inspect recorded explorations",
	}

	cmd.AddCommand(runListCmd())
	cmd.AddCommand(runShowCmd())

	return cmd
}

func runListCmd() *cobra.Command {
	var filters primary.RunFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runs, newest first",
		Long: `List recorded runs, newest first.

Examples:
  mazeprobe run list
  mazeprobe run list --maze labyrinth --status found -n 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.RunAdapter().List(NewContext(), filters)
			return err
		},
	}

	cmd.Flags().StringVarP(&filters.Maze, "maze", "m", "", "Filter by maze ID or name")
	cmd.Flags().StringVarP(&filters.Status, "status", "s", "", "Filter by status (found, no_exit, timeout, cancelled, failed)")
	cmd.Flags().IntVarP(&filters.Limit, "limit", "n", 20, "Maximum runs to show (0 for all)")

	return cmd
}

func runShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show details of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.RunAdapter().Show(NewContext(), args[0])
			return err
		},
	}
}
