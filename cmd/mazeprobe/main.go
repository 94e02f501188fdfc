package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/mazeprobe/internal/cli"
	"github.com/example/mazeprobe/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "mazeprobe",
		Short:   "mazeprobe - breadth-first maze exploration with asynchronous probes",
		Version: version.String(),
		Long: `mazeprobe searches grid mazes for an exit. Cells are evaluated by
asynchronous probes that report back in random order; results are processed
in batches and every run is recorded in a local SQLite run log.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.DetectAndStoreActor()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.MazeCmd())
	rootCmd.AddCommand(cli.ExploreCmd())
	rootCmd.AddCommand(cli.RunCmd())
	rootCmd.AddCommand(cli.LogCmd())

	// Developer tools
	rootCmd.AddCommand(cli.DevCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
