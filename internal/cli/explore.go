package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/mazeprobe/internal/core/maze"
	"github.com/example/mazeprobe/internal/ports/primary"
	"github.com/example/mazeprobe/internal/wire"
)

// ExploreCmd returns the explore command
func ExploreCmd() *cobra.Command {
	var (
		mazeRef          string
		layoutPath       string
		start            string
		directions       string
		verbose          bool
		detectExhaustion bool
		seed             uint64
	)

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Search a maze for an exit with asynchronous probes",
		Long: `Explore a maze breadth-first. Every reachable cell is probed once; probe
results arrive in random order after a random delay and are processed in
batches until an exit is found.

The run is recorded in the run log whatever its outcome. Without
--detect-exhaustion a maze with no reachable exit waits for --timeout.

Examples:
  mazeprobe explore --maze tiny
  mazeprobe explore --maze labyrinth --verbose --seed 7
  mazeprobe explore --layout rooms.txt --start 1,1 --directions north,east
  mazeprobe explore --maze pocket --detect-exhaustion`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (mazeRef == "") == (layoutPath == "") {
				return fmt.Errorf("exactly one of --maze or --layout is required")
			}

			req := primary.ExploreRequest{Maze: mazeRef}

			if layoutPath != "" {
				data, err := readInput(cmd.InOrStdin(), layoutPath)
				if err != nil {
					return err
				}
				req.Layout = data
				if layoutPath != "-" {
					req.LayoutName = strings.TrimSuffix(filepath.Base(layoutPath), filepath.Ext(layoutPath))
				}
			}

			if start != "" {
				loc, err := maze.ParseLocation(start)
				if err != nil {
					return err
				}
				req.Start = &loc
			}

			if cmd.Flags().Changed("directions") {
				dirs, err := maze.ParseDirections(directions)
				if err != nil {
					return err
				}
				req.Directions = dirs
			}

			if cmd.Flags().Changed("max-delay") {
				d, _ := cmd.Flags().GetDuration("max-delay")
				req.MaxDelay = &d
			}
			if cmd.Flags().Changed("timeout") {
				d, _ := cmd.Flags().GetDuration("timeout")
				req.Timeout = &d
			}
			if cmd.Flags().Changed("detect-exhaustion") {
				req.DetectExhaustion = &detectExhaustion
			}
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}

			ctx, stop := signal.NotifyContext(NewContext(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, err := wire.ExploreAdapter().Explore(ctx, req, verbose)
			return err
		},
	}

	cmd.Flags().StringVarP(&mazeRef, "maze", "m", "", "Library maze ID or name")
	cmd.Flags().StringVarP(&layoutPath, "layout", "l", "", "Explore a layout file without importing it ('-' for stdin)")
	cmd.Flags().StringVar(&start, "start", "", "Start location as row,col (default: the S marker)")
	cmd.Flags().StringVar(&directions, "directions", "", "Initial directions, e.g. north,east (default: every open side)")
	cmd.Flags().Duration("max-delay", 0, "Upper bound of the random probe delay (default from config)")
	cmd.Flags().Duration("timeout", 0, "Give up after this long; 0 waits forever (default from config)")
	cmd.Flags().BoolVar(&detectExhaustion, "detect-exhaustion", false, "Report no_exit once every reachable cell is probed")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed the probe delays for a reproducible run")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every probe and batch")

	return cmd
}
