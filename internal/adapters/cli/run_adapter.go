package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/mazeprobe/internal/core/maze"
	"github.com/example/mazeprobe/internal/ports/primary"
)

// RunAdapter translates run log commands to RunService calls.
type RunAdapter struct {
	service primary.RunService
	out     io.Writer
}

// NewRunAdapter creates a new RunAdapter with the given service.
func NewRunAdapter(service primary.RunService, out io.Writer) *RunAdapter {
	return &RunAdapter{
		service: service,
		out:     out,
	}
}

// List lists recorded runs, newest first.
func (a *RunAdapter) List(ctx context.Context, filters primary.RunFilters) ([]*primary.Run, error) {
	runs, err := a.service.ListRuns(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(a.out, "No runs found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Explore a maze:")
		fmt.Fprintln(a.out, "  mazeprobe explore --maze tiny")
		return runs, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tMAZE\tSTATUS\tEXIT\tPROBES\tDURATION")
	fmt.Fprintln(w, "--\t----\t------\t----\t------\t--------")

	for _, run := range runs {
		exit := "-"
		if run.Exit != nil {
			exit = run.Exit.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%dms\n",
			run.ID,
			run.MazeName,
			run.Status,
			exit,
			run.Probes,
			run.DurationMS,
		)
	}

	w.Flush()
	return runs, nil
}

// Show displays details for a single run.
func (a *RunAdapter) Show(ctx context.Context, runID string) (*primary.Run, error) {
	run, err := a.service.GetRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	fmt.Fprintf(a.out, "\nRun: %s\n", run.ID)
	if run.MazeID != "" {
		fmt.Fprintf(a.out, "Maze:       %s (%s)\n", run.MazeName, run.MazeID)
	} else {
		fmt.Fprintf(a.out, "Maze:       %s\n", run.MazeName)
	}
	fmt.Fprintf(a.out, "Start:      %s\n", run.Start)
	fmt.Fprintf(a.out, "Directions: %s\n", maze.FormatDirections(run.Directions))
	fmt.Fprintf(a.out, "Status:     %s\n", run.Status)
	if run.Exit != nil {
		fmt.Fprintf(a.out, "Exit:       %s\n", run.Exit)
	}
	if run.Error != "" {
		fmt.Fprintf(a.out, "Error:      %s\n", run.Error)
	}
	fmt.Fprintf(a.out, "Probes:     %d\n", run.Probes)
	fmt.Fprintf(a.out, "Batches:    %d (largest %d, %d late results)\n", run.Batches, run.LargestBatch, run.LateResults)
	fmt.Fprintf(a.out, "Duration:   %dms\n", run.DurationMS)
	if run.RequestedBy != "" {
		fmt.Fprintf(a.out, "By:         %s\n", run.RequestedBy)
	}
	fmt.Fprintf(a.out, "Created:    %s\n", run.CreatedAt)
	fmt.Fprintln(a.out)

	return run, nil
}
