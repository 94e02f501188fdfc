package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/example/mazeprobe/internal/core/maze"
	"github.com/example/mazeprobe/internal/ports/primary"
)

// ExploreAdapter translates the explore command to ExploreService calls.
type ExploreAdapter struct {
	service primary.ExploreService
	out     io.Writer
}

// NewExploreAdapter creates a new ExploreAdapter with the given service.
func NewExploreAdapter(service primary.ExploreService, out io.Writer) *ExploreAdapter {
	return &ExploreAdapter{
		service: service,
		out:     out,
	}
}

// Explore runs one exploration and prints its outcome. With verbose set every
// probe and drained batch is printed as it happens.
func (a *ExploreAdapter) Explore(ctx context.Context, req primary.ExploreRequest, verbose bool) (*primary.ExploreResponse, error) {
	if verbose && req.Observer == nil {
		req.Observer = &progressPrinter{out: a.out}
	}

	resp, err := a.service.Explore(ctx, req)
	if resp == nil {
		return nil, fmt.Errorf("failed to explore: %w", err)
	}

	a.printOutcome(resp)
	return resp, err
}

func (a *ExploreAdapter) printOutcome(resp *primary.ExploreResponse) {
	fmt.Fprintf(a.out, "\nRun:        %s (%s)\n", resp.RunID, resp.MazeName)
	fmt.Fprintf(a.out, "Start:      %s heading %s\n", resp.Start, maze.FormatDirections(resp.Directions))

	switch resp.Status {
	case primary.RunStatusFound:
		fmt.Fprintf(a.out, "Result:     %s exit at %s\n", color.New(color.FgGreen).Sprint("FOUND"), resp.Exit)
	case primary.RunStatusNoExit:
		fmt.Fprintf(a.out, "Result:     %s every reachable cell was probed\n", color.New(color.FgYellow).Sprint("NO EXIT"))
	case primary.RunStatusTimeout:
		fmt.Fprintf(a.out, "Result:     %s\n", color.New(color.FgYellow).Sprint("TIMEOUT"))
	case primary.RunStatusCancelled:
		fmt.Fprintf(a.out, "Result:     %s\n", color.New(color.FgYellow).Sprint("CANCELLED"))
	default:
		fmt.Fprintf(a.out, "Result:     %s %s\n", color.New(color.FgRed).Sprint("FAILED"), resp.Error)
	}

	s := resp.Stats
	fmt.Fprintf(a.out, "Probes:     %d submitted, %d results\n", s.Probes, s.Results)
	fmt.Fprintf(a.out, "Batches:    %d (largest %d)\n", s.Batches, s.LargestBatch)
	if s.LateResults > 0 {
		fmt.Fprintf(a.out, "Late:       %d results dropped after the exit\n", s.LateResults)
	}
	fmt.Fprintf(a.out, "Duration:   %s\n", resp.Duration.Round(time.Millisecond))
}

// progressPrinter writes coordinator events as they happen.
type progressPrinter struct {
	out io.Writer
}

func (p *progressPrinter) ProbeSubmitted(id maze.ProbeID, loc maze.Location) {
	fmt.Fprintf(p.out, "  probe #%d → %s\n", id, loc)
}

func (p *progressPrinter) BatchDrained(size int) {
	fmt.Fprintf(p.out, "  batch of %d\n", size)
}

func (p *progressPrinter) ExitFound(loc maze.Location) {
	fmt.Fprintf(p.out, "  %s %s\n", color.New(color.FgGreen).Sprint("exit"), loc)
}

var _ primary.ExploreObserver = (*progressPrinter)(nil)
