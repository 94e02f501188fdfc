package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/mazeprobe/internal/core/maze"
	"github.com/example/mazeprobe/internal/ports/primary"
)

// MazeAdapter is a thin adapter that translates CLI operations to MazeService calls.
// It depends only on the MazeService interface, enabling easy testing with mocks.
type MazeAdapter struct {
	service primary.MazeService
	out     io.Writer
}

// NewMazeAdapter creates a new MazeAdapter with the given service.
func NewMazeAdapter(service primary.MazeService, out io.Writer) *MazeAdapter {
	return &MazeAdapter{
		service: service,
		out:     out,
	}
}

// Import stores a maze from layout or manifest data.
func (a *MazeAdapter) Import(ctx context.Context, name, description string, data []byte) (*primary.ImportMazeResponse, error) {
	resp, err := a.service.ImportMaze(ctx, primary.ImportMazeRequest{
		Name:        name,
		Description: description,
		Data:        data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import maze: %w", err)
	}

	m := resp.Maze
	fmt.Fprintf(a.out, "✓ Imported maze %s: %s\n", resp.MazeID, m.Name)
	fmt.Fprintf(a.out, "  Size:  %dx%d, %d exit(s)\n", m.Rows, m.Cols, m.Exits)
	if m.Start != nil {
		fmt.Fprintf(a.out, "  Start: %s\n", m.Start)
	} else {
		fmt.Fprintln(a.out, "  Start: (none, pass --start when exploring)")
	}

	return resp, nil
}

// List lists every maze in the library.
func (a *MazeAdapter) List(ctx context.Context) ([]*primary.Maze, error) {
	mazes, err := a.service.ListMazes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list mazes: %w", err)
	}

	if len(mazes) == 0 {
		fmt.Fprintln(a.out, "No mazes found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Load the built-in samples:")
		fmt.Fprintln(a.out, "  mazeprobe maze seed")
		return mazes, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSIZE\tEXITS\tSTART")
	fmt.Fprintln(w, "--\t----\t----\t-----\t-----")

	for _, m := range mazes {
		start := "-"
		if m.Start != nil {
			start = m.Start.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%s\n",
			m.ID,
			m.Name,
			m.Rows,
			m.Cols,
			m.Exits,
			start,
		)
	}

	w.Flush()
	return mazes, nil
}

// Show displays a maze and renders its layout.
func (a *MazeAdapter) Show(ctx context.Context, ref string) (*primary.Maze, error) {
	m, err := a.service.GetMaze(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get maze: %w", err)
	}

	fmt.Fprintf(a.out, "\nMaze: %s\n", m.ID)
	fmt.Fprintf(a.out, "Name:        %s\n", m.Name)
	if m.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", m.Description)
	}
	fmt.Fprintf(a.out, "Size:        %dx%d\n", m.Rows, m.Cols)
	fmt.Fprintf(a.out, "Exits:       %d\n", m.Exits)
	if m.Start != nil {
		fmt.Fprintf(a.out, "Start:       %s\n", m.Start)
	}
	if m.Directions != nil {
		fmt.Fprintf(a.out, "Directions:  %s\n", maze.FormatDirections(m.Directions))
	} else {
		fmt.Fprintln(a.out, "Directions:  (derived from the start)")
	}
	fmt.Fprintf(a.out, "Created:     %s\n", m.CreatedAt)
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, RenderLayout(m.Layout, m.Start, nil))

	return m, nil
}

// Delete removes a maze from the library.
func (a *MazeAdapter) Delete(ctx context.Context, ref string) (*primary.Maze, error) {
	m, err := a.service.GetMaze(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get maze: %w", err)
	}

	if err := a.service.DeleteMaze(ctx, m.ID); err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Deleted maze %s: %s\n", m.ID, m.Name)
	return m, nil
}

// Seed imports the built-in sample mazes.
func (a *MazeAdapter) Seed(ctx context.Context) (*primary.SeedResult, error) {
	result, err := a.service.SeedSampleMazes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to seed sample mazes: %w", err)
	}

	for _, name := range result.Created {
		fmt.Fprintf(a.out, "✓ Imported sample %s\n", name)
	}
	if len(result.Skipped) > 0 {
		fmt.Fprintf(a.out, "  Already present: %s\n", strings.Join(result.Skipped, ", "))
	}
	return result, nil
}

var (
	wallColor  = color.New(color.Faint)
	exitColor  = color.New(color.FgGreen, color.Bold)
	startColor = color.New(color.FgCyan, color.Bold)
	foundColor = color.New(color.FgHiMagenta, color.Bold)
)

// RenderLayout colours a layout for the terminal. The start and the found
// exit, when given, are highlighted wherever they fall.
func RenderLayout(layout string, start, found *maze.Location) string {
	var b strings.Builder
	for r, line := range strings.Split(layout, "\n") {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c, ch := range []rune(line) {
			loc := maze.Location{Row: r, Col: c}
			switch {
			case found != nil && *found == loc:
				b.WriteString(foundColor.Sprint("E"))
			case start != nil && *start == loc:
				b.WriteString(startColor.Sprint("S"))
			case ch == '#':
				b.WriteString(wallColor.Sprint("#"))
			case ch == 'E':
				b.WriteString(exitColor.Sprint("E"))
			case ch == 'S':
				// A stored marker that an explicit start overrides.
				b.WriteRune(' ')
			default:
				b.WriteRune(ch)
			}
		}
	}
	return b.String()
}
