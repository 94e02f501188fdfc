// Package geometry provides the maze geometry the prober evaluates: a
// rectangular grid parsed from text or a YAML manifest.
package geometry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/mazeprobe/internal/core/maze"
	"github.com/example/mazeprobe/internal/ports/secondary"
)

// Cell runes accepted by ParseGrid.
const (
	WallRune    = '#'
	PassageRune = ' '
	OpenRune    = '.'
	StartRune   = 'S'
	ExitRune    = 'E'
)

// ErrEmptyGrid is returned when the layout has no rows.
var ErrEmptyGrid = errors.New("maze layout is empty")

// Grid is an immutable rectangular maze. Locations outside the grid are walls.
type Grid struct {
	cells [][]maze.Kind
	cols  int
	start *maze.Location
}

// ParseGrid parses a newline-separated layout. Short lines are padded with walls.
func ParseGrid(text string) (*Grid, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return NewGrid(strings.Split(strings.TrimRight(text, "\n"), "\n"))
}

// NewGrid builds a grid from layout rows.
func NewGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 || (len(rows) == 1 && rows[0] == "") {
		return nil, ErrEmptyGrid
	}

	g := &Grid{cells: make([][]maze.Kind, len(rows))}
	for r, line := range rows {
		g.cells[r] = make([]maze.Kind, 0, len(line))
		for c, ch := range []rune(line) {
			switch ch {
			case WallRune:
				g.cells[r] = append(g.cells[r], maze.Wall)
			case PassageRune, OpenRune:
				g.cells[r] = append(g.cells[r], maze.Passage)
			case StartRune:
				if g.start != nil {
					return nil, fmt.Errorf("row %d col %d: second start marker (first at %s)", r, c, *g.start)
				}
				g.start = &maze.Location{Row: r, Col: c}
				g.cells[r] = append(g.cells[r], maze.Passage)
			case ExitRune:
				g.cells[r] = append(g.cells[r], maze.Exit)
			default:
				return nil, fmt.Errorf("row %d col %d: unknown cell %q", r, c, ch)
			}
		}
		g.cols = max(g.cols, len(g.cells[r]))
	}
	for r := range g.cells {
		for len(g.cells[r]) < g.cols {
			g.cells[r] = append(g.cells[r], maze.Wall)
		}
	}
	return g, nil
}

// CellKind implements secondary.Geometry.
func (g *Grid) CellKind(loc maze.Location) maze.Kind {
	if loc.Row < 0 || loc.Row >= len(g.cells) || loc.Col < 0 || loc.Col >= g.cols {
		return maze.Wall
	}
	return g.cells[loc.Row][loc.Col]
}

// IsWall reports whether loc is a wall or outside the grid.
func (g *Grid) IsWall(loc maze.Location) bool {
	return g.CellKind(loc) == maze.Wall
}

// OpenDirections lists the directions from loc that do not lead into a wall.
func (g *Grid) OpenDirections(loc maze.Location) []maze.Direction {
	return maze.OpenDirections(loc, g.CellKind)
}

// Size returns the number of rows and columns.
func (g *Grid) Size() (rows, cols int) {
	return len(g.cells), g.cols
}

// Start returns the location of the S marker, if the layout had one.
func (g *Grid) Start() (maze.Location, bool) {
	if g.start == nil {
		return maze.Location{}, false
	}
	return *g.start, true
}

// Exits lists every exit cell in row-major order.
func (g *Grid) Exits() []maze.Location {
	var exits []maze.Location
	for r, row := range g.cells {
		for c, k := range row {
			if k == maze.Exit {
				exits = append(exits, maze.Location{Row: r, Col: c})
			}
		}
	}
	return exits
}

// Rows renders the grid back to layout rows, including the start marker.
func (g *Grid) Rows() []string {
	rows := make([]string, len(g.cells))
	for r, row := range g.cells {
		var b strings.Builder
		for c, k := range row {
			switch {
			case g.start != nil && *g.start == (maze.Location{Row: r, Col: c}):
				b.WriteRune(StartRune)
			case k == maze.Wall:
				b.WriteRune(WallRune)
			case k == maze.Exit:
				b.WriteRune(ExitRune)
			default:
				b.WriteRune(PassageRune)
			}
		}
		rows[r] = b.String()
	}
	return rows
}

// String renders the grid as newline-separated layout text.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}

var _ secondary.Geometry = (*Grid)(nil)
