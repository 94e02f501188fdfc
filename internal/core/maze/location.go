// Package maze contains the pure domain types for maze exploration.
// This is part of the Functional Core - no I/O, only values and pure functions.
package maze

import (
	"fmt"
	"strings"
)

// Location is a cell on the grid, addressed by row and column.
type Location struct {
	Row int
	Col int
}

// String renders the location as "(row, col)".
func (l Location) String() string {
	return fmt.Sprintf("(%d, %d)", l.Row, l.Col)
}

// Direction is one of the four grid moves.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists every direction in the order open directions are reported.
var Directions = []Direction{North, South, West, East}

// Step returns the location one cell away from l in direction d.
// North and South move along rows (North decreases the row),
// East and West move along columns (East increases the column).
func (d Direction) Step(l Location) Location {
	switch d {
	case North:
		return Location{Row: l.Row - 1, Col: l.Col}
	case South:
		return Location{Row: l.Row + 1, Col: l.Col}
	case East:
		return Location{Row: l.Row, Col: l.Col + 1}
	case West:
		return Location{Row: l.Row, Col: l.Col - 1}
	}
	return l
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// ParseDirection parses a direction name or its first letter, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "north":
		return North, nil
	case "s", "south":
		return South, nil
	case "e", "east":
		return East, nil
	case "w", "west":
		return West, nil
	}
	return 0, fmt.Errorf("unknown direction %q (expected north, south, east or west)", s)
}

// ParseDirections parses a comma-separated direction list such as "north,east".
// An empty string yields an empty list.
func ParseDirections(s string) ([]Direction, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var dirs []Direction
	for _, part := range strings.Split(s, ",") {
		d, err := ParseDirection(part)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}

// FormatDirections joins directions with commas, the inverse of ParseDirections.
func FormatDirections(dirs []Direction) string {
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.String()
	}
	return strings.Join(names, ",")
}

// ParseLocation parses "row,col".
func ParseLocation(s string) (Location, error) {
	var loc Location
	if _, err := fmt.Sscanf(strings.ReplaceAll(s, " ", ""), "%d,%d", &loc.Row, &loc.Col); err != nil {
		return Location{}, fmt.Errorf("invalid location %q (expected row,col): %w", s, err)
	}
	return loc, nil
}

// Kind classifies a cell.
type Kind int

const (
	Wall Kind = iota
	Passage
	Exit
)

func (k Kind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Passage:
		return "passage"
	case Exit:
		return "exit"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ProbeID identifies one submitted probe. Ids are strictly increasing within a run.
type ProbeID int64

// ProbeResult is what a probe delivers once its location has been evaluated.
type ProbeResult struct {
	ID             ProbeID
	Kind           Kind
	OpenDirections []Direction
}

// KindFunc looks up the kind of a location.
type KindFunc func(Location) Kind

// OpenDirections returns every direction whose neighbour of loc is not a wall,
// in the order of Directions.
func OpenDirections(loc Location, kindOf KindFunc) []Direction {
	var open []Direction
	for _, d := range Directions {
		if kindOf(d.Step(loc)) != Wall {
			open = append(open, d)
		}
	}
	return open
}
