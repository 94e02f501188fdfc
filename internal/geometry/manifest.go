package geometry

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/example/mazeprobe/internal/core/maze"
)

// Manifest is the YAML form of a maze:
//
//	name: tiny
//	start: {row: 1, col: 1}
//	directions: [north, east]
//	rows:
//	  - "#E#"
//	  - "#  "
//	  - "###"
type Manifest struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Start       *Point   `yaml:"start,omitempty"`
	Directions  []string `yaml:"directions,omitempty"`
	Rows        []string `yaml:"rows"`
}

// Point is a YAML location.
type Point struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// Maze is a parsed grid plus its optional driver settings.
type Maze struct {
	Name        string
	Description string
	Grid        *Grid
	Start       *maze.Location   // Explicit start; falls back to the grid's S marker
	Directions  []maze.Direction // Explicit initial directions; nil means derive
}

// ParseMaze parses either a YAML manifest or a plain text layout. Text
// layouts take their name from the caller.
func ParseMaze(name string, data []byte) (*Maze, error) {
	if looksLikeManifest(data) {
		m, err := ParseManifest(data)
		if err != nil {
			return nil, err
		}
		if m.Name == "" {
			m.Name = name
		}
		return m, nil
	}

	grid, err := ParseGrid(string(data))
	if err != nil {
		return nil, err
	}
	return &Maze{Name: name, Grid: grid}, nil
}

func looksLikeManifest(data []byte) bool {
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(line, []byte("rows:")) {
			return true
		}
	}
	return false
}

// ParseManifest parses a YAML maze manifest.
func ParseManifest(data []byte) (*Maze, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse maze manifest: %w", err)
	}

	grid, err := NewGrid(manifest.Rows)
	if err != nil {
		return nil, err
	}

	m := &Maze{
		Name:        manifest.Name,
		Description: manifest.Description,
		Grid:        grid,
	}
	if manifest.Start != nil {
		m.Start = &maze.Location{Row: manifest.Start.Row, Col: manifest.Start.Col}
	}
	for _, s := range manifest.Directions {
		d, err := maze.ParseDirection(s)
		if err != nil {
			return nil, err
		}
		m.Directions = append(m.Directions, d)
	}

	if m.Start != nil {
		if err := m.ValidateStart(*m.Start); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Manifest converts the maze back to its YAML form.
func (m *Maze) Manifest() Manifest {
	manifest := Manifest{
		Name:        m.Name,
		Description: m.Description,
		Rows:        m.Grid.Rows(),
	}
	if m.Start != nil {
		manifest.Start = &Point{Row: m.Start.Row, Col: m.Start.Col}
	}
	for _, d := range m.Directions {
		manifest.Directions = append(manifest.Directions, d.String())
	}
	return manifest
}

// EncodeManifest renders the maze as a YAML manifest.
func (m *Maze) EncodeManifest() ([]byte, error) {
	return yaml.Marshal(m.Manifest())
}

// ResolveStart returns the explicit start, else the S marker.
func (m *Maze) ResolveStart() (maze.Location, error) {
	if m.Start != nil {
		return *m.Start, nil
	}
	if start, ok := m.Grid.Start(); ok {
		return start, nil
	}
	return maze.Location{}, fmt.Errorf("maze %q has no start: add an S cell or pass a start location", m.Name)
}

// ResolveDirections returns the explicit initial directions, else every open
// direction around start.
func (m *Maze) ResolveDirections(start maze.Location) []maze.Direction {
	if m.Directions != nil {
		return m.Directions
	}
	return m.Grid.OpenDirections(start)
}

// ValidateStart checks that start is inside the maze and not a wall.
func (m *Maze) ValidateStart(start maze.Location) error {
	if m.Grid.IsWall(start) {
		return fmt.Errorf("start %s is a wall", start)
	}
	return nil
}
