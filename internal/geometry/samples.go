package geometry

// Sample is a built-in maze layout.
type Sample struct {
	Name        string
	Description string
	Rows        []string
}

// Samples returns the built-in mazes, in seeding order.
func Samples() []Sample {
	return []Sample{
		{
			Name:        "tiny",
			Description: "3x3 room, exit straight north of the start",
			Rows: []string{
				"#E#",
				"#S ",
				"###",
			},
		},
		{
			Name:        "labyrinth",
			Description: "16x18 labyrinth with a single exit on the top edge",
			Rows: []string{
				"###E##############",
				"### ##  #        #",
				"# # #   # ### ####",
				"# # #  ## ###  ###",
				"#   #      ##   ##",
				"# # ##   # #### ##",
				"# # ##   # #### ##",
				"# #        #  # ##",
				"# #  ###   #  # ##",
				"# #  ##       # ##",
				"# #  # #  ##### ##",
				"# # ## # ###### ##",
				"#      #    ### ##",
				"########## ###  ##",
				"##S              #",
				"##################",
			},
		},
		{
			Name:        "sealed",
			Description: "start cell boxed in by walls; the exit is unreachable",
			Rows: []string{
				"#####",
				"#S#E#",
				"#####",
			},
		},
		{
			Name:        "pocket",
			Description: "small open pocket with no exit at all",
			Rows: []string{
				"######",
				"#S   #",
				"#  # #",
				"######",
			},
		},
	}
}

// SampleMaze parses the named built-in maze.
func SampleMaze(name string) (*Maze, bool) {
	for _, s := range Samples() {
		if s.Name != name {
			continue
		}
		grid, err := NewGrid(s.Rows)
		if err != nil {
			return nil, false
		}
		return &Maze{Name: s.Name, Description: s.Description, Grid: grid}, true
	}
	return nil, false
}
