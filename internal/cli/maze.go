package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/mazeprobe/internal/wire"
)

// MazeCmd returns the maze command
func MazeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maze",
		Short: "Manage the maze library",
		Long:  `Import, inspect and delete the mazes that explore runs against.`,
	}

	cmd.AddCommand(mazeImportCmd())
	cmd.AddCommand(mazeListCmd())
	cmd.AddCommand(mazeShowCmd())
	cmd.AddCommand(mazeDeleteCmd())
	cmd.AddCommand(mazeSeedCmd())

	return cmd
}

func mazeImportCmd() *cobra.Command {
	var name string
	var description string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a maze from a text layout or YAML manifest",
		Long: `Import a maze into the library.

Text layouts use '#' for walls, ' ' or '.' for passages, 'E' for exits and an
optional 'S' for the start. YAML manifests carry their own name, start and
initial directions. Use '-' to read from stdin.

Examples:
  mazeprobe maze import rooms.txt
  mazeprobe maze import rooms.txt --name rooms --description "two rooms"
  mazeprobe maze import corridor.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			if name == "" && args[0] != "-" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			_, err = wire.MazeAdapter().Import(NewContext(), name, description, data)
			return err
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Maze name for text layouts (default: file name)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Maze description")

	return cmd
}

func mazeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List mazes in the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.MazeAdapter().List(NewContext())
			return err
		},
	}
}

func mazeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <maze>",
		Short: "Show a maze and render its layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.MazeAdapter().Show(NewContext(), args[0])
			return err
		},
	}
}

func mazeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <maze>",
		Short: "Delete a maze (its runs are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.MazeAdapter().Delete(NewContext(), args[0])
			return err
		},
	}
}

func mazeSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Import the built-in sample mazes",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.MazeAdapter().Seed(NewContext())
			return err
		},
	}
}

// readInput reads a file, or stdin when path is "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
