package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/mazeprobe/internal/config"
	"github.com/example/mazeprobe/internal/db"
	"github.com/example/mazeprobe/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the mazeprobe config and database",
		Long: `Write .mazeprobe/config.json in the current directory (unless it exists)
and create the database with the current schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			if _, err := config.LoadConfig(cwd); err == nil {
				fmt.Println("✓ Config already present at .mazeprobe/config.json")
			} else if errors.Is(err, os.ErrNotExist) {
				if err := config.SaveConfig(cwd, config.DefaultConfig()); err != nil {
					return err
				}
				fmt.Println("✓ Config written to .mazeprobe/config.json")
			} else {
				return err
			}

			// Resolve settings so a configured db_path is honoured.
			wire.Settings()
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing database at %s\n", dbPath)
			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			fmt.Println("✓ Database initialized successfully")

			if seed {
				if _, err := wire.MazeAdapter().Seed(NewContext()); err != nil {
					return err
				}
			}

			fmt.Println()
			fmt.Println("Next steps:")
			if !seed {
				fmt.Println("  mazeprobe maze seed")
			}
			fmt.Println("  mazeprobe explore --maze tiny")

			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Also import the sample mazes")
	return cmd
}
