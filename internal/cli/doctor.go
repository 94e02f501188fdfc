package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/mazeprobe/internal/config"
	"github.com/example/mazeprobe/internal/db"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the mazeprobe environment",
		Long: `Health check for mazeprobe.

Validates:
- Configuration (.mazeprobe/config.json, .env, MAZEPROBE_* variables)
- Database reachability
- Schema version

Examples:
  mazeprobe doctor              # Run full health check
  mazeprobe doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		// Skips the root pre-run, which aborts on a broken config.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			configResult, settings := checkConfig(cwd)
			if settings != nil && settings.DBPath != "" && os.Getenv(db.DBPathEnv) == "" {
				os.Setenv(db.DBPathEnv, settings.DBPath)
			}

			results := []CheckResult{configResult}
			dbResult, schemaResult := checkDatabase()
			results = append(results, dbResult, schemaResult)

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				printCheckResults(results)
				if hasErrors {
					fmt.Println("\n⚠ Issues found.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

func printCheckResults(results []CheckResult) {
	fmt.Println()
	fmt.Println("Check              Status")
	fmt.Println("─────────────────────────")
	for _, r := range results {
		fmt.Printf("%-18s %s\n", r.Name, r.Status)
	}
	fmt.Println()

	hasDetails := false
	for _, r := range results {
		if r.Status != "✓" && r.Details != "" {
			if !hasDetails {
				fmt.Println("Details:")
				hasDetails = true
			}
			fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
		}
	}
}

// checkConfig validates config.json and the environment overrides. The
// settings are nil when they cannot be resolved.
func checkConfig(dir string) (CheckResult, *config.Settings) {
	settings, err := config.Resolve(dir)
	if err != nil {
		return CheckResult{Name: "Config", Status: "✗", Details: "  " + err.Error()}, nil
	}

	if _, err := config.LoadConfig(dir); errors.Is(err, os.ErrNotExist) {
		return CheckResult{
			Name:    "Config",
			Status:  "⚠",
			Details: "  No .mazeprobe/config.json, using defaults. Run 'mazeprobe init'.",
		}, settings
	}
	return CheckResult{Name: "Config", Status: "✓"}, settings
}

// checkDatabase opens the database and compares its schema version with the
// newest known migration.
func checkDatabase() (CheckResult, CheckResult) {
	dbPath, err := db.GetDBPath()
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()},
			CheckResult{Name: "Schema", Status: "✗"}
	}

	database, err := db.GetDB()
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: fmt.Sprintf("  %s: %v", dbPath, err)},
			CheckResult{Name: "Schema", Status: "✗"}
	}
	if err := database.Ping(); err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: fmt.Sprintf("  %s: %v", dbPath, err)},
			CheckResult{Name: "Schema", Status: "✗"}
	}
	dbResult := CheckResult{Name: "Database", Status: "✓"}

	version, err := db.SchemaVersion(database)
	if err != nil {
		return dbResult, CheckResult{Name: "Schema", Status: "✗", Details: "  " + err.Error()}
	}
	if latest := db.LatestSchemaVersion(); version != latest {
		return dbResult, CheckResult{
			Name:    "Schema",
			Status:  "✗",
			Details: fmt.Sprintf("  Schema at version %d, expected %d", version, latest),
		}
	}
	return dbResult, CheckResult{Name: "Schema", Status: "✓"}
}
