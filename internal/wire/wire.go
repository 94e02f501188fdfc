// Package wire provides dependency injection for the mazeprobe application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/mazeprobe/internal/adapters/cli"
	"github.com/example/mazeprobe/internal/adapters/sqlite"
	"github.com/example/mazeprobe/internal/app"
	"github.com/example/mazeprobe/internal/config"
	"github.com/example/mazeprobe/internal/db"
	"github.com/example/mazeprobe/internal/ports/primary"
)

var (
	settings       *config.Settings
	mazeService    primary.MazeService
	exploreService primary.ExploreService
	runService     primary.RunService
	logService     primary.LogService

	settingsOnce sync.Once
	once         sync.Once
)

// Settings returns the configuration resolved for the working directory.
func Settings() *config.Settings {
	settingsOnce.Do(initSettings)
	return settings
}

// MazeService returns the singleton MazeService instance.
func MazeService() primary.MazeService {
	once.Do(initServices)
	return mazeService
}

// ExploreService returns the singleton ExploreService instance.
func ExploreService() primary.ExploreService {
	once.Do(initServices)
	return exploreService
}

// RunService returns the singleton RunService instance.
func RunService() primary.RunService {
	once.Do(initServices)
	return runService
}

// LogService returns the singleton LogService instance.
func LogService() primary.LogService {
	once.Do(initServices)
	return logService
}

func initSettings() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}

	settings, err = config.Resolve(cwd)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// db.GetDB reads the path from the environment.
	if settings.DBPath != "" && os.Getenv(db.DBPathEnv) == "" {
		os.Setenv(db.DBPathEnv, settings.DBPath)
	}
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	s := Settings()

	// Get database connection
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	mazeRepo := sqlite.NewMazeRepository(database)
	runRepo := sqlite.NewRunRepository(database)
	auditRepo := sqlite.NewAuditLogRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(auditRepo)

	// Create services (primary ports implementation)
	mazeService = app.NewMazeService(mazeRepo, logWriter)
	exploreService = app.NewExploreService(mazeRepo, runRepo, logWriter, app.ExploreDefaults{
		MaxDelay:         s.MaxDelay,
		Timeout:          s.Timeout,
		DetectExhaustion: s.DetectExhaustion,
	})
	runService = app.NewRunService(runRepo, mazeRepo)
	logService = app.NewLogService(auditRepo)
}

// MazeAdapter returns a new MazeAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func MazeAdapter() *cliadapter.MazeAdapter {
	return MazeAdapterWithOutput(os.Stdout)
}

// MazeAdapterWithOutput returns a new MazeAdapter writing to the given output.
func MazeAdapterWithOutput(out io.Writer) *cliadapter.MazeAdapter {
	once.Do(initServices)
	return cliadapter.NewMazeAdapter(mazeService, out)
}

// ExploreAdapter returns a new ExploreAdapter writing to stdout.
func ExploreAdapter() *cliadapter.ExploreAdapter {
	return ExploreAdapterWithOutput(os.Stdout)
}

// ExploreAdapterWithOutput returns a new ExploreAdapter writing to the given output.
func ExploreAdapterWithOutput(out io.Writer) *cliadapter.ExploreAdapter {
	once.Do(initServices)
	return cliadapter.NewExploreAdapter(exploreService, out)
}

// RunAdapter returns a new RunAdapter writing to stdout.
func RunAdapter() *cliadapter.RunAdapter {
	return RunAdapterWithOutput(os.Stdout)
}

// RunAdapterWithOutput returns a new RunAdapter writing to the given output.
func RunAdapterWithOutput(out io.Writer) *cliadapter.RunAdapter {
	once.Do(initServices)
	return cliadapter.NewRunAdapter(runService, out)
}

// LogAdapter returns a new LogAdapter writing to stdout.
func LogAdapter() *cliadapter.LogAdapter {
	return LogAdapterWithOutput(os.Stdout)
}

// LogAdapterWithOutput returns a new LogAdapter writing to the given output.
func LogAdapterWithOutput(out io.Writer) *cliadapter.LogAdapter {
	once.Do(initServices)
	return cliadapter.NewLogAdapter(logService, out)
}
