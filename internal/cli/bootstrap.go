// Package cli provides CLI commands for the mazeprobe application.
package cli

import (
	"context"

	"github.com/example/mazeprobe/internal/ctxutil"
	"github.com/example/mazeprobe/internal/wire"
)

// globalActorID stores the detected actor ID for the current CLI invocation.
// Set once at startup by DetectAndStoreActor().
var globalActorID string

// DetectAndStoreActor resolves who is running the command: the configured
// actor first, then MAZEPROBE_ACTOR or the login name.
// Should be called once at CLI startup in PersistentPreRun.
func DetectAndStoreActor() {
	if a := wire.Settings().Actor; a != "" {
		globalActorID = a
		return
	}
	globalActorID = ctxutil.DefaultActor()
}

// GetActorID returns the stored actor ID from CLI startup.
// Returns empty string if DetectAndStoreActor() was not called.
func GetActorID() string {
	return globalActorID
}

// NewContext creates a context.Background() with the current actor ID embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() context.Context {
	ctx := context.Background()
	if globalActorID != "" {
		return ctxutil.WithActorID(ctx, globalActorID)
	}
	return ctx
}
