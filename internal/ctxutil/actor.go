// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import (
	"context"
	"os"
	"os/user"
)

// ActorEnv names the environment variable that overrides the actor.
const ActorEnv = "MAZEPROBE_ACTOR"

// ActorKey is the context key for the actor who requested an operation.
type ActorKey struct{}

// WithActorID returns a context with the actor ID embedded.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, ActorKey{}, actorID)
}

// ActorFromContext returns the actor ID from context, or empty string if not set.
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ActorKey{}).(string); ok {
		return v
	}
	return ""
}

// DefaultActor returns MAZEPROBE_ACTOR if set, else the login name of the
// current user, else empty.
func DefaultActor() string {
	if a := os.Getenv(ActorEnv); a != "" {
		return a
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
