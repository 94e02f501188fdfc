// Package frontier contains the pure batch-expansion rules of the breadth-first
// exploration. This is part of the Functional Core - no I/O, no locking; the
// coordinator pre-fetches state, asks for a plan and executes it.
package frontier

import (
	"fmt"

	"github.com/example/mazeprobe/internal/core/maze"
)

// BatchPlanInput contains the pre-fetched state for planning one drained batch.
type BatchPlanInput struct {
	// Results in arrival order.
	Results []maze.ProbeResult
	// Origin resolves the location a probe was submitted for.
	Origin func(maze.ProbeID) (maze.Location, bool)
	// Explored reports whether a location was already enqueued for probing.
	Explored func(maze.Location) bool
}

// BatchPlan is the outcome of a drained batch.
type BatchPlan struct {
	// Submit lists the locations to probe, in submission order. Each one is
	// also to be marked explored.
	Submit []maze.Location

	ExitFound bool
	Exit      maze.Location

	// Processed counts the results consumed, up to and including the exit.
	Processed int
}

// GeneratePlan plans the expansion of one batch.
//
// Results are handled in order. The first Exit ends the batch: results after it
// are not expanded. Every open direction of a Passage is stepped from the
// location that produced it; a neighbour is submitted only if it is neither
// already explored nor planned earlier in the same batch.
func GeneratePlan(input BatchPlanInput) (BatchPlan, error) {
	var plan BatchPlan
	planned := make(map[maze.Location]struct{})

	for _, result := range input.Results {
		plan.Processed++

		switch result.Kind {
		case maze.Exit:
			loc, ok := input.Origin(result.ID)
			if !ok {
				return plan, fmt.Errorf("exit reported by unknown probe %d", result.ID)
			}
			plan.ExitFound = true
			plan.Exit = loc
			return plan, nil

		case maze.Passage:
			origin, ok := input.Origin(result.ID)
			if !ok {
				return plan, fmt.Errorf("result from unknown probe %d", result.ID)
			}
			for _, d := range result.OpenDirections {
				next := d.Step(origin)
				if _, dup := planned[next]; dup || input.Explored(next) {
					continue
				}
				planned[next] = struct{}{}
				plan.Submit = append(plan.Submit, next)
			}
		}
	}

	return plan, nil
}
