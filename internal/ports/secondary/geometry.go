package secondary

import "github.com/example/mazeprobe/internal/core/maze"

// Geometry is the read-only maze the prober evaluates locations against.
// Implementations must be total and deterministic: every location has a kind,
// and locations outside the maze are walls.
type Geometry interface {
	CellKind(loc maze.Location) maze.Kind
}

// ResultListener receives probe results. OnResult is called on the probe's own
// goroutine, never on the submitter's.
type ResultListener interface {
	OnResult(result maze.ProbeResult)
}

// ResultListenerFunc adapts a function to ResultListener.
type ResultListenerFunc func(result maze.ProbeResult)

// OnResult calls f(result).
func (f ResultListenerFunc) OnResult(result maze.ProbeResult) { f(result) }

// Prober evaluates locations asynchronously and reports each one exactly once
// to the registered listener.
type Prober interface {
	// SetListener registers the single callback target. The last registration wins.
	SetListener(listener ResultListener)

	// Submit starts probing loc and returns its id immediately. Submitting a
	// location twice, or a wall, fails with a *maze.ContractViolationError.
	Submit(loc maze.Location) (maze.ProbeID, error)
}
