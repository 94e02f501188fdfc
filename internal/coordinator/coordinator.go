// Package coordinator owns the breadth-first frontier. It submits probes,
// waits for their asynchronous results, drains everything that has arrived as
// one batch, expands the frontier from it and stops at the first exit.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/example/mazeprobe/internal/core/frontier"
	"github.com/example/mazeprobe/internal/core/maze"
	"github.com/example/mazeprobe/internal/ports/secondary"
)

var (
	// ErrNoExit is returned, with exhaustion detection enabled, when every
	// submitted probe has answered and none found an exit.
	ErrNoExit = errors.New("no exit reachable")

	// ErrAlreadyStarted is returned when FindExit is called twice on one Coordinator.
	ErrAlreadyStarted = errors.New("coordinator already ran an exploration")
)

// Observer is notified of progress. Calls are made while the coordinator
// holds its lock and must not call back into the coordinator.
type Observer interface {
	ProbeSubmitted(id maze.ProbeID, loc maze.Location)
	BatchDrained(size int)
	ExitFound(loc maze.Location)
}

// Stats summarises a run.
type Stats struct {
	Submitted    int // Probes submitted to the prober
	Results      int // Results received before the run finished
	Batches      int // Batches drained
	LargestBatch int
	LateResults  int // Results that arrived after the run finished
}

// Options configures a Coordinator.
type Options struct {
	DetectExhaustion bool
	Observer         Observer
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithExhaustionDetection makes FindExit fail with ErrNoExit once no probe is
// outstanding and no result is pending. Without it an unreachable exit blocks
// FindExit until its context is cancelled.
func WithExhaustionDetection(enabled bool) Option {
	return func(o *Options) { o.DetectExhaustion = enabled }
}

// WithObserver registers a progress observer.
func WithObserver(observer Observer) Option {
	return func(o *Options) { o.Observer = observer }
}

// Coordinator runs a single exploration against one prober.
type Coordinator struct {
	prober secondary.Prober
	opts   Options

	mu          sync.Mutex
	cond        *sync.Cond
	pending     []maze.ProbeResult
	submissions map[maze.ProbeID]maze.Location
	explored    map[maze.Location]struct{}
	outstanding int
	started     bool
	done        bool
	stats       Stats
}

// New creates a Coordinator that probes through prober.
func New(prober secondary.Prober, options ...Option) *Coordinator {
	var opts Options
	for _, option := range options {
		option(&opts)
	}

	c := &Coordinator{
		prober:      prober,
		opts:        opts,
		submissions: make(map[maze.ProbeID]maze.Location),
		explored:    make(map[maze.Location]struct{}),
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// FindExit explores from start, first probing one step in each of
// initialDirections, and returns the location of the first exit reported.
// It blocks until an exit is found, the prober rejects a submission, ctx is
// cancelled, or (with exhaustion detection) the frontier runs dry.
func (c *Coordinator) FindExit(ctx context.Context, start maze.Location, initialDirections []maze.Direction) (maze.Location, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return maze.Location{}, ErrAlreadyStarted
	}
	c.started = true
	defer func() { c.done = true }()

	c.prober.SetListener(c)

	stop := context.AfterFunc(ctx, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.cond.Broadcast()
	})
	defer stop()

	for _, d := range initialDirections {
		loc := d.Step(start)
		if err := c.submitLocked(loc); err != nil {
			return maze.Location{}, err
		}
	}

	for {
		for len(c.pending) == 0 {
			if err := ctx.Err(); err != nil {
				return maze.Location{}, err
			}
			if c.opts.DetectExhaustion && c.outstanding == 0 {
				return maze.Location{}, ErrNoExit
			}
			c.cond.Wait()
		}

		batch := c.pending
		c.pending = nil
		c.stats.Batches++
		c.stats.LargestBatch = max(c.stats.LargestBatch, len(batch))
		if c.opts.Observer != nil {
			c.opts.Observer.BatchDrained(len(batch))
		}

		plan, err := frontier.GeneratePlan(frontier.BatchPlanInput{
			Results:  batch,
			Origin:   c.originLocked,
			Explored: c.exploredLocked,
		})
		if err != nil {
			return maze.Location{}, err
		}

		for _, loc := range plan.Submit {
			if err := c.submitLocked(loc); err != nil {
				return maze.Location{}, err
			}
		}

		if plan.ExitFound {
			if c.opts.Observer != nil {
				c.opts.Observer.ExitFound(plan.Exit)
			}
			return plan.Exit, nil
		}
	}
}

// OnResult queues a probe result for the next batch and wakes FindExit.
func (c *Coordinator) OnResult(result maze.ProbeResult) {
	c.enqueue(result)
}

// enqueue appends results under a single lock acquisition, so they land in
// the same batch unless the loop is already draining.
func (c *Coordinator) enqueue(results ...maze.ProbeResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.outstanding -= len(results)
	if c.done {
		c.stats.LateResults += len(results)
		return
	}
	c.stats.Results += len(results)
	c.pending = append(c.pending, results...)
	c.cond.Signal()
}

func (c *Coordinator) submitLocked(loc maze.Location) error {
	id, err := c.prober.Submit(loc)
	if err != nil {
		return fmt.Errorf("submit %s: %w", loc, err)
	}
	c.submissions[id] = loc
	c.explored[loc] = struct{}{}
	c.outstanding++
	c.stats.Submitted++
	if c.opts.Observer != nil {
		c.opts.Observer.ProbeSubmitted(id, loc)
	}
	return nil
}

func (c *Coordinator) originLocked(id maze.ProbeID) (maze.Location, bool) {
	loc, ok := c.submissions[id]
	return loc, ok
}

func (c *Coordinator) exploredLocked(loc maze.Location) bool {
	_, ok := c.explored[loc]
	return ok
}

// Stats returns a snapshot of the run counters.
func (c *Coordinator) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

var _ secondary.ResultListener = (*Coordinator)(nil)
