// Package prober evaluates maze locations asynchronously. Each submission runs on
// its own goroutine, waits a random bounded delay, looks the location up in the
// geometry and reports the result to the registered listener.
package prober

import (
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/example/mazeprobe/internal/core/maze"
	"github.com/example/mazeprobe/internal/ports/secondary"
)

// DefaultMaxDelay bounds the random delay of a probe.
const DefaultMaxDelay = 50 * time.Millisecond

// ErrNoListener is returned by Submit when SetListener was never called.
var ErrNoListener = errors.New("prober: no result listener registered")

// DelayFunc chooses the delay of the probe for loc.
type DelayFunc func(loc maze.Location) time.Duration

// Options configures a Prober.
type Options struct {
	MaxDelay time.Duration
	Seed     *uint64
	Delay    DelayFunc
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithMaxDelay bounds the random per-probe delay. Zero or negative disables the delay.
func WithMaxDelay(d time.Duration) Option {
	return func(o *Options) { o.MaxDelay = d }
}

// WithSeed makes the random delays reproducible.
func WithSeed(seed uint64) Option {
	return func(o *Options) { o.Seed = &seed }
}

// WithDelayFunc replaces the random delay entirely.
func WithDelayFunc(fn DelayFunc) Option {
	return func(o *Options) { o.Delay = fn }
}

// Prober implements secondary.Prober. One Prober serves one run: its
// submitted set and id counter are never reset.
type Prober struct {
	geometry secondary.Geometry
	delay    DelayFunc

	mu        sync.Mutex
	listener  secondary.ResultListener
	submitted map[maze.Location]struct{}
	lastID    atomic.Int64

	inFlight  sync.WaitGroup
	closing   chan struct{}
	closeOnce sync.Once
}

// New creates a Prober evaluating locations against geometry.
func New(geometry secondary.Geometry, options ...Option) *Prober {
	opts := Options{MaxDelay: DefaultMaxDelay}
	for _, option := range options {
		option(&opts)
	}

	p := &Prober{
		geometry:  geometry,
		submitted: make(map[maze.Location]struct{}),
		closing:   make(chan struct{}),
	}
	p.delay = opts.Delay
	if p.delay == nil {
		p.delay = randomDelay(opts.MaxDelay, opts.Seed)
	}
	return p
}

func randomDelay(maxDelay time.Duration, seed *uint64) DelayFunc {
	if maxDelay <= 0 {
		return func(maze.Location) time.Duration { return 0 }
	}
	if seed == nil {
		return func(maze.Location) time.Duration { return rand.N(maxDelay + 1) }
	}
	var mu sync.Mutex
	rng := rand.New(rand.NewPCG(*seed, *seed))
	return func(maze.Location) time.Duration {
		mu.Lock()
		defer mu.Unlock()
		return time.Duration(rng.Int64N(int64(maxDelay) + 1))
	}
}

// SetListener registers the callback target for all future results.
func (p *Prober) SetListener(listener secondary.ResultListener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listener = listener
}

// Submit accepts loc for probing and returns its id. The listener is invoked
// later, on a separate goroutine.
func (p *Prober) Submit(loc maze.Location) (maze.ProbeID, error) {
	p.mu.Lock()
	if p.listener == nil {
		p.mu.Unlock()
		return 0, ErrNoListener
	}

	_, seen := p.submitted[loc]
	guard := maze.CanSubmit(maze.SubmitContext{
		Location:         loc,
		Kind:             p.geometry.CellKind(loc),
		AlreadySubmitted: seen,
	})
	if !guard.Allowed {
		p.mu.Unlock()
		return 0, guard.Error()
	}

	p.submitted[loc] = struct{}{}
	id := maze.ProbeID(p.lastID.Add(1))
	listener := p.listener
	p.inFlight.Add(1)
	p.mu.Unlock()

	go p.probe(id, loc, p.delay(loc), listener)
	return id, nil
}

func (p *Prober) probe(id maze.ProbeID, loc maze.Location, delay time.Duration, listener secondary.ResultListener) {
	defer p.inFlight.Done()

	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-p.closing:
			timer.Stop()
		}
	}

	result := maze.ProbeResult{ID: id, Kind: p.geometry.CellKind(loc)}
	if result.Kind != maze.Wall {
		result.OpenDirections = maze.OpenDirections(loc, p.geometry.CellKind)
	}
	listener.OnResult(result)
}

// Submitted returns the number of distinct locations accepted so far.
func (p *Prober) Submitted() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.submitted)
}

// LastID returns the most recently issued probe id, or 0 if none.
func (p *Prober) LastID() maze.ProbeID {
	return maze.ProbeID(p.lastID.Load())
}

// Close cuts short the delay of every outstanding probe. Probes are not
// cancelled: each still delivers its result. Submit keeps working after Close,
// with no delay.
func (p *Prober) Close() {
	p.closeOnce.Do(func() { close(p.closing) })
}

// Wait blocks until every submitted probe has delivered its result.
func (p *Prober) Wait() {
	p.inFlight.Wait()
}

var _ secondary.Prober = (*Prober)(nil)
