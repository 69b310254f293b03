package engine

import (
	"context"
	"fmt"

	"github.com/san-kum/territory/internal/colorspace"
	"github.com/san-kum/territory/internal/grid"
	"github.com/san-kum/territory/internal/mutation"
	"github.com/san-kum/territory/internal/rng"
	"github.com/san-kum/territory/internal/schedule"
	"github.com/san-kum/territory/internal/vote"
)

// Report summarises one generation.
type Report struct {
	Generation int
	// Changed is the number of cells that switched species.
	Changed int
	// Slept is the number of converged cells dropped from the active set.
	Slept int
	// Woken is the number of cells added to the active set.
	Woken    int
	Active   int
	Complete bool
}

// Observer is notified after every committed generation.
type Observer interface {
	OnGeneration(e *Engine, r Report)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(e *Engine, r Report)

func (f ObserverFunc) OnGeneration(e *Engine, r Report) { f(e, r) }

// PendingChange is a conversion decided during evaluation and applied
// during commit.
type PendingChange struct {
	At      grid.Coord
	Species grid.Species
	Color   colorspace.Color
}

// worker owns everything one evaluation goroutine writes.
type worker struct {
	scratch *vote.Scratch
	rand    *rng.Source
	pending []PendingChange
	sleep   []grid.Coord
	wake    []grid.Coord
}

func (w *worker) reset() {
	w.pending = w.pending[:0]
	w.sleep = w.sleep[:0]
	w.wake = w.wake[:0]
}

type Engine struct {
	cfg      Config
	grid     *grid.Grid
	active   *schedule.ActiveSet
	strategy mutation.Strategy
	ambient  *mutation.Ambient
	rng      *rng.Source
	workers  []*worker

	generation int
	complete   bool

	coords []grid.Coord
}

// New validates cfg and builds an engine ready for its first generation.
func New(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	strategy, err := mutation.New(cfg.Strategy, mutation.Options{
		SpiralOffset: cfg.SpiralOffset,
		RainbowStep:  cfg.rainbowStep(),
	})
	if err != nil {
		return nil, &ConfigError{Field: "strategy", Value: cfg.Strategy, Err: ErrUnknownStrategy}
	}

	g, err := grid.New(cfg.Width, cfg.Height, cfg.NumSpecies)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{
		cfg:      cfg,
		grid:     g,
		active:   schedule.NewActiveSet(cfg.Width, cfg.Height),
		strategy: strategy,
	}
	e.workers = make([]*worker, cfg.workers())
	for i := range e.workers {
		e.workers[i] = &worker{scratch: vote.NewScratch(cfg.NumSpecies)}
	}
	e.Reset(cfg.Seed)
	return e, nil
}

// Reset reinitialises cells, schedule and ambient colour from seed.
// Configured seed cells are reapplied; otherwise cells are drawn at random.
func (e *Engine) Reset(seed int64) {
	e.cfg.Seed = seed
	e.rng = rng.New(seed)
	for i, w := range e.workers {
		w.rand = e.rng.Split(uint64(i))
		w.reset()
	}

	if e.cfg.SeedCells != nil {
		for i, sc := range e.cfg.SeedCells {
			e.grid.Set(i%e.cfg.Width, i/e.cfg.Width, sc.Species, sc.Color)
		}
	} else {
		palette := make([]colorspace.Color, e.cfg.NumSpecies)
		for s := range palette {
			palette[s] = colorspace.Random(e.cfg.ColorSpace, e.rng)
		}
		for y := 0; y < e.cfg.Height; y++ {
			for x := 0; x < e.cfg.Width; x++ {
				s := e.rng.IntN(e.cfg.NumSpecies)
				e.grid.Set(x, y, grid.Species(s), palette[s])
			}
		}
	}

	e.ambient = mutation.NewAmbient(colorspace.Random(e.cfg.ColorSpace, e.rng))
	e.active.Fill()
	e.generation = 0
	e.complete = false
}

// Advance runs one generation. Once the engine is complete it is a no-op
// that reports the terminal state.
func (e *Engine) Advance() Report {
	if e.complete {
		return Report{Generation: e.generation, Active: e.active.Len(), Complete: true}
	}

	e.coords = e.active.Coords(e.coords)
	used := parallelFor(len(e.coords), len(e.workers), minChunk, func(c, start, end int) {
		e.evaluate(e.workers[c], e.coords[start:end])
	})

	r := Report{}
	for _, w := range e.workers[:used] {
		for _, p := range w.pending {
			e.grid.Adopt(p.At.X, p.At.Y, p.Species, p.Color)
		}
		r.Changed += len(w.pending)
	}

	before := e.active.Len()
	for _, w := range e.workers[:used] {
		e.active.Except(w.sleep)
	}
	r.Slept = before - e.active.Len()
	afterSleep := e.active.Len()
	for _, w := range e.workers[:used] {
		e.active.Union(w.wake)
	}
	r.Woken = e.active.Len() - afterSleep
	for _, w := range e.workers[:used] {
		w.reset()
	}

	e.ambient.Advance(e.cfg.MutationStrength, e.rng)

	e.generation++
	if r.Changed == 0 || (e.cfg.MaxIterations > 0 && e.generation >= e.cfg.MaxIterations) {
		e.complete = true
	}

	r.Generation = e.generation
	r.Active = e.active.Len()
	r.Complete = e.complete
	return r
}

// evaluate votes on coords against the pre-generation grid. It writes only
// to w.
func (e *Engine) evaluate(w *worker, coords []grid.Coord) {
	for _, at := range coords {
		res := vote.Majority(e.grid, at.X, at.Y, w.scratch, w.rand)
		if res.Converged {
			w.sleep = append(w.sleep, at)
			continue
		}
		if res.Winner == e.grid.At(at.X, at.Y).Species {
			continue
		}

		c := e.strategy.Propose(mutation.Input{
			Grid:     e.grid,
			At:       at,
			Winner:   res.Winner,
			Ambient:  e.ambient,
			Rand:     w.rand,
			Strength: e.cfg.MutationStrength,
		})
		w.pending = append(w.pending, PendingChange{At: at, Species: res.Winner, Color: c})

		ns := e.grid.Neighbors(at.X, at.Y)
		w.wake = append(w.wake, ns[:]...)
	}
}

// Run advances until the engine completes or ctx is done, notifying
// observers after each generation. On cancellation it returns ctx.Err()
// with the engine at a generation boundary.
func (e *Engine) Run(ctx context.Context, observers ...Observer) (Report, error) {
	last := Report{Generation: e.generation, Active: e.active.Len(), Complete: e.complete}
	for !e.complete {
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		default:
		}

		last = e.Advance()
		for _, obs := range observers {
			obs.OnGeneration(e, last)
		}
	}
	return last, nil
}

func (e *Engine) Width() int      { return e.cfg.Width }
func (e *Engine) Height() int     { return e.cfg.Height }
func (e *Engine) NumSpecies() int { return e.cfg.NumSpecies }

// ColorAt is the display colour of the cell at (x, y), wrapped.
func (e *Engine) ColorAt(x, y int) colorspace.Display {
	return e.grid.At(x, y).Color.ToDisplay()
}

func (e *Engine) SpeciesAt(x, y int) grid.Species {
	return e.grid.At(x, y).Species
}

func (e *Engine) ActiveCount() int { return e.active.Len() }
func (e *Engine) IsComplete() bool { return e.complete }
func (e *Engine) Generation() int  { return e.generation }

// Ambient is the current display colour of the drifting ambient state.
func (e *Engine) Ambient() colorspace.Display { return e.ambient.Display() }

// Config returns the configuration the engine was built with. Seed reflects
// the most recent Reset.
func (e *Engine) Config() Config { return e.cfg }

// Census counts cells per species.
func (e *Engine) Census() []int { return e.grid.Census() }

// IsActive reports whether (x, y) will be evaluated next generation.
func (e *Engine) IsActive(x, y int) bool {
	return e.active.Contains(grid.Coord{X: x, Y: y})
}
