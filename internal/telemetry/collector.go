package telemetry

import (
	"time"

	"github.com/san-kum/territory/internal/engine"
)

// Collector is an engine observer that keeps a Stats record per generation.
type Collector struct {
	// CensusEvery controls how often species populations are recounted.
	// Values below 1 recount every generation.
	CensusEvery int

	records []Stats
	census  Census
	last    time.Time
	sinks   []func(Stats)
}

func NewCollector(censusEvery int) *Collector {
	return &Collector{CensusEvery: censusEvery}
}

// Subscribe registers fn to receive each record as it is produced.
func (c *Collector) Subscribe(fn func(Stats)) {
	c.sinks = append(c.sinks, fn)
}

func (c *Collector) OnGeneration(e *engine.Engine, r engine.Report) {
	now := time.Now()
	s := Stats{
		Generation: r.Generation,
		Changed:    r.Changed,
		Slept:      r.Slept,
		Woken:      r.Woken,
		Active:     r.Active,
	}
	if !c.last.IsZero() {
		s.ElapsedMs = float64(now.Sub(c.last).Microseconds()) / 1000
	}
	c.last = now

	every := c.CensusEvery
	if every < 1 {
		every = 1
	}
	if e != nil && (len(c.records) == 0 || r.Generation%every == 0 || r.Complete) {
		c.census = Summarize(e.Census())
	}
	s.apply(c.census)

	c.records = append(c.records, s)
	for _, fn := range c.sinks {
		fn(s)
	}
}

// Records returns every record so far. The slice must not be modified.
func (c *Collector) Records() []Stats { return c.records }

// Latest returns the most recent record, if any.
func (c *Collector) Latest() (Stats, bool) {
	if len(c.records) == 0 {
		return Stats{}, false
	}
	return c.records[len(c.records)-1], true
}

// Series extracts one column for plotting.
func (c *Collector) Series(field func(Stats) float64) []float64 {
	out := make([]float64, len(c.records))
	for i, s := range c.records {
		out[i] = field(s)
	}
	return out
}

func (c *Collector) Reset() {
	c.records = c.records[:0]
	c.census = Census{}
	c.last = time.Time{}
}
