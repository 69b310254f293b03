// Package vote resolves the majority species around a cell.
package vote

import (
	"math/bits"

	"github.com/san-kum/territory/internal/grid"
)

// BitSource supplies fair random bits.
type BitSource interface {
	NextUnbiasedBool() bool
}

// Result is the outcome of a vote at one cell.
type Result struct {
	Winner grid.Species
	// Converged is set when all eight neighbours share the cell's own
	// species, so no vote at this cell can change until a neighbour does.
	Converged bool
}

// Scratch holds per-goroutine buffers so Majority does not allocate.
type Scratch struct {
	counts []int
	tied   []grid.Species
}

// NewScratch sizes buffers for numSpecies species.
func NewScratch(numSpecies int) *Scratch {
	return &Scratch{counts: make([]int, numSpecies), tied: make([]grid.Species, 0, 8)}
}

// Counts exposes the tally from the most recent Majority call.
func (s *Scratch) Counts() []int { return s.counts }

// Tally counts species over the eight neighbours of (x, y). On grids one
// cell wide or high some neighbours wrap onto the cell itself; those are
// skipped, so the tally can total fewer than eight.
func Tally(g *grid.Grid, x, y int, counts []int) {
	for i := range counts {
		counts[i] = 0
	}
	self := grid.Coord{X: grid.Wrap(x, g.Width()), Y: grid.Wrap(y, g.Height())}
	for _, n := range g.Neighbors(x, y) {
		if n == self {
			continue
		}
		counts[g.At(n.X, n.Y).Species]++
	}
}

// Majority returns the most common neighbour species at (x, y). Ties are
// broken uniformly at random among the tied species. The grid is only read.
func Majority(g *grid.Grid, x, y int, s *Scratch, src BitSource) Result {
	Tally(g, x, y, s.counts)
	own := g.At(x, y).Species

	// A 1x1 world has no neighbours and nothing that could change it.
	if g.Width() == 1 && g.Height() == 1 {
		return Result{Winner: own, Converged: true}
	}

	best := -1
	s.tied = s.tied[:0]
	for sp, c := range s.counts {
		switch {
		case c > best:
			best = c
			s.tied = append(s.tied[:0], grid.Species(sp))
		case c == best:
			s.tied = append(s.tied, grid.Species(sp))
		}
	}

	winner := s.tied[0]
	if len(s.tied) > 1 {
		winner = s.tied[UniformIndex(len(s.tied), src)]
	}

	return Result{Winner: winner, Converged: s.counts[own] == 8}
}

// UniformIndex draws an index in [0, n) from fair bits by rejection
// sampling, so every index is equally likely. A two-way tie costs one bit.
func UniformIndex(n int, src BitSource) int {
	if n <= 1 {
		return 0
	}
	width := bits.Len(uint(n - 1))
	for {
		v := 0
		for i := 0; i < width; i++ {
			v <<= 1
			if src.NextUnbiasedBool() {
				v |= 1
			}
		}
		if v < n {
			return v
		}
	}
}
