package mutation

import (
	"math"

	"github.com/san-kum/territory/internal/colorspace"
	"github.com/san-kum/territory/internal/grid"
)

// Uniform hands every conversion the ambient colour. It applies no per-cell
// jitter since the ambient colour drifts on its own.
type Uniform struct{}

func (Uniform) Kind() Kind { return KindUniform }

func (Uniform) Propose(in Input) colorspace.Color {
	return in.Ambient.Current().Copy()
}

func (Uniform) sealed() {}

// Spiral copies the colour at the angular midpoint of the contiguous arc of
// winning neighbours, rotated by Offset ring steps.
type Spiral struct {
	Offset int
}

func (Spiral) Kind() Kind { return KindSpiral }

func (s Spiral) Propose(in Input) colorspace.Color {
	g := in.Grid
	ns := g.Neighbors(in.At.X, in.At.Y)
	isWinner := func(i int) bool {
		return g.At(ns[i].X, ns[i].Y).Species == in.Winner
	}

	start, end := -1, -1
	prev := isWinner(len(ns) - 1)
	for i := range ns {
		curr := isWinner(i)
		if curr && !prev {
			start = i
			if end >= 0 {
				break
			}
		} else if !curr && prev {
			end = i
			if start >= 0 {
				break
			}
		}
		prev = curr
	}

	length := 0
	switch {
	case start >= 0:
		length = grid.Wrap(end-start, len(ns))
	case isWinner(0):
		start, length = 0, len(ns)
	default:
		return in.jittered(in.own())
	}

	mid := start + length/2
	if length%2 == 0 {
		mid -= in.Rand.IntN(2)
	}
	if length >= 3 {
		mid += in.Rand.IntRange(-1, 1)
	}
	mid = grid.Wrap(mid+s.Offset, len(ns))

	pick := ns[mid]
	if g.At(pick.X, pick.Y).Species != in.Winner {
		// The arc wrapped discontinuously; its start is always a winner.
		pick = ns[start]
	}
	return in.jittered(g.At(pick.X, pick.Y).Color)
}

func (Spiral) sealed() {}

// Preservation copies the winning neighbour whose colour is closest to the
// converting cell's current colour.
type Preservation struct{}

func (Preservation) Kind() Kind { return KindPreservation }

func (Preservation) Propose(in Input) colorspace.Color {
	own := in.own()
	var best colorspace.Color
	lowest := math.Inf(1)
	for _, n := range shuffledNeighbors(in.Grid, in.At, in.Rand) {
		cell := in.Grid.At(n.X, n.Y)
		if cell.Species != in.Winner {
			continue
		}
		d, err := cell.Color.Diff(own)
		if err != nil {
			d = math.MaxFloat64
		}
		if best == nil || d < lowest {
			best, lowest = cell.Color, d
		}
	}
	if best == nil {
		best = own
	}
	return in.jittered(best)
}

func (Preservation) sealed() {}

// Mirror copies from the point reflection of the cell through the grid
// centre, or from a winning neighbour of that reflection.
type Mirror struct{}

func (Mirror) Kind() Kind { return KindMirror }

func (Mirror) Propose(in Input) colorspace.Color {
	g := in.Grid
	m := g.Mirror(in.At.X, in.At.Y)
	if mc := g.At(m.X, m.Y); mc.Species == in.Winner {
		return in.jittered(mc.Color)
	}
	for _, n := range shuffledNeighbors(g, m, in.Rand) {
		if cell := g.At(n.X, n.Y); cell.Species == in.Winner {
			return in.jittered(cell.Color)
		}
	}
	return in.jittered(in.own())
}

func (Mirror) sealed() {}

// Rainbow rotates the hue of the cell's own colour by Step degrees.
// Colours without a hue channel are only jittered.
type Rainbow struct {
	Step float64
}

func (Rainbow) Kind() Kind { return KindRainbow }

func (r Rainbow) Propose(in Input) colorspace.Color {
	c := in.own().Copy()
	if hs, ok := c.(colorspace.HueShifter); ok {
		hs.RotateHue(r.Step)
	}
	c.Mutate(in.Strength, in.Rand)
	return c
}

func (Rainbow) sealed() {}
