// Package mutation decides which colour a converting cell adopts.
//
// Strategies form a closed set: [Uniform], [Spiral], [Preservation],
// [Mirror] and [Rainbow]. Every strategy reads the grid as it stood at the
// start of the generation and returns a colour no other cell references.
package mutation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/territory/internal/colorspace"
	"github.com/san-kum/territory/internal/grid"
	"github.com/san-kum/territory/internal/rng"
)

// ErrUnknownStrategy is returned by ParseKind for unrecognised names.
var ErrUnknownStrategy = errors.New("mutation: unknown strategy")

// Kind identifies a strategy.
type Kind uint8

const (
	KindUniform Kind = iota
	KindSpiral
	KindPreservation
	KindMirror
	KindRainbow
)

var kindNames = [...]string{
	KindUniform:      "uniform",
	KindSpiral:       "spiral",
	KindPreservation: "preservation",
	KindMirror:       "mirror",
	KindRainbow:      "rainbow",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("strategy(%d)", uint8(k))
}

// NeedsHue reports whether the strategy only works on hue-bearing colours.
func (k Kind) NeedsHue() bool { return k == KindRainbow }

// Kinds lists every strategy.
func Kinds() []Kind {
	return []Kind{KindUniform, KindSpiral, KindPreservation, KindMirror, KindRainbow}
}

// ParseKind maps a case-insensitive name to a Kind.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range kindNames {
		if s == n {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Input describes one converting cell.
type Input struct {
	Grid     *grid.Grid
	At       grid.Coord
	Winner   grid.Species
	Ambient  *Ambient
	Rand     *rng.Source
	Strength float64
}

func (in Input) own() colorspace.Color {
	return in.Grid.At(in.At.X, in.At.Y).Color
}

// jittered copies c and applies the per-cell mutation.
func (in Input) jittered(c colorspace.Color) colorspace.Color {
	out := c.Copy()
	out.Mutate(in.Strength, in.Rand)
	return out
}

// Strategy proposes the colour for a converting cell.
type Strategy interface {
	Kind() Kind
	Propose(in Input) colorspace.Color

	sealed()
}

// Options tunes the strategies that take parameters.
type Options struct {
	// SpiralOffset rotates the chosen arc midpoint; 4 yields tight spirals
	// and values toward 0 blur them.
	SpiralOffset int
	// RainbowStep is the hue rotation in degrees applied per conversion.
	RainbowStep float64
}

// New returns the strategy for kind.
func New(kind Kind, opts Options) (Strategy, error) {
	switch kind {
	case KindUniform:
		return Uniform{}, nil
	case KindSpiral:
		return Spiral{Offset: opts.SpiralOffset}, nil
	case KindPreservation:
		return Preservation{}, nil
	case KindMirror:
		return Mirror{}, nil
	case KindRainbow:
		return Rainbow{Step: opts.RainbowStep}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, kind)
}

// shuffledNeighbors returns the ring around c in random order.
func shuffledNeighbors(g *grid.Grid, c grid.Coord, r *rng.Source) [8]grid.Coord {
	ns := g.Neighbors(c.X, c.Y)
	r.Shuffle(len(ns), func(i, j int) { ns[i], ns[j] = ns[j], ns[i] })
	return ns
}
