// Package grid holds the toroidal world of cells.
package grid

import (
	"errors"
	"fmt"

	"github.com/san-kum/territory/internal/colorspace"
)

var (
	// ErrInvalidDimensions is returned for non-positive widths or heights.
	ErrInvalidDimensions = errors.New("grid: dimensions must be positive")

	// ErrInvalidSpecies is returned for a non-positive species count.
	ErrInvalidSpecies = errors.New("grid: species count must be positive")
)

// Species labels the territory a cell belongs to, in [0, numSpecies).
type Species int

// Coord is a wrapped grid position.
type Coord struct {
	X, Y int
}

// Cell is one grid position. Its colour is owned exclusively by the cell.
type Cell struct {
	Species Species
	Color   colorspace.Color
	X, Y    int
}

// ring lists neighbour offsets clockwise on screen (y grows downward),
// starting at north. Spiral colour propagation depends on this order.
var ring = [8]Coord{
	{0, -1},  // N
	{1, -1},  // NE
	{1, 0},   // E
	{1, 1},   // SE
	{0, 1},   // S
	{-1, 1},  // SW
	{-1, 0},  // W
	{-1, -1}, // NW
}

// Ring exposes the neighbour offsets in their fixed clockwise order.
func Ring() [8]Coord { return ring }

// Wrap maps v into [0, m) for any integer v and m > 0, including values
// near the ends of the int range.
func Wrap(v, m int) int {
	r := v % m
	if r < 0 {
		r += m
	}
	return r
}

// Grid is a fixed-size toroidal array of cells in row-major order.
type Grid struct {
	w, h       int
	numSpecies int
	cells      []Cell
}

// New allocates a w*h grid. Cells start as species 0 with no colour; callers
// populate them with Set before use.
func New(w, h, numSpecies int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	if numSpecies <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSpecies, numSpecies)
	}
	g := &Grid{w: w, h: h, numSpecies: numSpecies, cells: make([]Cell, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := &g.cells[y*w+x]
			c.X, c.Y = x, y
		}
	}
	return g, nil
}

func (g *Grid) Width() int      { return g.w }
func (g *Grid) Height() int     { return g.h }
func (g *Grid) NumSpecies() int { return g.numSpecies }
func (g *Grid) Len() int        { return len(g.cells) }

// Index returns the linear index of the wrapped coordinates.
func (g *Grid) Index(x, y int) int {
	return Wrap(y, g.h)*g.w + Wrap(x, g.w)
}

// At returns the cell at the wrapped coordinates.
func (g *Grid) At(x, y int) *Cell {
	return &g.cells[g.Index(x, y)]
}

// AtIndex returns the cell at a linear index produced by Index.
func (g *Grid) AtIndex(i int) *Cell {
	return &g.cells[i]
}

// Set assigns species and a private copy of c to the cell at (x, y).
// An out-of-range species is a logic defect and panics.
func (g *Grid) Set(x, y int, species Species, c colorspace.Color) {
	g.checkSpecies(species)
	cell := g.At(x, y)
	cell.Species = species
	cell.Color = c.Copy()
}

// Adopt is Set without the defensive copy, for colours the caller has
// already made private to this cell.
func (g *Grid) Adopt(x, y int, species Species, c colorspace.Color) {
	g.checkSpecies(species)
	cell := g.At(x, y)
	cell.Species = species
	cell.Color = c
}

func (g *Grid) checkSpecies(s Species) {
	if s < 0 || int(s) >= g.numSpecies {
		panic(fmt.Sprintf("grid: species %d outside [0, %d)", s, g.numSpecies))
	}
}

// Neighbors returns the eight wrapped neighbour coordinates in ring order.
func (g *Grid) Neighbors(x, y int) [8]Coord {
	var out [8]Coord
	for i, d := range ring {
		out[i] = Coord{X: Wrap(x+d.X, g.w), Y: Wrap(y+d.Y, g.h)}
	}
	return out
}

// Mirror returns the point reflection of (x, y) through the grid centre.
func (g *Grid) Mirror(x, y int) Coord {
	return Coord{X: g.w - 1 - Wrap(x, g.w), Y: g.h - 1 - Wrap(y, g.h)}
}

// Census counts cells per species.
func (g *Grid) Census() []int {
	counts := make([]int, g.numSpecies)
	for i := range g.cells {
		counts[g.cells[i].Species]++
	}
	return counts
}
