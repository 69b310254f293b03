// Package schedule tracks which cells are eligible for evaluation.
//
// A coordinate absent from the ActiveSet was, the last time it was
// evaluated, surrounded by eight cells of its own species. It re-enters
// the set as soon as any of its neighbours changes.
package schedule

import "github.com/san-kum/territory/internal/grid"

// ActiveSet is a set of grid coordinates backed by a dense membership table.
type ActiveSet struct {
	w, h   int
	member []bool
	n      int
}

// NewActiveSet returns an empty set for a w*h grid.
func NewActiveSet(w, h int) *ActiveSet {
	return &ActiveSet{w: w, h: h, member: make([]bool, w*h)}
}

func (s *ActiveSet) index(c grid.Coord) int {
	return grid.Wrap(c.Y, s.h)*s.w + grid.Wrap(c.X, s.w)
}

// Fill marks every coordinate active.
func (s *ActiveSet) Fill() {
	for i := range s.member {
		s.member[i] = true
	}
	s.n = len(s.member)
}

// Clear empties the set.
func (s *ActiveSet) Clear() {
	for i := range s.member {
		s.member[i] = false
	}
	s.n = 0
}

// Len is the number of active coordinates.
func (s *ActiveSet) Len() int { return s.n }

func (s *ActiveSet) Contains(c grid.Coord) bool { return s.member[s.index(c)] }

func (s *ActiveSet) Add(c grid.Coord) {
	i := s.index(c)
	if !s.member[i] {
		s.member[i] = true
		s.n++
	}
}

func (s *ActiveSet) Remove(c grid.Coord) {
	i := s.index(c)
	if s.member[i] {
		s.member[i] = false
		s.n--
	}
}

// Union adds every coordinate in cs.
func (s *ActiveSet) Union(cs []grid.Coord) {
	for _, c := range cs {
		s.Add(c)
	}
}

// Except removes every coordinate in cs.
func (s *ActiveSet) Except(cs []grid.Coord) {
	for _, c := range cs {
		s.Remove(c)
	}
}

// Coords appends the active coordinates to dst in row-major order.
func (s *ActiveSet) Coords(dst []grid.Coord) []grid.Coord {
	dst = dst[:0]
	if s.n == 0 {
		return dst
	}
	for i, ok := range s.member {
		if ok {
			dst = append(dst, grid.Coord{X: i % s.w, Y: i / s.w})
		}
	}
	return dst
}
