package schedule

import (
	"testing"

	"github.com/san-kum/territory/internal/grid"
)

func TestFillAndCoords(t *testing.T) {
	s := NewActiveSet(3, 2)
	if s.Len() != 0 {
		t.Fatalf("new set should be empty, got %d", s.Len())
	}
	s.Fill()
	if s.Len() != 6 {
		t.Fatalf("expected 6 active, got %d", s.Len())
	}
	coords := s.Coords(nil)
	want := []grid.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}
	for i := range want {
		if coords[i] != want[i] {
			t.Errorf("coords[%d] = %v, want %v", i, coords[i], want[i])
		}
	}
}

func TestUnionExceptDeduplicate(t *testing.T) {
	s := NewActiveSet(4, 4)
	s.Union([]grid.Coord{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 3}})
	if s.Len() != 2 {
		t.Fatalf("expected 2 after union with duplicate, got %d", s.Len())
	}
	s.Except([]grid.Coord{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 0}})
	if s.Len() != 1 {
		t.Fatalf("expected 1 after except, got %d", s.Len())
	}
	if !s.Contains(grid.Coord{X: 2, Y: 3}) || s.Contains(grid.Coord{X: 1, Y: 1}) {
		t.Error("membership incorrect after except")
	}
}

func TestSleepThenWakeKeepsWoken(t *testing.T) {
	s := NewActiveSet(4, 4)
	s.Fill()
	c := grid.Coord{X: 2, Y: 2}

	s.Except([]grid.Coord{c})
	s.Union([]grid.Coord{c})

	if !s.Contains(c) {
		t.Error("a coordinate both slept and woken must stay active")
	}
	if s.Len() != 16 {
		t.Errorf("expected 16 active, got %d", s.Len())
	}
}

func TestCoordsWrapInput(t *testing.T) {
	s := NewActiveSet(3, 3)
	s.Add(grid.Coord{X: -1, Y: 4})
	if !s.Contains(grid.Coord{X: 2, Y: 1}) {
		t.Error("Add should wrap coordinates")
	}
	s.Clear()
	if s.Len() != 0 || len(s.Coords(nil)) != 0 {
		t.Error("Clear should empty the set")
	}
}
