package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/territory/internal/colorspace"
)

func TestWrapRange(t *testing.T) {
	for m := 1; m <= 17; m++ {
		for v := -200; v <= 200; v++ {
			got := Wrap(v, m)
			if got < 0 || got >= m {
				t.Fatalf("Wrap(%d, %d) = %d out of range", v, m, got)
			}
			want := ((v % m) + m) % m
			if got != want {
				t.Fatalf("Wrap(%d, %d) = %d, want %d", v, m, got, want)
			}
		}
	}
}

func TestWrapExtremes(t *testing.T) {
	values := []int{math.MaxInt, math.MinInt, math.MaxInt / 2, math.MinInt / 2, math.MaxInt / 3, -math.MaxInt / 3}
	for _, m := range []int{1, 2, 3, 7, 256, 1 << 20} {
		for _, v := range values {
			got := Wrap(v, m)
			if got < 0 || got >= m {
				t.Fatalf("Wrap(%d, %d) = %d out of range", v, m, got)
			}
			if want := ((v % m) + m) % m; got != want {
				t.Fatalf("Wrap(%d, %d) = %d, want %d", v, m, got, want)
			}
		}
	}

	g, err := New(7, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if c := g.At(math.MaxInt, math.MinInt); c.X != Wrap(math.MaxInt, 7) || c.Y != Wrap(math.MinInt, 3) {
		t.Fatalf("At(MaxInt, MinInt) = (%d, %d)", c.X, c.Y)
	}
}

func TestNewRejectsDegenerate(t *testing.T) {
	tests := []struct {
		name    string
		w, h, n int
		want    error
	}{
		{"zero width", 0, 4, 2, ErrInvalidDimensions},
		{"negative height", 4, -1, 2, ErrInvalidDimensions},
		{"no species", 4, 4, 0, ErrInvalidSpecies},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.w, tt.h, tt.n); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNeighborsWrapAndOrder(t *testing.T) {
	g, err := New(5, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	got := g.Neighbors(0, 0)
	want := [8]Coord{{0, 3}, {1, 3}, {1, 0}, {1, 1}, {0, 1}, {4, 1}, {4, 0}, {4, 3}}
	if got != want {
		t.Errorf("Neighbors(0,0) = %v, want %v", got, want)
	}

	seen := map[Coord]bool{}
	for _, c := range g.Neighbors(2, 2) {
		if c == (Coord{2, 2}) {
			t.Error("neighbourhood must exclude the cell itself")
		}
		seen[c] = true
	}
	if len(seen) != 8 {
		t.Errorf("expected 8 distinct neighbours, got %d", len(seen))
	}
}

func TestAtWrapsCoordinates(t *testing.T) {
	g, _ := New(3, 3, 2)
	g.Set(2, 2, 1, &colorspace.RGB{R: 1})
	if g.At(-1, -1).Species != 1 {
		t.Error("At(-1,-1) should alias (2,2)")
	}
	if c := g.At(5, 5); c.X != 2 || c.Y != 2 {
		t.Errorf("At(5,5) returned cell at (%d,%d)", c.X, c.Y)
	}
}

func TestSetCopiesColour(t *testing.T) {
	g, _ := New(2, 2, 2)
	c := &colorspace.RGB{R: 10}
	g.Set(0, 0, 0, c)
	c.R = 200
	if got := g.At(0, 0).Color.(*colorspace.RGB).R; got != 10 {
		t.Errorf("cell colour aliased caller's value: R=%v", got)
	}
}

func TestSetPanicsOnBadSpecies(t *testing.T) {
	g, _ := New(2, 2, 2)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range species")
		}
	}()
	g.Set(0, 0, 2, &colorspace.RGB{})
}

func TestMirrorAndCensus(t *testing.T) {
	g, _ := New(4, 3, 3)
	if m := g.Mirror(0, 0); m != (Coord{3, 2}) {
		t.Errorf("Mirror(0,0) = %v", m)
	}
	if m := g.Mirror(1, 1); m != (Coord{2, 1}) {
		t.Errorf("Mirror(1,1) = %v", m)
	}

	g.Set(0, 0, 2, &colorspace.RGB{})
	g.Set(1, 0, 2, &colorspace.RGB{})
	census := g.Census()
	if census[0] != 10 || census[2] != 2 {
		t.Errorf("unexpected census %v", census)
	}
}
