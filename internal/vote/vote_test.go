package vote

import (
	"math"
	"testing"

	"github.com/san-kum/territory/internal/colorspace"
	"github.com/san-kum/territory/internal/grid"
	"github.com/san-kum/territory/internal/rng"
)

// build returns a 3x3 grid with the centre set to own and the ring, in
// clockwise order from north, set to ring.
func build(t *testing.T, numSpecies int, own grid.Species, ring [8]grid.Species) *grid.Grid {
	t.Helper()
	g, err := grid.New(3, 3, numSpecies)
	if err != nil {
		t.Fatal(err)
	}
	c := &colorspace.RGB{}
	g.Set(1, 1, own, c)
	for i, n := range g.Neighbors(1, 1) {
		g.Set(n.X, n.Y, ring[i], c)
	}
	return g
}

func TestMajorityUniqueWinner(t *testing.T) {
	tests := []struct {
		name string
		own  grid.Species
		ring [8]grid.Species
		want grid.Species
	}{
		{"clear majority", 0, [8]grid.Species{1, 1, 1, 1, 1, 0, 0, 2}, 1},
		{"own wins", 2, [8]grid.Species{2, 2, 2, 0, 1, 2, 3, 2}, 2},
		{"plurality", 0, [8]grid.Species{3, 3, 3, 1, 1, 2, 2, 0}, 3},
		{"highest index", 0, [8]grid.Species{3, 3, 3, 3, 3, 0, 0, 1}, 3},
	}

	src := rng.New(1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, 4, tt.own, tt.ring)
			s := NewScratch(4)
			for i := 0; i < 20; i++ {
				res := Majority(g, 1, 1, s, src)
				if res.Winner != tt.want {
					t.Fatalf("winner = %d, want %d", res.Winner, tt.want)
				}
				if res.Converged {
					t.Fatal("mixed neighbourhood must not converge")
				}
			}
		})
	}
}

func TestMajorityConverged(t *testing.T) {
	g := build(t, 2, 1, [8]grid.Species{1, 1, 1, 1, 1, 1, 1, 1})
	res := Majority(g, 1, 1, NewScratch(2), rng.New(2))
	if !res.Converged || res.Winner != 1 {
		t.Errorf("expected converged winner 1, got %+v", res)
	}

	g = build(t, 2, 0, [8]grid.Species{1, 1, 1, 1, 1, 1, 1, 1})
	res = Majority(g, 1, 1, NewScratch(2), rng.New(2))
	if res.Converged || res.Winner != 1 {
		t.Errorf("a cell surrounded by another species is not converged: %+v", res)
	}
}

func TestTallySkipsWrappedSelf(t *testing.T) {
	g, err := grid.New(1, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	c := &colorspace.RGB{}
	g.Set(0, 0, 1, c)
	g.Set(0, 1, 0, c)
	g.Set(0, 2, 1, c)

	counts := make([]int, 2)
	Tally(g, 0, 1, counts)
	if counts[0] != 0 || counts[1] != 6 {
		t.Fatalf("counts = %v, want [0 6]", counts)
	}

	res := Majority(g, 0, 1, NewScratch(2), rng.New(1))
	if res.Winner != 1 || res.Converged {
		t.Fatalf("result = %+v, want winner 1 not converged", res)
	}
}

func TestMajoritySingleCell(t *testing.T) {
	g, err := grid.New(1, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	g.Set(0, 0, 2, &colorspace.RGB{})
	res := Majority(g, 0, 0, NewScratch(3), rng.New(1))
	if res.Winner != 2 || !res.Converged {
		t.Fatalf("result = %+v, want own species and converged", res)
	}
}

func TestMajorityTieIsUnbiased(t *testing.T) {
	g := build(t, 3, 2, [8]grid.Species{0, 0, 0, 0, 1, 1, 1, 1})
	s := NewScratch(3)
	src := rng.New(42)

	const n = 40000
	wins := [3]int{}
	for i := 0; i < n; i++ {
		wins[Majority(g, 1, 1, s, src).Winner]++
	}
	if wins[2] != 0 {
		t.Fatalf("species with no neighbours won %d times", wins[2])
	}
	if frac := float64(wins[0]) / n; math.Abs(frac-0.5) > 0.015 {
		t.Errorf("tie-break biased: species 0 won %.3f of ties", frac)
	}
}

func TestUniformIndexDistribution(t *testing.T) {
	src := rng.New(9)
	for _, k := range []int{2, 3, 5, 8} {
		counts := make([]int, k)
		const n = 30000
		for i := 0; i < n; i++ {
			counts[UniformIndex(k, src)]++
		}
		for idx, c := range counts {
			want := float64(n) / float64(k)
			if math.Abs(float64(c)-want) > want*0.08 {
				t.Errorf("k=%d index %d drawn %d times, want ~%.0f", k, idx, c, want)
			}
		}
	}
	if UniformIndex(1, src) != 0 {
		t.Error("UniformIndex(1) must be 0")
	}
}
