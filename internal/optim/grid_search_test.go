package optim

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/san-kum/territory/internal/config"
	"github.com/san-kum/territory/internal/experiment"
)

func TestGridSearchFindsMinimum(t *testing.T) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := config.DefaultConfig()
		cfg.Width, cfg.Height = 12, 12
		cfg.Seed = 3
		for k, v := range params {
			if err := cfg.Set(k, v); err != nil {
				return nil, err
			}
		}
		return experiment.New("search", cfg).WithLogger(quiet), nil
	}

	gs := NewGridSearch(
		[]string{"max_iterations", "species"},
		[][]float64{{1, 3}, {2, 4}},
	)
	best, val, evals, err := gs.Search(context.Background(), build, "generations")
	if err != nil {
		t.Fatal(err)
	}
	if len(evals) != 4 {
		t.Fatalf("evaluated %d points, want 4", len(evals))
	}
	if val != 1 || best["max_iterations"] != 1 {
		t.Fatalf("best = %v (%v), want max_iterations=1 with 1 generation", best, val)
	}
}

func TestGridSearchRecordsFailures(t *testing.T) {
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := config.DefaultConfig()
		cfg.Width = int(params["width"])
		cfg.Height = 8
		cfg.MaxIterations = 100
		return experiment.New("bad", cfg).WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), nil
	}

	gs := NewGridSearch([]string{"width"}, [][]float64{{0, 8}})
	best, _, evals, err := gs.Search(context.Background(), build, "generations")
	if err != nil {
		t.Fatal(err)
	}
	if evals[0].Err == nil || evals[1].Err != nil {
		t.Fatalf("evals = %+v", evals)
	}
	if best["width"] != 8 {
		t.Fatalf("best = %v", best)
	}
}

func TestGridSearchOrderLastAxisFastest(t *testing.T) {
	gs := NewGridSearch([]string{"a", "b"}, [][]float64{{1, 2}, {10, 20, 30}})
	if gs.Size() != 6 {
		t.Fatalf("size = %d", gs.Size())
	}
	var got [][2]float64
	for idx := range gs.points() {
		p := gs.at(idx)
		got = append(got, [2]float64{p["a"], p["b"]})
	}
	want := [][2]float64{{1, 10}, {1, 20}, {1, 30}, {2, 10}, {2, 20}, {2, 30}}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGridSearchEmptyAxis(t *testing.T) {
	gs := NewGridSearch([]string{"a", "b"}, [][]float64{{1}, {}})
	_, _, evals, err := gs.Search(context.Background(), nil, "generations")
	if err != nil || len(evals) != 0 {
		t.Fatalf("evals = %v, err = %v", evals, err)
	}
}

func TestGridSearchRepeatsVarySeed(t *testing.T) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	var built []*experiment.Experiment
	build := func(map[string]float64) (*experiment.Experiment, error) {
		cfg := config.DefaultConfig()
		cfg.Width, cfg.Height = 8, 8
		cfg.Seed = 11
		cfg.MaxIterations = 2
		exp := experiment.New("rep", cfg).WithLogger(quiet)
		built = append(built, exp)
		return exp, nil
	}

	gs := NewGridSearch([]string{"species"}, [][]float64{{3}}).WithRepeats(3)
	_, _, evals, err := gs.Search(context.Background(), build, "generations")
	if err != nil {
		t.Fatal(err)
	}
	if len(evals) != 1 || evals[0].Err != nil {
		t.Fatalf("evals = %+v", evals)
	}
	if len(built) != 3 {
		t.Fatalf("built %d experiments, want 3", len(built))
	}
	for i, exp := range built {
		if got := exp.Config().Seed; got != 11+int64(i) {
			t.Fatalf("repeat %d seed = %d", i, got)
		}
	}
	if v := evals[0].Value; v < 1 || v > 2 {
		t.Fatalf("mean generations = %v", v)
	}
}

func TestGridSearchUnknownMetric(t *testing.T) {
	build := func(map[string]float64) (*experiment.Experiment, error) {
		cfg := config.DefaultConfig()
		cfg.Width, cfg.Height = 6, 6
		cfg.MaxIterations = 1
		return experiment.New("m", cfg).WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), nil
	}
	gs := NewGridSearch([]string{"species"}, [][]float64{{2}})
	best, _, evals, err := gs.Search(context.Background(), build, "no_such_metric")
	if err != nil {
		t.Fatal(err)
	}
	if best != nil || !errors.Is(evals[0].Err, errNoMetric) {
		t.Fatalf("best = %v, evals = %+v", best, evals)
	}
}

func TestGridSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gs := NewGridSearch([]string{"species"}, [][]float64{{2, 3}})
	_, _, evals, err := gs.Search(ctx, nil, "generations")
	if !errors.Is(err, context.Canceled) || len(evals) != 0 {
		t.Fatalf("evals = %v, err = %v", evals, err)
	}
}
