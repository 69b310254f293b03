// Package optim explores configuration space for the automaton.
package optim

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/territory/internal/experiment"
)

// Builder returns an unstarted experiment for one grid point.
type Builder func(params map[string]float64) (*experiment.Experiment, error)

// GridSearch evaluates the cartesian product of per-parameter value lists
// and keeps the point with the lowest metric.
type GridSearch struct {
	axes    []axis
	repeats int
}

type axis struct {
	name   string
	values []float64
}

// NewGridSearch pairs params[i] with ranges[i]. Extra entries on either
// side are ignored.
func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	n := min(len(params), len(ranges))
	g := &GridSearch{axes: make([]axis, n), repeats: 1}
	for i := range n {
		g.axes[i] = axis{name: params[i], values: ranges[i]}
	}
	return g
}

// WithRepeats runs every point n times and scores it by the mean metric.
// Repeat k adds k to a non-zero configured seed so each repeat sees a
// different initial grid.
func (g *GridSearch) WithRepeats(n int) *GridSearch {
	g.repeats = max(n, 1)
	return g
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	if len(g.axes) == 0 {
		return 0
	}
	n := 1
	for _, a := range g.axes {
		n *= len(a.values)
	}
	return n
}

// Evaluation is one visited point of the grid.
type Evaluation struct {
	Params map[string]float64
	Value  float64
	StdDev float64
	Err    error
}

// Search visits every grid point in row-major order, last parameter
// fastest, and returns the point minimising metricName. Points that fail
// to build or run are recorded with their error and skipped. A cancelled
// context stops the walk and is returned alongside the points visited so far.
func (g *GridSearch) Search(ctx context.Context, build Builder, metricName string) (map[string]float64, float64, []Evaluation, error) {
	var (
		best       = math.Inf(1)
		bestParams map[string]float64
		evals      = make([]Evaluation, 0, g.Size())
	)

	for idx := range g.points() {
		if err := ctx.Err(); err != nil {
			return bestParams, best, evals, err
		}
		params := g.at(idx)
		ev := g.evaluate(ctx, build, params, metricName)
		evals = append(evals, ev)
		if ev.Err == nil && ev.Value < best {
			best, bestParams = ev.Value, maps.Clone(params)
		}
	}
	return bestParams, best, evals, ctx.Err()
}

// points yields odometer indices over the axes.
func (g *GridSearch) points() func(yield func([]int) bool) {
	return func(yield func([]int) bool) {
		if g.Size() == 0 {
			return
		}
		idx := make([]int, len(g.axes))
		for {
			if !yield(idx) {
				return
			}
			d := len(idx) - 1
			for ; d >= 0; d-- {
				idx[d]++
				if idx[d] < len(g.axes[d].values) {
					break
				}
				idx[d] = 0
			}
			if d < 0 {
				return
			}
		}
	}
}

func (g *GridSearch) at(idx []int) map[string]float64 {
	p := make(map[string]float64, len(idx))
	for d, i := range idx {
		p[g.axes[d].name] = g.axes[d].values[i]
	}
	return p
}

func (g *GridSearch) evaluate(ctx context.Context, build Builder, params map[string]float64, metricName string) Evaluation {
	ev := Evaluation{Params: params}
	samples := make([]float64, 0, g.repeats)
	for rep := range g.repeats {
		v, err := runOnce(ctx, build, params, metricName, rep)
		if err != nil {
			ev.Err = err
			return ev
		}
		samples = append(samples, v)
	}
	ev.Value, ev.StdDev = stat.MeanStdDev(samples, nil)
	if math.IsNaN(ev.StdDev) {
		ev.StdDev = 0
	}
	return ev
}

var errNoMetric = errors.New("metric not reported")

func runOnce(ctx context.Context, build Builder, params map[string]float64, metricName string, rep int) (float64, error) {
	exp, err := build(params)
	if err != nil {
		return 0, err
	}
	if cfg := exp.Config(); rep > 0 && cfg.Seed != 0 {
		cfg.Seed += int64(rep)
	}
	if err := exp.Setup(); err != nil {
		return 0, err
	}
	res, err := exp.Run(ctx)
	if err != nil {
		return 0, err
	}
	v, ok := res.Metrics[metricName]
	if !ok {
		return 0, fmt.Errorf("%w: %s", errNoMetric, metricName)
	}
	return v, nil
}
