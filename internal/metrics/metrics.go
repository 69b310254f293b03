// Package metrics reduces a run to a handful of scalar figures.
package metrics

import "github.com/san-kum/territory/internal/engine"

type Metric interface {
	Name() string
	Observe(r engine.Report)
	Value() float64
	Reset()
}

// Observer feeds every generation report to ms.
func Observer(ms ...Metric) engine.Observer {
	return engine.ObserverFunc(func(_ *engine.Engine, r engine.Report) {
		for _, m := range ms {
			m.Observe(r)
		}
	})
}

// Collect snapshots the current values by name.
func Collect(ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Standard returns the metrics every run records.
func Standard(cells int) []Metric {
	return []Metric{
		NewTotalChanged(),
		NewPeakActive(),
		NewGenerations(),
		NewConvergedFraction(cells),
	}
}

// ByName constructs one of the standard metrics.
func ByName(name string, cells int) (Metric, bool) {
	for _, m := range Standard(cells) {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}
