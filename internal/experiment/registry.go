package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/territory/internal/colorspace"
	"github.com/san-kum/territory/internal/config"
	"github.com/san-kum/territory/internal/metrics"
	"github.com/san-kum/territory/internal/mutation"
)

type Registry struct {
	strategies  map[string]mutation.Kind
	colorSpaces map[string]colorspace.Kind
	metrics     map[string]func(cells int) metrics.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		strategies:  make(map[string]mutation.Kind),
		colorSpaces: make(map[string]colorspace.Kind),
		metrics:     make(map[string]func(int) metrics.Metric),
	}

	for _, k := range mutation.Kinds() {
		r.strategies[k.String()] = k
	}
	for _, k := range colorspace.Kinds() {
		r.colorSpaces[k.String()] = k
	}

	r.metrics["total_changed"] = func(int) metrics.Metric { return metrics.NewTotalChanged() }
	r.metrics["peak_active"] = func(int) metrics.Metric { return metrics.NewPeakActive() }
	r.metrics["generations"] = func(int) metrics.Metric { return metrics.NewGenerations() }
	r.metrics["converged_fraction"] = func(cells int) metrics.Metric { return metrics.NewConvergedFraction(cells) }

	return r
}

func (r *Registry) GetMetric(name string, cells int) (metrics.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(cells), nil
}

// Compatible reports whether strategy can run on space.
func (r *Registry) Compatible(strategy, space string) bool {
	s, ok := r.strategies[strategy]
	if !ok {
		return false
	}
	c, ok := r.colorSpaces[space]
	if !ok {
		return false
	}
	return !s.NeedsHue() || c.HasHue()
}

func (r *Registry) ListStrategies() []string  { return sortedKeys(r.strategies) }
func (r *Registry) ListColorSpaces() []string { return sortedKeys(r.colorSpaces) }
func (r *Registry) ListMetrics() []string     { return sortedKeys(r.metrics) }
func (r *Registry) ListPresets() []string     { return config.ListPresets() }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
