package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/territory/internal/engine"
)

func TestStandardMetrics(t *testing.T) {
	ms := Standard(100)
	reports := []engine.Report{
		{Generation: 1, Changed: 10, Active: 80},
		{Generation: 2, Changed: 4, Active: 90},
		{Generation: 3, Changed: 0, Active: 25, Complete: true},
	}
	obs := Observer(ms...)
	for _, r := range reports {
		obs.OnGeneration(nil, r)
	}

	got := Collect(ms...)
	want := map[string]float64{
		"total_changed":      14,
		"peak_active":        90,
		"generations":        3,
		"converged_fraction": 0.75,
	}
	for name, v := range want {
		if math.Abs(got[name]-v) > 1e-9 {
			t.Errorf("%s = %v, want %v", name, got[name], v)
		}
	}

	for _, m := range ms {
		m.Reset()
		if m.Value() != 0 {
			t.Errorf("%s = %v after reset", m.Name(), m.Value())
		}
	}
}

func TestByName(t *testing.T) {
	if _, ok := ByName("peak_active", 10); !ok {
		t.Error("peak_active not found")
	}
	if _, ok := ByName("energy", 10); ok {
		t.Error("unexpected metric")
	}
}
