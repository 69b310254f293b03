package analysis

import "github.com/san-kum/territory/internal/telemetry"

// DetectCycle looks for the smallest period p <= maxPeriod such that the
// last p*repeats values of series are p-periodic. It returns 0 when there
// is none.
func DetectCycle(series []int, maxPeriod, repeats int) int {
	repeats = max(repeats, 2)
	for p := 1; p <= maxPeriod; p++ {
		window := p * repeats
		if window > len(series) {
			break
		}
		tail := series[len(series)-window:]
		periodic := true
		for i := p; i < window; i++ {
			if tail[i] != tail[i-p] {
				periodic = false
				break
			}
		}
		if periodic {
			return p
		}
	}
	return 0
}

// Summary describes how a run evolved.
type Summary struct {
	Generations int
	// Settled is true when the last generation changed nothing.
	Settled bool
	// Period is the exact cycle length of the changed count at the end of
	// an unsettled run, or 0.
	Period int
	// HalfActive is the first generation whose active set was at most half
	// of the first generation's, or -1.
	HalfActive int
	// SpectralPeriod and SpectralShare describe the strongest periodic
	// component of the changed count.
	SpectralPeriod float64
	SpectralShare  float64
	PeakChanged    int
}

const (
	maxCyclePeriod = 16
	cycleRepeats   = 4
)

// Analyze summarises telemetry records in generation order.
func Analyze(stats []telemetry.Stats) Summary {
	s := Summary{HalfActive: -1}
	if len(stats) == 0 {
		return s
	}

	last := stats[len(stats)-1]
	s.Generations = last.Generation
	s.Settled = last.Changed == 0

	changed := make([]int, len(stats))
	series := make([]float64, len(stats))
	first := stats[0].Active
	for i, st := range stats {
		changed[i] = st.Changed
		series[i] = float64(st.Changed)
		s.PeakChanged = max(s.PeakChanged, st.Changed)
		if s.HalfActive < 0 && 2*st.Active <= first {
			s.HalfActive = st.Generation
		}
	}

	if !s.Settled {
		s.Period = DetectCycle(changed, maxCyclePeriod, cycleRepeats)
	}
	s.SpectralPeriod, s.SpectralShare = DominantPeriod(series)
	return s
}
