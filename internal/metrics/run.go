package metrics

import "github.com/san-kum/territory/internal/engine"

// TotalChanged sums species conversions over the run.
type TotalChanged struct {
	total int
}

func NewTotalChanged() *TotalChanged { return &TotalChanged{} }

func (m *TotalChanged) Name() string            { return "total_changed" }
func (m *TotalChanged) Observe(r engine.Report) { m.total += r.Changed }
func (m *TotalChanged) Value() float64          { return float64(m.total) }
func (m *TotalChanged) Reset()                  { m.total = 0 }

// PeakActive is the largest active set seen after any generation.
type PeakActive struct {
	peak int
}

func NewPeakActive() *PeakActive { return &PeakActive{} }

func (m *PeakActive) Name() string { return "peak_active" }

func (m *PeakActive) Observe(r engine.Report) {
	if r.Active > m.peak {
		m.peak = r.Active
	}
}

func (m *PeakActive) Value() float64 { return float64(m.peak) }
func (m *PeakActive) Reset()         { m.peak = 0 }

// Generations counts generations until completion.
type Generations struct {
	n int
}

func NewGenerations() *Generations { return &Generations{} }

func (m *Generations) Name() string            { return "generations" }
func (m *Generations) Observe(r engine.Report) { m.n = r.Generation }
func (m *Generations) Value() float64          { return float64(m.n) }
func (m *Generations) Reset()                  { m.n = 0 }

// ConvergedFraction is the share of cells asleep after the last generation.
type ConvergedFraction struct {
	cells  int
	active int
	seen   bool
}

func NewConvergedFraction(cells int) *ConvergedFraction {
	return &ConvergedFraction{cells: cells}
}

func (m *ConvergedFraction) Name() string { return "converged_fraction" }

func (m *ConvergedFraction) Observe(r engine.Report) {
	m.active = r.Active
	m.seen = true
}

func (m *ConvergedFraction) Value() float64 {
	if !m.seen || m.cells == 0 {
		return 0
	}
	return 1 - float64(m.active)/float64(m.cells)
}

func (m *ConvergedFraction) Reset() {
	m.active = 0
	m.seen = false
}
