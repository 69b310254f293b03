// Package telemetry records per-generation statistics of a run.
package telemetry

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Stats is one generation's record.
type Stats struct {
	Generation int `csv:"generation"`
	Changed    int `csv:"changed"`
	Slept      int `csv:"slept"`
	Woken      int `csv:"woken"`
	Active     int `csv:"active"`

	// Census figures, refreshed every CensusEvery generations.
	Surviving     int     `csv:"surviving"`
	Dominant      int     `csv:"dominant"`
	DominantShare float64 `csv:"dominant_share"`
	Diversity     float64 `csv:"diversity"` // Shannon entropy in nats
	MeanTerritory float64 `csv:"territory_mean"`
	StdTerritory  float64 `csv:"territory_std"`

	ElapsedMs float64 `csv:"elapsed_ms"`
}

// Census holds the figures derived from species populations.
type Census struct {
	Surviving     int
	Dominant      int
	DominantShare float64
	Diversity     float64
	MeanTerritory float64
	StdTerritory  float64
}

// Summarize reduces per-species populations.
func Summarize(populations []int) Census {
	var c Census
	total := 0
	for _, n := range populations {
		total += n
	}
	if total == 0 {
		return c
	}

	probs := make([]float64, 0, len(populations))
	sizes := make([]float64, 0, len(populations))
	best := -1
	for s, n := range populations {
		if n == 0 {
			continue
		}
		c.Surviving++
		probs = append(probs, float64(n)/float64(total))
		sizes = append(sizes, float64(n))
		if best < 0 || n > populations[best] {
			best = s
		}
	}

	c.Dominant = best
	c.DominantShare = float64(populations[best]) / float64(total)
	c.Diversity = stat.Entropy(probs)
	if len(sizes) > 1 {
		c.MeanTerritory, c.StdTerritory = stat.MeanStdDev(sizes, nil)
	} else {
		c.MeanTerritory = sizes[0]
	}
	if math.IsNaN(c.StdTerritory) {
		c.StdTerritory = 0
	}
	return c
}

func (s *Stats) apply(c Census) {
	s.Surviving = c.Surviving
	s.Dominant = c.Dominant
	s.DominantShare = c.DominantShare
	s.Diversity = c.Diversity
	s.MeanTerritory = c.MeanTerritory
	s.StdTerritory = c.StdTerritory
}

// LogValue implements slog.LogValuer for structured logging.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("changed", s.Changed),
		slog.Int("slept", s.Slept),
		slog.Int("woken", s.Woken),
		slog.Int("active", s.Active),
		slog.Int("surviving", s.Surviving),
		slog.Int("dominant", s.Dominant),
		slog.Float64("dominant_share", s.DominantShare),
		slog.Float64("diversity", s.Diversity),
		slog.Float64("elapsed_ms", s.ElapsedMs),
	)
}
