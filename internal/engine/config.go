package engine

import (
	"math"
	"runtime"

	"github.com/san-kum/territory/internal/colorspace"
	"github.com/san-kum/territory/internal/grid"
	"github.com/san-kum/territory/internal/mutation"
)

// Config holds everything New needs.
type Config struct {
	Width      int
	Height     int
	NumSpecies int

	// MutationStrength bounds the per-channel jitter of adopted colours and
	// of the ambient drift.
	MutationStrength float64
	Strategy         mutation.Kind
	ColorSpace       colorspace.Kind

	// MaxIterations caps the generation count; 0 means unbounded.
	MaxIterations int

	SpiralOffset int
	// RainbowStep is the hue rotation per conversion; 0 uses MutationStrength.
	RainbowStep float64

	// Workers bounds evaluation goroutines; 0 means GOMAXPROCS.
	Workers int
	Seed    int64

	// SeedCells, when set, replaces random initialisation. It is laid out
	// row-major and must hold exactly Width*Height entries.
	SeedCells []SeedCell
}

// SeedCell is one entry of an externally supplied initial state.
type SeedCell struct {
	Species grid.Species
	Color   colorspace.Color
}

func DefaultConfig() Config {
	return Config{
		Width:            256,
		Height:           256,
		NumSpecies:       8,
		MutationStrength: 4,
		Strategy:         mutation.KindSpiral,
		ColorSpace:       colorspace.KindHSL,
		SpiralOffset:     4,
		Seed:             1,
	}
}

func (c Config) validate() error {
	if c.Width <= 0 {
		return &ConfigError{Field: "width", Value: c.Width, Err: ErrInvalidDimensions}
	}
	if c.Height <= 0 {
		return &ConfigError{Field: "height", Value: c.Height, Err: ErrInvalidDimensions}
	}
	if c.NumSpecies <= 0 {
		return &ConfigError{Field: "species", Value: c.NumSpecies, Err: ErrInvalidSpecies}
	}
	if c.MutationStrength < 0 || math.IsNaN(c.MutationStrength) || math.IsInf(c.MutationStrength, 0) {
		return &ConfigError{Field: "mutation_strength", Value: c.MutationStrength, Err: ErrInvalidStrength}
	}
	if int(c.ColorSpace) >= len(colorspace.Kinds()) {
		return &ConfigError{Field: "color_space", Value: c.ColorSpace, Err: ErrUnknownColorSpace}
	}
	if int(c.Strategy) >= len(mutation.Kinds()) {
		return &ConfigError{Field: "strategy", Value: c.Strategy, Err: ErrUnknownStrategy}
	}
	if c.Strategy.NeedsHue() && !c.ColorSpace.HasHue() {
		return &ConfigError{Field: "strategy", Value: c.Strategy.String() + "/" + c.ColorSpace.String(), Err: ErrIncompatibleStrategy}
	}
	if c.SeedCells != nil {
		if len(c.SeedCells) != c.Width*c.Height {
			return &ConfigError{Field: "seed", Value: len(c.SeedCells), Err: ErrSeedMismatch}
		}
		for i, sc := range c.SeedCells {
			if sc.Species < 0 || int(sc.Species) >= c.NumSpecies {
				return &ConfigError{Field: "seed", Value: i, Err: ErrSeedSpecies}
			}
			if sc.Color == nil || sc.Color.Kind() != c.ColorSpace {
				return &ConfigError{Field: "seed", Value: i, Err: ErrSeedColor}
			}
		}
	}
	return nil
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (c Config) rainbowStep() float64 {
	if c.RainbowStep != 0 {
		return c.RainbowStep
	}
	return c.MutationStrength
}
