package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/san-kum/territory/internal/config"
	"github.com/san-kum/territory/internal/engine"
	"github.com/san-kum/territory/internal/telemetry"
)

// simFlags are shared by every command that builds an engine.
type simFlags struct {
	configFile string
	preset     string

	width, height int
	species       int
	strategy      string
	colorSpace    string
	strength      float64
	spiralOffset  int
	rainbowStep   float64
	maxIter       int
	seed          int64
	workers       int
	seedImage     string
	tolerance     float64
	scale         int
	svg           bool
}

func addSimFlags(fs *pflag.FlagSet) *simFlags {
	d := config.DefaultConfig()
	f := &simFlags{}
	fs.StringVar(&f.configFile, "config", "", "config file path (yaml)")
	fs.StringVar(&f.preset, "preset", "", "use preset configuration")
	fs.IntVar(&f.width, "width", d.Width, "grid width")
	fs.IntVar(&f.height, "height", d.Height, "grid height")
	fs.IntVar(&f.species, "species", d.Species, "number of species")
	fs.StringVar(&f.strategy, "strategy", d.Strategy, "mutation strategy")
	fs.StringVar(&f.colorSpace, "colorspace", d.ColorSpace, "colour space (rgb, hsv, hsl, cmyk)")
	fs.Float64Var(&f.strength, "strength", d.MutationStrength, "mutation strength")
	fs.IntVar(&f.spiralOffset, "spiral-offset", d.SpiralOffset, "spiral direction offset")
	fs.Float64Var(&f.rainbowStep, "rainbow-step", d.RainbowStep, "hue rotation per conversion (0 uses strength)")
	fs.IntVar(&f.maxIter, "max-iter", d.MaxIterations, "generation cap (0 for none)")
	fs.Int64Var(&f.seed, "seed", 0, "random seed (0 for time based)")
	fs.IntVar(&f.workers, "workers", d.Workers, "evaluation workers (0 for all cpus)")
	fs.StringVar(&f.seedImage, "seed-image", "", "derive the initial grid from an image")
	fs.Float64Var(&f.tolerance, "tolerance", d.SeedImage.Tolerance, "colour distance per species when seeding from an image")
	fs.IntVar(&f.scale, "scale", d.Output.Scale, "pixels per cell in snapshots")
	fs.BoolVar(&f.svg, "svg", d.Output.SVG, "also write svg snapshots")
	return f
}

// resolve builds the effective config: defaults, then preset, then config
// file, then any flag set explicitly on the command line.
func (f *simFlags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if f.preset != "" {
		p := config.GetPreset(f.preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", f.preset, config.ListPresets())
		}
		cfg = p
	}

	if f.configFile != "" {
		loaded, err := config.Load(f.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = f.width
	}
	if flags.Changed("height") {
		cfg.Height = f.height
	}
	if flags.Changed("species") {
		cfg.Species = f.species
	}
	if flags.Changed("strategy") {
		cfg.Strategy = f.strategy
	}
	if flags.Changed("colorspace") {
		cfg.ColorSpace = f.colorSpace
	}
	if flags.Changed("strength") {
		cfg.MutationStrength = f.strength
	}
	if flags.Changed("spiral-offset") {
		cfg.SpiralOffset = f.spiralOffset
	}
	if flags.Changed("rainbow-step") {
		cfg.RainbowStep = f.rainbowStep
	}
	if flags.Changed("max-iter") {
		cfg.MaxIterations = f.maxIter
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("workers") {
		cfg.Workers = f.workers
	}
	if flags.Changed("seed-image") {
		cfg.SeedImage.Path = f.seedImage
	}
	if flags.Changed("tolerance") {
		cfg.SeedImage.Tolerance = f.tolerance
	}
	if flags.Changed("scale") {
		cfg.Output.Scale = f.scale
	}
	if flags.Changed("svg") {
		cfg.Output.SVG = f.svg
	}
	if cmd.Flags().Changed("data") || cfg.Output.DataDir == "" {
		cfg.Output.DataDir = dataDir
	}
	return cfg, nil
}

// progressLogger logs a telemetry record every n generations. n < 1
// disables it.
func progressLogger(n int) engine.Observer {
	if n < 1 {
		return engine.ObserverFunc(func(*engine.Engine, engine.Report) {})
	}
	c := telemetry.NewCollector(n)
	c.Subscribe(func(s telemetry.Stats) {
		if s.Generation%n == 0 {
			slog.Info("progress", "stats", s)
		}
	})
	return c
}
