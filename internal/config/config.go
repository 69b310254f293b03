package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/territory/internal/colorspace"
	"github.com/san-kum/territory/internal/engine"
	"github.com/san-kum/territory/internal/mutation"
)

const (
	DefaultWidth        = 256
	DefaultHeight       = 256
	DefaultSpecies      = 8
	DefaultStrength     = 4.0
	DefaultSpiralOffset = 4
	DefaultTolerance    = 48.0
	DefaultScale        = 2
	DefaultDataDir      = ".territory"
	DefaultColorSpace   = "hsl"
	DefaultStrategy     = "spiral"
)

type Config struct {
	Width            int             `yaml:"width"`
	Height           int             `yaml:"height"`
	Species          int             `yaml:"species"`
	ColorSpace       string          `yaml:"color_space"`
	Strategy         string          `yaml:"strategy"`
	MutationStrength float64         `yaml:"mutation_strength"`
	SpiralOffset     int             `yaml:"spiral_offset"`
	RainbowStep      float64         `yaml:"rainbow_step,omitempty"`
	MaxIterations    int             `yaml:"max_iterations"`
	Seed             int64           `yaml:"seed"`
	Workers          int             `yaml:"workers"`
	SeedImage        SeedImageConfig `yaml:"seed_image"`
	Output           OutputConfig    `yaml:"output"`
}

// SeedImageConfig selects an image to derive the initial grid from. The
// grid takes the image's dimensions when Path is set.
type SeedImageConfig struct {
	Path      string  `yaml:"path,omitempty"`
	Tolerance float64 `yaml:"tolerance"`
}

type OutputConfig struct {
	DataDir string `yaml:"data_dir"`
	Scale   int    `yaml:"scale"`
	SVG     bool   `yaml:"svg"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		Species:          DefaultSpecies,
		ColorSpace:       DefaultColorSpace,
		Strategy:         DefaultStrategy,
		MutationStrength: DefaultStrength,
		SpiralOffset:     DefaultSpiralOffset,
		SeedImage:        SeedImageConfig{Tolerance: DefaultTolerance},
		Output: OutputConfig{
			DataDir: DefaultDataDir,
			Scale:   DefaultScale,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// ResolvedSeed is Seed, or a time-based value when Seed is 0.
func (c *Config) ResolvedSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// EngineConfig converts the file representation into engine settings.
// Seed cells are not filled in; see the experiment package.
func (c *Config) EngineConfig() (engine.Config, error) {
	space, err := colorspace.ParseKind(c.ColorSpace)
	if err != nil {
		return engine.Config{}, &engine.ConfigError{Field: "color_space", Value: c.ColorSpace, Err: engine.ErrUnknownColorSpace}
	}
	strategy, err := mutation.ParseKind(c.Strategy)
	if err != nil {
		return engine.Config{}, &engine.ConfigError{Field: "strategy", Value: c.Strategy, Err: engine.ErrUnknownStrategy}
	}
	return engine.Config{
		Width:            c.Width,
		Height:           c.Height,
		NumSpecies:       c.Species,
		MutationStrength: c.MutationStrength,
		Strategy:         strategy,
		ColorSpace:       space,
		MaxIterations:    c.MaxIterations,
		SpiralOffset:     c.SpiralOffset,
		RainbowStep:      c.RainbowStep,
		Workers:          c.Workers,
		Seed:             c.ResolvedSeed(),
	}, nil
}

// Set assigns a numeric parameter by its YAML name. It backs scenario
// overrides and parameter sweeps.
func (c *Config) Set(name string, v float64) error {
	switch name {
	case "width":
		c.Width = int(v)
	case "height":
		c.Height = int(v)
	case "species":
		c.Species = int(v)
	case "mutation_strength":
		c.MutationStrength = v
	case "spiral_offset":
		c.SpiralOffset = int(v)
	case "rainbow_step":
		c.RainbowStep = v
	case "max_iterations":
		c.MaxIterations = int(v)
	case "seed":
		c.Seed = int64(v)
	case "workers":
		c.Workers = int(v)
	case "tolerance":
		c.SeedImage.Tolerance = v
	default:
		return fmt.Errorf("config: unknown numeric parameter %q", name)
	}
	return nil
}
