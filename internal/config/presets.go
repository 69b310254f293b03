package config

import "sort"

func preset(fn func(c *Config)) *Config {
	c := DefaultConfig()
	fn(c)
	return c
}

var Presets = map[string]*Config{
	"voronoi": preset(func(c *Config) {
		c.Strategy, c.ColorSpace, c.MutationStrength = "preservation", "hsl", 1
		c.Species = 24
	}),
	"spiral": preset(func(c *Config) {
		c.Strategy, c.ColorSpace, c.MutationStrength = "spiral", "hsl", 4
		c.SpiralOffset = 2
	}),
	"tight-spiral": preset(func(c *Config) {
		c.Strategy, c.ColorSpace, c.MutationStrength = "spiral", "hsv", 6
		c.SpiralOffset = 4
		c.Species = 3
	}),
	"preservation": preset(func(c *Config) {
		c.Strategy, c.ColorSpace, c.MutationStrength = "preservation", "hsv", 8
	}),
	"mirror": preset(func(c *Config) {
		c.Strategy, c.ColorSpace, c.MutationStrength = "mirror", "hsl", 3
	}),
	"rainbow": preset(func(c *Config) {
		c.Strategy, c.ColorSpace, c.MutationStrength = "rainbow", "hsv", 2
		c.RainbowStep = 3
	}),
	"uniform": preset(func(c *Config) {
		c.Strategy, c.ColorSpace, c.MutationStrength = "uniform", "hsl", 2
		c.Species = 2
	}),
	"cmyk": preset(func(c *Config) {
		c.Strategy, c.ColorSpace, c.MutationStrength = "spiral", "cmyk", 10
		c.SpiralOffset = 3
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
