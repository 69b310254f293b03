package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/territory/internal/colorspace"
	"github.com/san-kum/territory/internal/engine"
	"github.com/san-kum/territory/internal/mutation"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width <= 0 || cfg.Height <= 0 {
		t.Error("dimensions should be positive")
	}
	if cfg.Species <= 0 {
		t.Error("species should be positive")
	}
	ec, err := cfg.EngineConfig()
	if err != nil {
		t.Fatal(err)
	}
	if ec.Strategy != mutation.KindSpiral || ec.ColorSpace != colorspace.KindHSL {
		t.Errorf("unexpected kinds %v/%v", ec.Strategy, ec.ColorSpace)
	}
	if ec.Seed == 0 {
		t.Error("seed 0 should resolve to a time-based seed")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("tight-spiral")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.SpiralOffset != 4 {
		t.Errorf("expected offset 4, got %d", cfg.SpiralOffset)
	}

	cfg.SpiralOffset = 0
	if Presets["tight-spiral"].SpiralOffset != 4 {
		t.Error("GetPreset returned a shared config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestEveryPresetBuildsAnEngine(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			cfg.Width, cfg.Height = 8, 8
			cfg.Seed = 1
			ec, err := cfg.EngineConfig()
			if err != nil {
				t.Fatal(err)
			}
			if _, err := engine.New(ec); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestEngineConfigRejectsUnknownNames(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"space", func(c *Config) { c.ColorSpace = "lab" }, engine.ErrUnknownColorSpace},
		{"strategy", func(c *Config) { c.Strategy = "zigzag" }, engine.ErrUnknownStrategy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if _, err := cfg.EngineConfig(); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "territory.yaml")
	cfg := GetPreset("rainbow")
	cfg.Seed = 42
	cfg.SeedImage.Path = "seed.png"
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestSet(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Set("mutation_strength", 12.5); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Set("spiral_offset", 2); err != nil {
		t.Fatal(err)
	}
	if cfg.MutationStrength != 12.5 || cfg.SpiralOffset != 2 {
		t.Fatalf("got %+v", cfg)
	}
	if err := cfg.Set("gravity", 1); err == nil {
		t.Fatal("expected error for unknown parameter")
	}
}
