package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/territory/internal/config"
	"github.com/san-kum/territory/internal/experiment"
	"github.com/san-kum/territory/internal/storage"
)

// Scenario defines a scripted batch of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single step in a scenario. Fields left empty keep the
// preset's value.
type ScenarioStep struct {
	Name       string             `yaml:"name"`
	Preset     string             `yaml:"preset"`
	Strategy   string             `yaml:"strategy"`
	ColorSpace string             `yaml:"color_space"`
	SeedImage  string             `yaml:"seed_image"`
	Params     map[string]float64 `yaml:"params"`
	// Repeat runs the step this many times with consecutive seeds.
	Repeat int    `yaml:"repeat"`
	SaveAs string `yaml:"save_as"`
}

// StepResult pairs a finished run with where it was stored.
type StepResult struct {
	Step   int
	Repeat int
	RunID  string
	*experiment.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Config resolves the step into a full configuration on top of base.
func (s ScenarioStep) Config(base *config.Config) (*config.Config, error) {
	cfg := base.Clone()
	if s.Preset != "" {
		p := config.GetPreset(s.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
		p.Output = base.Output
		p.Workers = base.Workers
		cfg = p
	}
	if s.Strategy != "" {
		cfg.Strategy = s.Strategy
	}
	if s.ColorSpace != "" {
		cfg.ColorSpace = s.ColorSpace
	}
	if s.SeedImage != "" {
		cfg.SeedImage.Path = s.SeedImage
	}
	for k, v := range s.Params {
		if err := cfg.Set(k, v); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// RunScenario executes all steps in a scenario. Results are stored when
// st is non-nil.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, st *storage.Store, logger *slog.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Config(base)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		name := step.SaveAs
		if name == "" {
			name = step.Name
		}
		if name == "" {
			name = fmt.Sprintf("%s-%d", scenario.Name, i+1)
		}

		repeat := max(step.Repeat, 1)
		baseSeed := cfg.ResolvedSeed()
		for r := 0; r < repeat; r++ {
			logger.Info("running step", "step", i+1, "of", len(scenario.Steps), "name", name, "repeat", r+1)

			runCfg := cfg.Clone()
			runCfg.Seed = baseSeed + int64(r)

			exp := experiment.New(name, runCfg).WithLogger(logger)
			if err := exp.Setup(); err != nil {
				return results, fmt.Errorf("step %d setup: %w", i+1, err)
			}

			result, err := exp.Run(ctx)
			if err != nil {
				return results, fmt.Errorf("step %d run: %w", i+1, err)
			}

			sr := StepResult{Step: i + 1, Repeat: r + 1, Result: result}
			if st != nil {
				if sr.RunID, err = exp.Persist(st, result); err != nil {
					return results, fmt.Errorf("step %d save: %w", i+1, err)
				}
			}
			results = append(results, sr)
		}
	}

	return results, nil
}
