package automation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/territory/internal/config"
	"github.com/san-kum/territory/internal/experiment"
	"github.com/san-kum/territory/internal/telemetry"
)

// ParameterSweep runs simulations across a range of one parameter
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds the outcome at one parameter value
type SweepResult struct {
	ParamValue   float64
	Generations  int
	TotalChanged float64
	Surviving    int
	Diversity    float64
}

// RunSweep executes a parameter sweep with a fixed seed so only the swept
// parameter differs between runs.
func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *slog.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step")
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}
	seed := sweep.Base.ResolvedSeed()

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := sweep.Base.Clone()
		cfg.Seed = seed
		if err := cfg.Set(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		exp := experiment.New(fmt.Sprintf("%s=%g", sweep.ParamName, paramVal), cfg).WithLogger(logger)
		if err := exp.Setup(); err != nil {
			return nil, err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		final := telemetry.Summarize(exp.Engine().Census())
		results = append(results, SweepResult{
			ParamValue:   paramVal,
			Generations:  result.Report.Generation,
			TotalChanged: result.Metrics["total_changed"],
			Surviving:    final.Surviving,
			Diversity:    final.Diversity,
		})

		logger.Info("sweep", "step", i+1, "of", sweep.NumSteps, "param", sweep.ParamName, "value", paramVal)
	}

	return results, nil
}

// TrialsConfig repeats one configuration over consecutive seeds
type TrialsConfig struct {
	Base      *config.Config
	NumTrials int
	Seed      int64
	// Parallel is the number of trials run at once. Values below 2 run
	// trials one after another.
	Parallel int
}

// TrialResult is the outcome of one seed
type TrialResult struct {
	TrialID     int
	Seed        int64
	Generations int
	Complete    bool
	ElapsedMs   float64
}

// RunTrials executes the same configuration across seeds. Results are in
// trial order regardless of Parallel.
func RunTrials(ctx context.Context, cfg *TrialsConfig, logger *slog.Logger) ([]TrialResult, error) {
	results := make([]TrialResult, cfg.NumTrials)
	errs := make([]error, cfg.NumTrials)

	seed := cfg.Seed
	if seed == 0 {
		seed = cfg.Base.ResolvedSeed()
	}

	parallel := max(cfg.Parallel, 1)
	sem := make(chan struct{}, parallel)
	var done atomic.Int64
	var wg sync.WaitGroup

	for trial := 0; trial < cfg.NumTrials; trial++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			runCfg := cfg.Base.Clone()
			runCfg.Seed = seed + int64(idx)
			if parallel > 1 {
				runCfg.Workers = 1
			}
			results[idx], errs[idx] = runTrial(ctx, idx, runCfg, logger)

			if n := done.Add(1); n%10 == 0 {
				logger.Info("trials", "done", n, "of", cfg.NumTrials)
			}
		}(trial)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func runTrial(ctx context.Context, idx int, cfg *config.Config, logger *slog.Logger) (TrialResult, error) {
	exp := experiment.New(fmt.Sprintf("trial-%d", idx), cfg).WithLogger(logger)
	if err := exp.Setup(); err != nil {
		return TrialResult{}, err
	}
	result, err := exp.Run(ctx)
	if err != nil {
		return TrialResult{}, err
	}
	return TrialResult{
		TrialID:     idx,
		Seed:        cfg.Seed,
		Generations: result.Report.Generation,
		Complete:    result.Report.Complete,
		ElapsedMs:   float64(result.Elapsed.Microseconds()) / 1000,
	}, nil
}

// TrialStats summarises generations and wall time across trials.
type TrialStats struct {
	MeanGenerations float64
	StdGenerations  float64
	MeanElapsedMs   float64
	StdElapsedMs    float64
	Incomplete      int
}

func SummarizeTrials(results []TrialResult) TrialStats {
	var s TrialStats
	if len(results) == 0 {
		return s
	}
	gens := make([]float64, len(results))
	times := make([]float64, len(results))
	for i, r := range results {
		gens[i] = float64(r.Generations)
		times[i] = r.ElapsedMs
		if !r.Complete {
			s.Incomplete++
		}
	}
	if len(results) == 1 {
		s.MeanGenerations, s.MeanElapsedMs = gens[0], times[0]
		return s
	}
	s.MeanGenerations, s.StdGenerations = stat.MeanStdDev(gens, nil)
	s.MeanElapsedMs, s.StdElapsedMs = stat.MeanStdDev(times, nil)
	return s
}
