package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/territory/internal/config"
	"github.com/san-kum/territory/internal/engine"
	"github.com/san-kum/territory/internal/metrics"
	"github.com/san-kum/territory/internal/seed"
	"github.com/san-kum/territory/internal/storage"
	"github.com/san-kum/territory/internal/telemetry"
)

// DefaultCensusEvery is how often telemetry recounts species.
const DefaultCensusEvery = 10

type Experiment struct {
	name      string
	cfg       *config.Config
	engine    *engine.Engine
	collector *telemetry.Collector
	metrics   []metrics.Metric
	logger    *slog.Logger
}

// Result is the outcome of one Run.
type Result struct {
	Name      string
	Seed      int64
	Report    engine.Report
	Metrics   map[string]float64
	Telemetry []telemetry.Stats
	Elapsed   time.Duration
}

func New(name string, cfg *config.Config) *Experiment {
	return &Experiment{
		name:   name,
		cfg:    cfg.Clone(),
		logger: slog.Default(),
	}
}

// WithLogger replaces the default logger.
func (e *Experiment) WithLogger(l *slog.Logger) *Experiment {
	e.logger = l
	return e
}

// Setup builds the engine, deriving the initial grid from the configured
// seed image when there is one. A failed image load leaves no engine.
func (e *Experiment) Setup() error {
	ec, err := e.cfg.EngineConfig()
	if err != nil {
		return err
	}

	if path := e.cfg.SeedImage.Path; path != "" {
		img, err := seed.Load(path)
		if err != nil {
			return err
		}
		s, err := seed.FromImage(img, ec.ColorSpace, e.cfg.SeedImage.Tolerance)
		if err != nil {
			return err
		}
		s.Apply(&ec)
		e.logger.Debug("seeded from image", "path", path, "width", s.Width, "height", s.Height, "species", s.NumSpecies)
	}

	eng, err := engine.New(ec)
	if err != nil {
		return err
	}
	e.engine = eng
	e.collector = telemetry.NewCollector(DefaultCensusEvery)
	e.metrics = metrics.Standard(ec.Width * ec.Height)
	// Keep the resolved seed so a saved config reproduces the run.
	e.cfg.Seed = ec.Seed
	return nil
}

// Run advances the engine to completion.
func (e *Experiment) Run(ctx context.Context, observers ...engine.Observer) (*Result, error) {
	if e.engine == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	obs := append([]engine.Observer{e.collector, metrics.Observer(e.metrics...)}, observers...)

	runSeed := e.engine.Config().Seed
	e.logger.Info("experiment started",
		"name", e.name,
		"seed", runSeed,
		"width", e.engine.Width(),
		"height", e.engine.Height(),
		"strategy", e.cfg.Strategy,
		"color_space", e.cfg.ColorSpace,
	)

	start := time.Now()
	report, err := e.engine.Run(ctx, obs...)
	res := &Result{
		Name:      e.name,
		Seed:      runSeed,
		Report:    report,
		Metrics:   metrics.Collect(e.metrics...),
		Telemetry: e.collector.Records(),
		Elapsed:   time.Since(start),
	}
	if err != nil {
		e.logger.Warn("experiment interrupted", "name", e.name, "generation", report.Generation, "err", err)
		return res, err
	}

	e.logger.Info("experiment finished",
		"name", e.name,
		"seed", runSeed,
		"generations", report.Generation,
		"changed", int(res.Metrics["total_changed"]),
		"elapsed", res.Elapsed,
	)
	return res, nil
}

// Engine returns the underlying engine for hosts that drive it directly.
func (e *Experiment) Engine() *engine.Engine {
	return e.engine
}

func (e *Experiment) Config() *config.Config {
	return e.cfg
}

// Persist stores res with the final frame and the effective config.
func (e *Experiment) Persist(st *storage.Store, res *Result) (string, error) {
	if e.engine == nil {
		return "", fmt.Errorf("experiment not setup")
	}
	return st.Save(storage.Run{
		Meta: storage.RunMetadata{
			Name:             res.Name,
			Seed:             res.Seed,
			Width:            e.engine.Width(),
			Height:           e.engine.Height(),
			Species:          e.engine.NumSpecies(),
			ColorSpace:       e.cfg.ColorSpace,
			Strategy:         e.cfg.Strategy,
			MutationStrength: e.cfg.MutationStrength,
			Generations:      res.Report.Generation,
			Complete:         res.Report.Complete,
			Metrics:          res.Metrics,
		},
		Config:    e.cfg,
		Telemetry: res.Telemetry,
		Frame:     e.engine,
	})
}
