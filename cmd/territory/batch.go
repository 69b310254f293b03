package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/territory/internal/automation"
	"github.com/san-kum/territory/internal/config"
	"github.com/san-kum/territory/internal/experiment"
	"github.com/san-kum/territory/internal/optim"
	"github.com/san-kum/territory/internal/storage"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list presets, strategies, colour spaces and metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := experiment.NewRegistry()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tSTRATEGY\tSPACE\tSPECIES\tSTRENGTH")
			for _, name := range reg.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%g\n", name, p.Strategy, p.ColorSpace, p.Species, p.MutationStrength)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("\nstrategies:   %s\n", strings.Join(reg.ListStrategies(), ", "))
			fmt.Printf("colorspaces:  %s\n", strings.Join(reg.ListColorSpaces(), ", "))
			fmt.Printf("metrics:      %s\n", strings.Join(reg.ListMetrics(), ", "))
			return nil
		},
	}
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "time generations across grid sizes and worker counts",
	}
	sf := addSimFlags(cmd.Flags())
	sizes := cmd.Flags().IntSlice("sizes", []int{64, 128, 256, 512}, "square grid sizes")
	workers := cmd.Flags().IntSlice("worker-counts", []int{1, 0}, "worker counts (0 for all cpus)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		base, err := sf.resolve(cmd)
		if err != nil {
			return err
		}
		if base.Seed == 0 {
			base.Seed = 42
		}
		if base.MaxIterations == 0 {
			base.MaxIterations = 500
		}
		logger := slog.New(slog.DiscardHandler)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SIZE\tWORKERS\tGENS\tCHANGED\tTIME\tGENS/SEC\tCELLS/SEC")

		for _, size := range *sizes {
			for _, nw := range *workers {
				cfg := base.Clone()
				cfg.Width, cfg.Height, cfg.Workers = size, size, nw
				exp := experiment.New("bench", cfg).WithLogger(logger)
				if err := exp.Setup(); err != nil {
					return err
				}
				res, err := exp.Run(cmd.Context())
				if err != nil {
					return err
				}
				secs := res.Elapsed.Seconds()
				gens := float64(res.Report.Generation)
				fmt.Fprintf(w, "%dx%d\t%d\t%d\t%.0f\t%v\t%.1f\t%.3g\n",
					size, size, nw, res.Report.Generation, res.Metrics["total_changed"],
					res.Elapsed.Round(time.Millisecond), gens/secs, gens*float64(size*size)/secs)
			}
		}
		return w.Flush()
	}
	return cmd
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run every step of a scenario file and store the results",
		Args:  cobra.ExactArgs(1),
	}
	sf := addSimFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		scenario, err := automation.LoadScenario(args[0])
		if err != nil {
			return err
		}
		base, err := sf.resolve(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		st := storage.New(base.Output.DataDir)
		st.Scale, st.SVG = base.Output.Scale, base.Output.SVG
		if err := st.Init(); err != nil {
			return err
		}

		results, err := automation.RunScenario(ctx, scenario, base, st, slog.Default())

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STEP\tNAME\tREPEAT\tSEED\tGENS\tDONE\tRUN")
		for _, r := range results {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%v\t%s\n",
				r.Step, r.Name, r.Repeat, r.Seed, r.Report.Generation, r.Report.Complete, r.RunID)
		}
		if ferr := w.Flush(); ferr != nil && err == nil {
			err = ferr
		}
		return err
	}
	return cmd
}

func newSweepCmd() *cobra.Command {
	var (
		param  string
		lo, hi float64
		steps  int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one parameter with a fixed seed",
	}
	sf := addSimFlags(cmd.Flags())
	cmd.Flags().StringVar(&param, "param", "mutation_strength", "parameter to sweep")
	cmd.Flags().Float64Var(&lo, "min", 0, "first value")
	cmd.Flags().Float64Var(&hi, "max", 16, "last value")
	cmd.Flags().IntVar(&steps, "steps", 9, "number of values")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		base, err := sf.resolve(cmd)
		if err != nil {
			return err
		}
		results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
			Base:      base,
			ParamName: param,
			ParamMin:  lo,
			ParamMax:  hi,
			NumSteps:  steps,
		}, slog.Default())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "%s\tGENS\tCHANGED\tSURVIVING\tDIVERSITY\n", strings.ToUpper(param))
		gens := make([]float64, len(results))
		for i, r := range results {
			fmt.Fprintf(w, "%g\t%d\t%.0f\t%d\t%.3f\n", r.ParamValue, r.Generations, r.TotalChanged, r.Surviving, r.Diversity)
			gens[i] = float64(r.Generations)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if len(gens) > 1 {
			fmt.Println()
			fmt.Println(asciigraph.Plot(gens, asciigraph.Height(8), asciigraph.Caption("generations to settle")))
		}
		return nil
	}
	return cmd
}

func newTrialsCmd() *cobra.Command {
	var n, parallel int
	cmd := &cobra.Command{
		Use:   "trials",
		Short: "repeat one configuration over consecutive seeds",
	}
	sf := addSimFlags(cmd.Flags())
	cmd.Flags().IntVarP(&n, "count", "n", 10, "number of trials")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 1, "trials run at once")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		base, err := sf.resolve(cmd)
		if err != nil {
			return err
		}
		results, err := automation.RunTrials(cmd.Context(), &automation.TrialsConfig{
			Base:      base,
			NumTrials: n,
			Seed:      base.Seed,
			Parallel:  parallel,
		}, slog.Default())
		if err != nil {
			return err
		}

		s := automation.SummarizeTrials(results)
		fmt.Printf("trials:       %d\n", len(results))
		fmt.Printf("generations:  %.1f ± %.1f\n", s.MeanGenerations, s.StdGenerations)
		fmt.Printf("elapsed:      %.1fms ± %.1fms\n", s.MeanElapsedMs, s.StdElapsedMs)
		fmt.Printf("incomplete:   %d\n", s.Incomplete)
		return nil
	}
	return cmd
}

func newSearchCmd() *cobra.Command {
	var (
		metric  string
		params  []string
		repeats int
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "grid search parameters minimising a metric",
		Example: "  territory search --param mutation_strength=1,4,8 --param species=3,6 --metric generations",
	}
	sf := addSimFlags(cmd.Flags())
	cmd.Flags().StringVar(&metric, "metric", "generations", "metric to minimise")
	cmd.Flags().StringArrayVar(&params, "param", nil, "name=v1,v2,... (repeatable)")
	cmd.Flags().IntVar(&repeats, "repeats", 1, "runs per point, scored by the mean")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		base, err := sf.resolve(cmd)
		if err != nil {
			return err
		}
		names, ranges, err := parseParamGrid(params)
		if err != nil {
			return err
		}
		if base.Seed == 0 {
			base.Seed = base.ResolvedSeed()
		}
		logger := slog.New(slog.DiscardHandler)

		gs := optim.NewGridSearch(names, ranges).WithRepeats(repeats)
		best, value, evals, err := gs.Search(cmd.Context(), func(p map[string]float64) (*experiment.Experiment, error) {
			cfg := base.Clone()
			for k, v := range p {
				if err := cfg.Set(k, v); err != nil {
					return nil, err
				}
			}
			return experiment.New("search", cfg).WithLogger(logger), nil
		}, metric)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "%s\t%s\tSTDDEV\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(metric))
		for _, e := range evals {
			vals := make([]string, len(names))
			for i, n := range names {
				vals[i] = strconv.FormatFloat(e.Params[n], 'g', -1, 64)
			}
			result := strconv.FormatFloat(e.Value, 'g', 6, 64) + "\t" + strconv.FormatFloat(e.StdDev, 'g', 4, 64)
			if e.Err != nil {
				result = "error: " + e.Err.Error() + "\t-"
			}
			fmt.Fprintf(w, "%s\t%s\n", strings.Join(vals, "\t"), result)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if best == nil {
			return fmt.Errorf("no parameter combination succeeded")
		}
		fmt.Printf("\nbest: %v (%s = %g)\n", best, metric, value)
		return nil
	}
	return cmd
}

// parseParamGrid turns name=v1,v2 arguments into GridSearch inputs.
func parseParamGrid(args []string) ([]string, [][]float64, error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("at least one --param is required")
	}
	names := make([]string, 0, len(args))
	ranges := make([][]float64, 0, len(args))
	for _, arg := range args {
		name, list, ok := strings.Cut(arg, "=")
		if !ok || name == "" || list == "" {
			return nil, nil, fmt.Errorf("invalid --param %q, want name=v1,v2", arg)
		}
		var vals []float64
		for _, s := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid value in --param %q: %w", arg, err)
			}
			vals = append(vals, v)
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}
	return names, ranges, nil
}
