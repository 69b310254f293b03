package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/territory/internal/analysis"
	"github.com/san-kum/territory/internal/export"
	"github.com/san-kum/territory/internal/storage"
	"github.com/san-kum/territory/internal/telemetry"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tSPECIES\tSTRATEGY\tSPACE\tGENS\tDONE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%s\t%s\t%d\t%v\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Species,
			run.Strategy,
			run.ColorSpace,
			run.Generations,
			run.Complete,
		)
	}

	return w.Flush()
}

var plotSeries = []struct {
	caption string
	field   func(telemetry.Stats) float64
}{
	{"active cells", func(s telemetry.Stats) float64 { return float64(s.Active) }},
	{"changed cells", func(s telemetry.Stats) float64 { return float64(s.Changed) }},
	{"surviving species", func(s telemetry.Stats) float64 { return float64(s.Surviving) }},
	{"diversity (nats)", func(s telemetry.Stats) float64 { return s.Diversity }},
}

func newPlotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's telemetry",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	stats, err := st.LoadTelemetry(runID)
	if err != nil {
		return err
	}
	if len(stats) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("strategy: %s / %s\n", meta.Strategy, meta.ColorSpace)
	fmt.Printf("generations: %d\n\n", meta.Generations)

	for _, p := range plotSeries {
		data := make([]float64, len(stats))
		for i, s := range stats {
			data[i] = p.field(s)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func newExportCmd() *cobra.Command {
	var (
		format string
		out    string
		scale  int
	)
	cmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run",
		Long: "Formats: json (metadata and telemetry), csv (telemetry), " +
			"svg (active-cell chart), png/bmp/tiff (re-scaled final snapshot).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportRun(args[0], format, out, scale)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "json, csv, svg, png, bmp or tiff")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (stdout for text formats)")
	cmd.Flags().IntVar(&scale, "scale", 4, "pixels per cell for image formats")
	return cmd
}

func exportRun(runID, format, out string, scale int) error {
	st := storage.New(dataDir)

	w := os.Stdout
	textOut := func() error {
		if out == "" {
			return nil
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		w = f
		return nil
	}
	defer func() {
		if w != os.Stdout {
			w.Close()
		}
	}()

	switch format {
	case "json":
		if err := textOut(); err != nil {
			return err
		}
		return st.ExportJSON(w, runID)
	case "csv":
		stats, err := st.LoadTelemetry(runID)
		if err != nil {
			return err
		}
		if err := textOut(); err != nil {
			return err
		}
		return telemetry.WriteAll(w, stats)
	case "svg":
		stats, err := st.LoadTelemetry(runID)
		if err != nil {
			return err
		}
		active := make([]float64, len(stats))
		for i, s := range stats {
			active[i] = float64(s.Active)
		}
		if err := textOut(); err != nil {
			return err
		}
		_, err = fmt.Fprint(w, export.SeriesToSVG(active, 800, 240, "#00d7ff"))
		return err
	case "png", "bmp", "tiff":
		if out == "" {
			out = runID + "." + format
		}
		frame, err := st.LoadSnapshot(runID)
		if err != nil {
			return err
		}
		if err := export.Save(out, frame, scale); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", out)
		return nil
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "settling and oscillation analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	stats, err := st.LoadTelemetry(runID)
	if err != nil {
		return err
	}
	if len(stats) < 2 {
		return fmt.Errorf("no data")
	}

	s := analysis.Analyze(stats)
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("generations:     %d\n", s.Generations)
	fmt.Printf("settled:         %v\n", s.Settled)
	if s.Period > 0 {
		fmt.Printf("cycle:           period %d\n", s.Period)
	}
	if s.HalfActive >= 0 {
		fmt.Printf("half active at:  generation %d\n", s.HalfActive)
	}
	fmt.Printf("peak changed:    %d\n", s.PeakChanged)
	if s.SpectralPeriod > 0 {
		fmt.Printf("spectral period: %.2f generations (%.0f%% of power)\n", s.SpectralPeriod, 100*s.SpectralShare)
	}
	fmt.Println()

	changed := make([]float64, len(stats))
	for i, r := range stats {
		changed[i] = float64(r.Changed)
	}
	ps := analysis.PowerSpectrum(changed)
	if len(ps) > 2 {
		fmt.Println(asciigraph.Plot(ps[1:],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (changed cells)"),
		))
	}
	return nil
}
