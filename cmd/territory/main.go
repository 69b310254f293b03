package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/territory/internal/config"
	"github.com/san-kum/territory/internal/viz"
)

var (
	dataDir   string
	logFormat string
	logLevel  string
	themeName string
)

// main registers every command and runs the root. Without a subcommand the
// preset picker opens.
func main() {
	rootCmd := &cobra.Command{
		Use:   "territory",
		Short: "majority-vote territory automaton",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logFormat, logLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return viz.SetTheme(themeName)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			base := config.DefaultConfig()
			return viz.RunMenu(base, viz.Options{OutDir: ".", Scale: base.Output.Scale})
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", viz.ThemeBorder.Name, "terminal theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	rootCmd.AddCommand(
		newRunCmd(),
		newLiveCmd(),
		newServeCmd(),
		newGUICmd(),
		newListCmd(),
		newPlotCmd(),
		newAnalyzeCmd(),
		newExportCmd(),
		newPresetsCmd(),
		newBenchCmd(),
		newBatchCmd(),
		newSweepCmd(),
		newTrialsCmd(),
		newSearchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}
