package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/territory/internal/config"
	"github.com/san-kum/territory/internal/experiment"
	"github.com/san-kum/territory/internal/storage"
)

func newRunCmd() *cobra.Command {
	var (
		name     string
		logEvery int
		noSave   bool
		saveCfg  string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation to completion and store it",
	}
	sf := addSimFlags(cmd.Flags())
	cmd.Flags().StringVar(&name, "name", "", "run name (defaults to the preset or strategy)")
	cmd.Flags().IntVar(&logEvery, "log-every", 100, "log progress every n generations (0 to disable)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	cmd.Flags().StringVar(&saveCfg, "save-config", "", "write the effective config to this path")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := sf.resolve(cmd)
		if err != nil {
			return err
		}
		if name == "" {
			name = runName(sf.preset, cfg)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		exp := experiment.New(name, cfg)
		if err := exp.Setup(); err != nil {
			return err
		}
		if saveCfg != "" {
			if err := config.Save(saveCfg, exp.Config()); err != nil {
				return err
			}
		}

		res, runErr := exp.Run(ctx, progressLogger(logEvery))
		if res == nil {
			return runErr
		}

		fmt.Printf("generations: %d\n", res.Report.Generation)
		fmt.Printf("complete:    %v\n", res.Report.Complete)
		fmt.Printf("seed:        %d\n", res.Seed)
		fmt.Printf("elapsed:     %v\n", res.Elapsed.Round(time.Millisecond))
		if n := len(res.Telemetry); n > 0 {
			last := res.Telemetry[n-1]
			fmt.Printf("surviving:   %d (dominant %d at %.1f%%)\n", last.Surviving, last.Dominant, 100*last.DominantShare)
		}

		if noSave {
			return runErr
		}
		st := storage.New(cfg.Output.DataDir)
		st.Scale, st.SVG = cfg.Output.Scale, cfg.Output.SVG
		id, err := exp.Persist(st, res)
		if err != nil {
			return err
		}
		fmt.Printf("saved:       %s\n", id)
		return runErr
	}
	return cmd
}

func runName(preset string, cfg *config.Config) string {
	if preset != "" {
		return preset
	}
	return cfg.Strategy + "-" + cfg.ColorSpace
}
