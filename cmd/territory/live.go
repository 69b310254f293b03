package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/territory/internal/experiment"
	"github.com/san-kum/territory/internal/gui"
	"github.com/san-kum/territory/internal/stream"
	"github.com/san-kum/territory/internal/viz"
)

// setupEngine builds an experiment from the shared flags without running it.
func setupEngine(cmd *cobra.Command, sf *simFlags) (*experiment.Experiment, string, error) {
	cfg, err := sf.resolve(cmd)
	if err != nil {
		return nil, "", err
	}
	name := runName(sf.preset, cfg)
	exp := experiment.New(name, cfg)
	if err := exp.Setup(); err != nil {
		return nil, "", err
	}
	return exp, name, nil
}

func newLiveCmd() *cobra.Command {
	var (
		perTick   int
		frameRate int
		outDir    string
	)
	cmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation in the terminal",
	}
	sf := addSimFlags(cmd.Flags())
	cmd.Flags().IntVar(&perTick, "per-frame", 1, "generations per frame")
	cmd.Flags().IntVar(&frameRate, "fps", 30, "frames per second")
	cmd.Flags().StringVar(&outDir, "out", ".", "directory for snapshots and recordings")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		exp, name, err := setupEngine(cmd, sf)
		if err != nil {
			return err
		}
		return viz.Run(exp.Engine(), name, viz.Options{
			OutDir:  outDir,
			Scale:   exp.Config().Output.Scale,
			PerTick: perTick,
			FPS:     frameRate,
		})
	}
	return cmd
}

func newServeCmd() *cobra.Command {
	var (
		addr     string
		interval time.Duration
		perTick  int
		every    int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "stream a simulation to browsers over websockets",
	}
	sf := addSimFlags(cmd.Flags())
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&interval, "interval", 50*time.Millisecond, "time between ticks")
	cmd.Flags().IntVar(&perTick, "per-tick", 1, "generations per tick")
	cmd.Flags().IntVar(&every, "every", 1, "publish one frame per n generations")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		exp, _, err := setupEngine(cmd, sf)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		logger := slog.Default()
		hub := stream.NewHub(logger)
		defer hub.Close()
		handler := stream.NewHandler(hub, logger)

		srv := &http.Server{Addr: addr, Handler: handler.Mux()}
		errc := make(chan error, 1)
		go func() { errc <- srv.ListenAndServe() }()
		logger.Info("serving", "addr", addr, "width", exp.Engine().Width(), "height", exp.Engine().Height())

		driver := &stream.Driver{
			Engine:   exp.Engine(),
			Hub:      hub,
			Commands: handler.Commands(),
			Interval: interval,
			PerTick:  perTick,
			Every:    every,
		}
		go driver.Run(ctx)

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
	return cmd
}

func newGUICmd() *cobra.Command {
	var (
		perTick   int
		frameRate int
	)
	cmd := &cobra.Command{
		Use:   "gui",
		Short: "run a simulation in a window (needs the gui build tag)",
	}
	sf := addSimFlags(cmd.Flags())
	cmd.Flags().IntVar(&perTick, "per-frame", 1, "generations per frame")
	cmd.Flags().IntVar(&frameRate, "fps", 60, "frames per second")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		exp, name, err := setupEngine(cmd, sf)
		if err != nil {
			return err
		}
		err = gui.Run(exp.Engine(), gui.Options{
			Name:    name,
			Scale:   exp.Config().Output.Scale,
			PerTick: perTick,
			FPS:     frameRate,
		})
		if errors.Is(err, gui.ErrUnavailable) {
			return fmt.Errorf("%w; rebuild with -tags gui or use the live command", err)
		}
		return err
	}
	return cmd
}
