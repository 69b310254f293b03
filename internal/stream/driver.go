package stream

import (
	"context"
	"time"

	"github.com/san-kum/territory/internal/engine"
)

// Driver advances an engine on a fixed interval and publishes frames.
// It keeps serving after the engine completes so late joiners and reset
// commands still work.
type Driver struct {
	Engine   *engine.Engine
	Hub      *Hub
	Commands <-chan Command
	// Interval between ticks. Each tick advances PerTick generations.
	Interval time.Duration
	PerTick  int
	// Every publishes one frame per this many generations.
	Every int
}

// Run blocks until ctx is done.
func (d *Driver) Run(ctx context.Context) error {
	perTick := max(d.PerTick, 1)
	interval := d.Interval
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	obs := Observer(d.Hub, d.Every)
	d.Hub.Publish(Capture(d.Engine, d.initialReport()))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	running := true
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-d.Commands:
			switch cmd.Type {
			case "pause":
				running = false
			case "resume":
				running = true
			case "step":
				running = false
				d.advance(1, obs)
			case "reset":
				d.Engine.Reset(d.Engine.Config().Seed + 1)
				d.Hub.Publish(Capture(d.Engine, d.initialReport()))
			}
		case <-ticker.C:
			if running {
				d.advance(perTick, obs)
			}
		}
	}
}

func (d *Driver) advance(n int, obs engine.Observer) {
	for i := 0; i < n && !d.Engine.IsComplete(); i++ {
		r := d.Engine.Advance()
		obs.OnGeneration(d.Engine, r)
	}
}

func (d *Driver) initialReport() engine.Report {
	return engine.Report{
		Generation: d.Engine.Generation(),
		Active:     d.Engine.ActiveCount(),
		Complete:   d.Engine.IsComplete(),
	}
}
