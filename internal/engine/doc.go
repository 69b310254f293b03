// Package engine runs the territorial majority-vote automaton.
//
// The package ties the lower layers together:
//
//   - [grid.Grid]: toroidal cell storage
//   - [schedule.ActiveSet]: cells still worth evaluating
//   - [vote.Majority]: the per-cell vote with fair tie-break
//   - [mutation.Strategy]: the colour a converting cell adopts
//   - [Engine]: evaluate, commit, reschedule, drift, terminate
//
// # Example
//
//	cfg := engine.DefaultConfig()
//	cfg.Strategy = mutation.KindSpiral
//	eng, _ := engine.New(cfg)
//	report, _ := eng.Run(ctx)
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. Evaluation fans out over worker
// goroutines internally, but Advance, Run and the accessors must be called
// from one goroutine at a time. Between generations the engine is always in
// a consistent state, so a host may stop advancing at any point.
package engine
