// Package viz provides a terminal view of a running territory simulation.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view of one engine, drawn with half-block cells
//   - [NewMenu]: preset picker that launches a [Model]
//   - Theme selection with built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Advance one generation
//	R     - Restart with the next seed
//	+/-   - Generations per frame
//	S     - Save a PNG snapshot
//	G     - Toggle GIF recording
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
