// Package analysis characterises a finished run from its telemetry.
//
//   - [PowerSpectrum]: FFT magnitude of a per-generation series
//   - [DominantPeriod]: strongest periodic component of a series
//   - [DetectCycle]: exact repetition at the tail of a series
//   - [Analyze]: one [Summary] per run
//
// # Oscillation
//
// Majority automata need not settle. A run that hits its generation cap
// with a short exact cycle in its changed count is oscillating rather than
// slow:
//
//	s := analysis.Analyze(stats)
//	if !s.Settled && s.Period > 0 {
//	    // blinking boundary
//	}
package analysis
