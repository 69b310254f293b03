// Package rng wraps math/rand/v2 with the helpers the automaton needs:
// deterministic seeding, per-worker streams and a cheap unbiased bit source.
package rng

import "math/rand/v2"

// Source is a deterministic PCG-backed random source. It is not safe for
// concurrent use; give each goroutine its own stream via Split.
type Source struct {
	r    *rand.Rand
	seed uint64

	bits  uint64
	nbits uint8
}

// New creates a Source for the given seed on stream 0.
func New(seed int64) *Source {
	return newStream(uint64(seed), 0)
}

func newStream(seed, stream uint64) *Source {
	return &Source{r: rand.New(rand.NewPCG(seed, stream)), seed: seed}
}

// Split derives an independent stream that is reproducible from the parent
// seed and the stream number alone.
func (s *Source) Split(stream uint64) *Source {
	return newStream(s.seed, stream+1)
}

// NextUnbiasedBool returns one fair bit. Bits are shifted out of a cached
// 64-bit word so a full draw is only made once every 64 calls.
func (s *Source) NextUnbiasedBool() bool {
	if s.nbits == 0 {
		s.bits = s.r.Uint64()
		s.nbits = 64
	}
	b := s.bits&1 == 1
	s.bits >>= 1
	s.nbits--
	return b
}

// Jitter returns a value uniformly distributed in [-strength, strength].
func (s *Source) Jitter(strength float64) float64 {
	if strength == 0 {
		return 0
	}
	return (2*s.r.Float64() - 1) * strength
}

// Float64 returns a value in [0, 1).
func (s *Source) Float64() float64 { return s.r.Float64() }

// IntN returns a value in [0, n). It returns 0 when n <= 0.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}

// IntRange returns a value in [lo, hi].
func (s *Source) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.IntN(hi-lo+1)
}

// Shuffle permutes n elements through swap.
func (s *Source) Shuffle(n int, swap func(i, j int)) { s.r.Shuffle(n, swap) }
