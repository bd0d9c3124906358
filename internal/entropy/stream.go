// Package entropy provides a deterministic uniform random stream for the
// simulation. One Stream is owned exclusively by one consumer; given the same
// seed and the same sequence of calls it reproduces the same draws.
package entropy

import "math/rand"

// Stream is a seeded pseudorandom source of uniform draws. It is not safe for
// concurrent use; the owning engine serializes all access.
type Stream struct {
	rng *rand.Rand
}

// NewStream creates a stream seeded with the given value.
func NewStream(seed uint64) *Stream {
	return &Stream{rng: rand.New(rand.NewSource(int64(seed)))}
}

// Reseed resets the stream to the state it would have immediately after
// NewStream(seed). Prior draw history is discarded.
func (s *Stream) Reseed(seed uint64) {
	s.rng = rand.New(rand.NewSource(int64(seed)))
}

// Float64 returns a uniform draw in [0, 1).
func (s *Stream) Float64() float64 {
	return s.rng.Float64()
}

// Uint64 returns a uniform 64-bit value. Used for genome words and
// recombination masks.
func (s *Stream) Uint64() uint64 {
	return s.rng.Uint64()
}

// IntN returns a uniform integer in [0, n). Panics if n <= 0, matching
// math/rand.
func (s *Stream) IntN(n int) int {
	return s.rng.Intn(n)
}

// Uint32N returns a uniform integer in [0, max], inclusive.
func (s *Stream) Uint32N(max uint32) uint32 {
	return uint32(s.rng.Int63n(int64(max) + 1))
}

// Coin returns true with probability 1/2.
func (s *Stream) Coin() bool {
	return s.rng.Uint64()&1 == 1
}

// Shuffle performs an unbiased Fisher-Yates shuffle over n elements.
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}

// Perm returns a uniform permutation of [0, n).
func (s *Stream) Perm(n int) []int {
	return s.rng.Perm(n)
}
