package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_DeterministicSequence(t *testing.T) {
	a := NewStream(1234)
	b := NewStream(1234)

	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64(), "draw %d", i)
		require.Equal(t, a.Uint64(), b.Uint64(), "draw %d", i)
	}
}

func TestStream_Reseed(t *testing.T) {
	s := NewStream(7)
	first := make([]uint64, 10)
	for i := range first {
		first[i] = s.Uint64()
	}

	s.Reseed(7)
	for i := range first {
		assert.Equal(t, first[i], s.Uint64(), "reseed must restart the stream")
	}
}

func TestStream_Float64Range(t *testing.T) {
	s := NewStream(99)
	for i := 0; i < 10_000; i++ {
		v := s.Float64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestStream_Uint32NInclusive(t *testing.T) {
	s := NewStream(5)
	seen := make(map[uint32]bool)
	for i := 0; i < 10_000; i++ {
		v := s.Uint32N(3)
		require.LessOrEqual(t, v, uint32(3))
		seen[v] = true
	}
	assert.Len(t, seen, 4, "all values in [0, 3] should appear")
}

func TestStream_ShuffleIsPermutation(t *testing.T) {
	s := NewStream(11)
	vals := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	s.Shuffle(len(vals), func(i, j int) { vals[i], vals[j] = vals[j], vals[i] })

	seen := make(map[int]bool)
	for _, v := range vals {
		seen[v] = true
	}
	assert.Len(t, seen, 10)
}

func TestStream_PermDistinct(t *testing.T) {
	s := NewStream(13)
	perm := s.Perm(128)
	require.Len(t, perm, 128)
	seen := make(map[int]bool)
	for _, v := range perm {
		require.False(t, seen[v], "position %d repeated", v)
		seen[v] = true
	}
}
