package sim

import "math/bits"

// GenomeBits is the fixed genome size in bits.
const GenomeBits = 128

// Genome is a 128-bit genome stored as two 64-bit words. Word 0 holds bit
// positions 0-63, word 1 holds positions 64-127.
type Genome struct {
	W0 uint64
	W1 uint64
}

// SimilarBits counts the positions at which two genomes carry the same bit,
// across all 128 positions (128 minus the Hamming distance).
func (g Genome) SimilarBits(other Genome) int {
	return bits.OnesCount64(^(g.W0 ^ other.W0)) + bits.OnesCount64(^(g.W1 ^ other.W1))
}

// Bit returns the bit at position pos (0-127).
func (g Genome) Bit(pos int) uint64 {
	if pos < 64 {
		return (g.W0 >> pos) & 1
	}
	return (g.W1 >> (pos - 64)) & 1
}

// flip inverts the bit at position pos (0-127).
func (g *Genome) flip(pos int) {
	if pos < 64 {
		g.W0 ^= 1 << pos
	} else {
		g.W1 ^= 1 << (pos - 64)
	}
}

// recombine builds a child genome from two parents: where a mask bit is 1
// the child inherits the mother's bit, otherwise the father's. Each mask is
// an independent uniform 64-bit draw, so every position is a fair coin.
func recombine(mother, father Genome, m0, m1 uint64) Genome {
	return Genome{
		W0: (mother.W0 & m0) | (father.W0 &^ m0),
		W1: (mother.W1 & m1) | (father.W1 &^ m1),
	}
}

// incestBlocked reports whether two genomes are too similar to permit
// pairing or conception: true iff the count of equal bits exceeds the
// threshold. Symmetric in its arguments and free of side effects.
func incestBlocked(a, b Genome, threshold uint32) bool {
	return uint32(a.SimilarBits(b)) > threshold
}
