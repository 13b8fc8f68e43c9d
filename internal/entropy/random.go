// Package entropy provides the seedable random source injected into every
// stochastic system, so tests can pin exact outcomes for probability-gated
// branches. Falls back to crypto/rand seeding when no seed is supplied.
package entropy

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// Source is a seedable random stream. The simulation is single-writer, so
// Source is deliberately not safe for concurrent use.
type Source struct {
	rng *rand.Rand
}

// New creates a Source from an explicit seed. A zero seed draws one from
// crypto/rand so unseeded runs still diverge between sessions.
func New(seed int64) *Source {
	if seed == 0 {
		seed = cryptoSeed()
	}
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Float returns a random float64 in [0, 1).
func (s *Source) Float() float64 {
	return s.rng.Float64()
}

// Intn returns a random int in [0, n). n must be > 0.
func (s *Source) Intn(n int) int {
	return s.rng.Intn(n)
}

// Range returns a random int in [lo, hi] inclusive.
func (s *Source) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// Chance rolls a probability in [0, 1] and reports whether it hit.
func (s *Source) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.rng.Float64() < p
}

func cryptoSeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 1
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
}
