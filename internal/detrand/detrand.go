// Deterministic randomness helpers for world generation and scheduling jitter.
package detrand

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand"
)

// Hash01 maps a tuple of key parts to a unit float in [0,1). The mapping is
// stateless: the same parts always produce the same value, across process
// restarts and replays. Schedule jitter must never come from a stateful RNG.
func Hash01(parts ...uint64) float64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(buf[:], p)
		h.Write(buf[:])
	}
	// Keep 53 bits so the quotient is exactly representable.
	return float64(h.Sum64()>>11) / float64(1<<53)
}

// HashString01 is Hash01 for string-keyed tuples (member ids, target ids).
func HashString01(key string, parts ...uint64) float64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	var buf [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(buf[:], p)
		h.Write(buf[:])
	}
	return float64(h.Sum64()>>11) / float64(1<<53)
}

// Seed derives a stable int64 seed from a string key, for seeding Source.
func Seed(key string) int64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return int64(h.Sum64())
}

// Source is a seeded pseudo-random source for procedural world generation.
// Transitions that need streaming randomness take a *Source explicitly; the
// core never reaches for the global rand.
type Source struct {
	rng *rand.Rand
}

// New returns a Source seeded with the given value.
func New(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Float64 returns the next float in [0,1).
func (s *Source) Float64() float64 { return s.rng.Float64() }

// Intn returns a uniform int in [0,n).
func (s *Source) Intn(n int) int { return s.rng.Intn(n) }

// Range returns a uniform float in [min,max).
func (s *Source) Range(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.rng.Float64()*(max-min)
}

// WeightedIndex picks an index proportionally to the given weights.
// Returns 0 when all weights are zero or negative.
func (s *Source) WeightedIndex(weights []float64) int {
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}
	roll := s.rng.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		roll -= w
		if roll < 0 {
			return i
		}
	}
	return len(weights) - 1
}
