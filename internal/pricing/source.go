package pricing

import (
	"math/rand/v2"
)

// NormalSource draws standard normal variates. *rand.Rand satisfies it.
type NormalSource interface {
	NormFloat64() float64
}

// Source hands out an independent normal stream per chunk of paths.
// Stream must be safe to call from multiple goroutines; the returned
// NormalSource is used by a single goroutine only.
type Source interface {
	Stream(chunk uint64) NormalSource
}

// SeededSource derives a PCG stream for every chunk from one seed,
// so two runs with the same seed draw identical variates.
type SeededSource struct {
	seed uint64
}

// NewSeededSource returns a reproducible source.
func NewSeededSource(seed uint64) *SeededSource {
	return &SeededSource{seed: seed}
}

// NewEntropySource returns a source seeded from the runtime's random generator.
// Seed reports the value picked so the run can be replayed.
func NewEntropySource() *SeededSource {
	return &SeededSource{seed: rand.Uint64()}
}

// Seed returns the seed the source was built with.
func (s *SeededSource) Seed() uint64 { return s.seed }

// Stream returns the generator for a chunk.
func (s *SeededSource) Stream(chunk uint64) NormalSource {
	// PCG's second word selects the stream; mixing it keeps neighbouring chunks apart.
	return rand.New(rand.NewPCG(s.seed, splitmix64(chunk)))
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
