// Package mcts implements the persistent, memoized Monte Carlo tree search
// engine: an arena of nodes and edges addressed by index instead of pointer,
// UCB1 selection, random rollout, and negamax-convention backpropagation.
package mcts

import "math/rand"

// defaultSeed mirrors the original engine's fixed thread-local seed, used by
// NewDefaultRNG. (cmd/uttt does not use it: with -seed left at 0 it seeds
// from the clock.)
// math/rand.NewSource takes an int64; the bit pattern below is taken as-is
// rather than trimmed to fit, matching the 64-bit constant it's ported from.
var defaultSeedBits uint64 = 0xfeebdaeddeadbeef
var defaultSeed = int64(defaultSeedBits)

// RNG is the single-threaded pseudo-random source a search uses for both
// rollout move choice and edge selection among unvisited children. It wraps
// math/rand.Rand rather than the global math/rand functions so a Tree can
// own a private, reproducibly-seeded instance instead of sharing process-wide
// state — the Go analogue of the original's thread-local RNG cell.
type RNG struct {
	r *rand.Rand
}

// NewRNG returns an RNG seeded with seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// NewDefaultRNG returns an RNG seeded with the engine's fixed default seed.
func NewDefaultRNG() *RNG {
	return NewRNG(defaultSeed)
}

// UniformExclusive returns a pseudo-random integer in [0, max).
//
// Contract: max must be > 0.
func (g *RNG) UniformExclusive(max int) int {
	return g.r.Intn(max)
}

// Rand exposes the underlying *rand.Rand for APIs (like
// game.Simulation.SimulateRandom) that take one directly.
func (g *RNG) Rand() *rand.Rand {
	return g.r
}
