// Package rng derives independently seeded random streams from a single
// master seed, so parallel trials reproduce regardless of execution order.
package rng

import (
	"hash/fnv"
	"math/rand"

	"panelmc/ports"
)

// Deterministic implements ports.RNGPort by mixing the master seed with the
// scenario and replication indices through a splitmix64 finalizer.
type Deterministic struct {
	masterSeed uint64
}

// NewDeterministic creates a stream factory rooted at masterSeed.
func NewDeterministic(masterSeed int64) *Deterministic {
	return &Deterministic{masterSeed: uint64(masterSeed)}
}

var _ ports.RNGPort = (*Deterministic)(nil)

// TrialStream returns the generator for one (scenario, replication) cell.
func (d *Deterministic) TrialStream(scenarioIndex, replication int) *rand.Rand {
	state := d.masterSeed
	state = splitmix64(state + uint64(scenarioIndex)*0x9E3779B97F4A7C15)
	state = splitmix64(state + uint64(replication)*0xBF58476D1CE4E5B9)
	return rand.New(rand.NewSource(int64(state)))
}

// SeededStream returns a generator for a named operation outside the sweep
// grid (fixtures, calibration).
func (d *Deterministic) SeededStream(name string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(name))
	state := splitmix64(d.masterSeed ^ h.Sum64())
	return rand.New(rand.NewSource(int64(state)))
}

// splitmix64 is the finalizer from Vigna's SplitMix64; it decorrelates
// nearby seeds.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}
