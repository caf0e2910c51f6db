package ports

import "math/rand"

// RNGPort provides seeded random number generation for deterministic trials
type RNGPort interface {
	// TrialStream returns an independently seeded generator for one
	// replication. The stream depends only on (master seed, scenario index,
	// replication index), so results reproduce under any execution order.
	TrialStream(scenarioIndex, replication int) *rand.Rand

	// SeededStream creates a deterministic generator for a named operation.
	SeededStream(name string) *rand.Rand
}
