package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same SimulationKey, generator and configuration
// MUST produce identical orders, ledgers and indicators.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Generators ===

const (
	// GeneratorMT19937 reproduces the reference Mersenne Twister draw sequence
	// (seeding, rejection sampling and all). Default.
	GeneratorMT19937 = "mt19937"

	// GeneratorGo draws from math/rand through a PartitionedRNG. Deterministic
	// per seed, but not comparable with reference runs.
	GeneratorGo = "go"
)

var validGenerators = map[string]bool{
	GeneratorMT19937: true,
	GeneratorGo:      true,
	"":               true, // empty defaults to mt19937
}

// IsValidGenerator returns true if name is a recognized random generator.
func IsValidGenerator(name string) bool {
	return validGenerators[name]
}

// RandomSource is the draw contract the demand generator depends on.
type RandomSource interface {
	// IntN returns a uniform int in [0, n). n must be positive.
	IntN(n int) int
	// IntRange returns a uniform int in [lo, hi], both inclusive.
	IntRange(lo, hi int) int
}

// NewRandomSource builds the named generator for key.
func NewRandomSource(generator string, key SimulationKey) (RandomSource, error) {
	switch generator {
	case GeneratorMT19937, "":
		return NewMersenneTwister(int64(key)), nil
	case GeneratorGo:
		return &mathRandSource{rng: NewPartitionedRNG(key).ForSubsystem(SubsystemDemand)}, nil
	default:
		return nil, fmt.Errorf("unknown generator %q; valid: mt19937, go", generator)
	}
}

type mathRandSource struct {
	rng *rand.Rand
}

func (s *mathRandSource) IntN(n int) int { return s.rng.Intn(n) }

func (s *mathRandSource) IntRange(lo, hi int) int { return lo + s.rng.Intn(hi-lo+1) }

// === Subsystem Constants ===

const (
	// SubsystemDemand is the RNG subsystem for order generation.
	// Uses the master seed directly so --seed maps 1:1 onto the stream.
	SubsystemDemand = "demand"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemDemand: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	derivedSeed := int64(p.key)
	if name != SubsystemDemand {
		derivedSeed ^= fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
