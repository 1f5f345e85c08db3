package sim

import (
	"hash/fnv"
	"math/rand/v2"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemWorkload is the RNG subsystem for vehicle generation
	// (arrival gaps, types, durations, preference flags).
	SubsystemWorkload = "workload"

	// SubsystemLayout is the RNG subsystem for stamping spot types onto
	// cells at facility build time.
	SubsystemLayout = "layout"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem, so that e.g. changing the demand profile never perturbs the
// spot-type stamping of the facility built from the same master seed.
//
// Derivation: each subsystem's PCG source is seeded with
// masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*subsystemRNG
}

type subsystemRNG struct {
	src *rand.PCG
	rng *rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*subsystemRNG),
	}
}

func (p *PartitionedRNG) forSubsystem(name string) *subsystemRNG {
	if s, ok := p.subsystems[name]; ok {
		return s
	}
	derived := uint64(p.key) ^ fnv1a64(name)
	src := rand.NewPCG(derived, derived^0x9e3779b97f4a7c15)
	s := &subsystemRNG{src: src, rng: rand.New(src)}
	p.subsystems[name] = s
	return s
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same subsystem name always returns the same *rand.Rand
// instance (cached). Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	return p.forSubsystem(name).rng
}

// Source returns the subsystem's underlying rand.Source for samplers that
// take a Source directly (the gonum distuv distributions). The Source is
// shared with the *rand.Rand from ForSubsystem: draws through either advance
// the same stream.
func (p *PartitionedRNG) Source(name string) rand.Source {
	return p.forSubsystem(name).src
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
