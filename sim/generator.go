// Generates randomized vehicle arrivals from configured distributions:
// weighted vehicle types, clamped-Gaussian parking durations, Bernoulli
// preference flags, and time-of-day adjusted exponential arrival gaps.

package sim

import (
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// MinParkingMinutes clamps generated parking durations from below.
const MinParkingMinutes = 15.0

// hourFactors scales the base arrival rate by hour of day: morning and
// evening rush peaks, a lunch bump, and a quiet default for unlisted hours.
var hourFactors = map[int]float64{
	6: 0.5, 7: 1.0, 8: 2.0, 9: 1.5,
	12: 1.2, 13: 1.2,
	16: 1.5, 17: 2.0, 18: 1.8, 19: 1.0,
}

// offPeakFactor applies to hours not present in hourFactors.
const offPeakFactor = 0.5

// weekendFactor applies on days 0 and 6 (Sunday, Saturday).
const weekendFactor = 0.6

// VehicleGenerator produces vehicles and arrival gaps from a seeded random
// source. IDs are assigned monotonically from 1. The configuration is
// mutable through SetConfig; a change affects only vehicles generated after
// it, never ones already scheduled.
type VehicleGenerator struct {
	cfg    GeneratorConfig
	rng    *rand.Rand
	src    rand.Source
	nextID int
}

// NewVehicleGenerator creates a generator drawing from the given source.
// The rng and src must share a stream (PartitionedRNG guarantees this for a
// subsystem) so that all draws consume one deterministic sequence.
func NewVehicleGenerator(cfg GeneratorConfig, rng *rand.Rand, src rand.Source) *VehicleGenerator {
	return &VehicleGenerator{cfg: cfg, rng: rng, src: src, nextID: 1}
}

// Config returns the current generation parameters.
func (g *VehicleGenerator) Config() GeneratorConfig {
	return g.cfg
}

// SetConfig replaces the generation parameters for future draws.
func (g *VehicleGenerator) SetConfig(cfg GeneratorConfig) {
	g.cfg = cfg
}

// Next generates one vehicle arriving at the given simulation time.
func (g *VehicleGenerator) Next(arrival float64) *Vehicle {
	v := NewVehicle(g.nextID, g.drawType(), arrival, g.drawDuration())
	g.nextID++

	prefs := make(map[string]bool)
	// Flag names are iterated in sorted order so a fixed seed yields a
	// fixed draw sequence regardless of map layout.
	names := make([]string, 0, len(g.cfg.PreferenceProbs))
	for name := range g.cfg.PreferenceProbs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if g.rng.Float64() < g.cfg.PreferenceProbs[name] {
			prefs[name] = true
		}
	}
	v.SetPreferences(prefs)
	return v
}

// drawType samples a vehicle type from the normalized weights.
func (g *VehicleGenerator) drawType() VehicleType {
	w := g.cfg.TypeWeights
	total := w.Sum()
	if total <= 0 {
		return VehicleStandard
	}
	r := g.rng.Float64() * total
	if r < w.Standard {
		return VehicleStandard
	}
	if r < w.Standard+w.Handicap {
		return VehicleHandicap
	}
	return VehicleElectric
}

// drawDuration samples a parking duration from a Gaussian centered on the
// configured mean with sigma mean/4, clamped to the minimum stay.
func (g *VehicleGenerator) drawDuration() float64 {
	normal := distuv.Normal{
		Mu:    g.cfg.AvgDuration,
		Sigma: g.cfg.AvgDuration / 4,
		Src:   g.src,
	}
	d := normal.Rand()
	if d < MinParkingMinutes {
		d = MinParkingMinutes
	}
	return d
}

// AdjustedRate returns the arrival rate (per hour) scaled by the hour-of-day
// factor and the weekend factor.
func (g *VehicleGenerator) AdjustedRate(timeOfDay float64, dayOfWeek int) float64 {
	factor, ok := hourFactors[int(timeOfDay)]
	if !ok {
		factor = offPeakFactor
	}
	weekend := 1.0
	if dayOfWeek == 0 || dayOfWeek == 6 {
		weekend = weekendFactor
	}
	return g.cfg.ArrivalRate * factor * weekend
}

// NextInterArrival draws the gap in minutes until the next arrival from an
// exponential distribution with mean 60/adjustedRate. When the adjusted rate
// is zero no further arrival is ever scheduled and ok is false.
func (g *VehicleGenerator) NextInterArrival(timeOfDay float64, dayOfWeek int) (float64, bool) {
	rate := g.AdjustedRate(timeOfDay, dayOfWeek)
	if rate <= 0 {
		return 0, false
	}
	meanGap := 60 / rate
	exp := distuv.Exponential{Rate: 1 / meanGap, Src: g.src}
	return exp.Rand(), true
}
