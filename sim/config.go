package sim

// VehicleTypeWeights holds the relative frequency of generated vehicle types.
// Weights need not be pre-normalized; the generator divides by their sum.
type VehicleTypeWeights struct {
	Standard float64 `yaml:"standard" json:"standard"`
	Handicap float64 `yaml:"handicap" json:"handicap"`
	Electric float64 `yaml:"electric" json:"electric"`
}

// Sum returns the total weight.
func (w VehicleTypeWeights) Sum() float64 {
	return w.Standard + w.Handicap + w.Electric
}

// GeneratorConfig groups vehicle generation parameters.
type GeneratorConfig struct {
	ArrivalRate     float64            // base arrivals per hour (before time-of-day scaling)
	AvgDuration     float64            // mean parking duration in minutes
	TypeWeights     VehicleTypeWeights // categorical weights per vehicle type
	PreferenceProbs map[string]float64 // named flag -> independent Bernoulli probability
}

// DefaultGeneratorConfig returns the stock demand profile: 5 arrivals/hour,
// 2-hour average stay, 80/10/10 type split, and the default driver
// preference probabilities.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		ArrivalRate: 5,
		AvgDuration: 120,
		TypeWeights: VehicleTypeWeights{Standard: 0.8, Handicap: 0.1, Electric: 0.1},
		PreferenceProbs: map[string]float64{
			PrefNearEntrance: 0.6,
			"covered_spot":   0.3,
			"easy_exit":      0.4,
		},
	}
}

// SimParams groups the operator-mutable simulation parameters. Changes apply
// only to events scheduled after the change; events already in the queue keep
// the parameters in effect at enqueue time.
type SimParams struct {
	ArrivalRate     float64            `json:"arrival_rate"`
	AvgDuration     float64            `json:"avg_duration"`
	TypeWeights     VehicleTypeWeights `json:"type_weights"`
	PreferenceProbs map[string]float64 `json:"preference_probs"`

	// SpeedMultiplier scales wall-clock pacing in serve mode only; the core
	// loop advances in logical time and never sleeps.
	SpeedMultiplier float64 `json:"speed_multiplier"`
}
