// The comparison harness runs every registered strategy on an isolated clone
// of the same facility state and vehicle batch, so strategies never observe
// each other's side effects, and aggregates comparative metrics.

package sim

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// StrategyResult is one strategy's aggregate outcome on a batch.
type StrategyResult struct {
	Strategy      string        `json:"strategy"`
	Assignments   int           `json:"assignments"`
	AvgDistance   float64       `json:"avg_distance"`
	AvgPreference float64       `json:"avg_preference"`
	ExecutionTime time.Duration `json:"execution_time"`
}

// ComparisonHarness benchmarks strategies head-to-head on identical inputs.
// Each strategy operates on an independently owned deep copy of the facility
// and vehicle batch. With Parallel set, strategies evaluate concurrently;
// this is safe because every clone is exclusively owned, and results are
// identical either way apart from ExecutionTime.
type ComparisonHarness struct {
	Strategies []AssignmentStrategy
	Parallel   bool
}

// NewComparisonHarness registers the three stock strategies.
func NewComparisonHarness() *ComparisonHarness {
	return &ComparisonHarness{
		Strategies: []AssignmentStrategy{
			GreedyStrategy{},
			NearestAvailableStrategy{},
			OptimalMatchingStrategy{},
		},
	}
}

// Run evaluates every strategy against clones of the given starting state
// and returns one result per strategy, in registration order.
func (h *ComparisonHarness) Run(f *Facility, vehicles []*Vehicle) []StrategyResult {
	results := make([]StrategyResult, len(h.Strategies))

	if h.Parallel {
		var wg sync.WaitGroup
		for i, strat := range h.Strategies {
			wg.Add(1)
			go func(i int, strat AssignmentStrategy) {
				defer wg.Done()
				results[i] = h.evaluate(strat, f, vehicles)
			}(i, strat)
		}
		wg.Wait()
		return results
	}

	for i, strat := range h.Strategies {
		results[i] = h.evaluate(strat, f, vehicles)
	}
	return results
}

// evaluate times one strategy on its own clone and computes the mapping's
// metrics against the cloned post-call state.
func (h *ComparisonHarness) evaluate(strat AssignmentStrategy, f *Facility, vehicles []*Vehicle) StrategyResult {
	fc := f.Clone()
	vc := make([]*Vehicle, len(vehicles))
	for i, v := range vehicles {
		vc[i] = v.Clone()
	}

	start := time.Now()
	mapping := strat.Assign(fc, vc)
	elapsed := time.Since(start)

	result := StrategyResult{
		Strategy:      strat.Name(),
		Assignments:   len(mapping),
		ExecutionTime: elapsed,
	}
	if len(mapping) == 0 {
		return result
	}

	vehicleByID := make(map[int]*Vehicle, len(vc))
	for _, v := range vc {
		vehicleByID[v.ID] = v
	}

	entrance := fc.DefaultStart()
	totalDistance := 0.0
	totalPreference := 0.0
	for vehicleID, spotID := range mapping {
		spot, ok := fc.Spot(spotID)
		if !ok {
			logrus.Warnf("strategy %s mapped vehicle %d to unknown spot %s", strat.Name(), vehicleID, spotID)
			continue
		}
		dist, _ := fc.Graph.ShortestPath(entrance, spot.Position())
		if math.IsInf(dist, 1) {
			dist = float64(ManhattanDistance(Location{X: entrance.X, Y: entrance.Y}, spot.Location))
		}
		totalDistance += dist
		totalPreference += fc.PreferenceScore(spot, vehicleByID[vehicleID])
	}

	result.AvgDistance = totalDistance / float64(len(mapping))
	result.AvgPreference = totalPreference / float64(len(mapping))
	return result
}

// PrintResults renders the head-to-head table.
func PrintResults(results []StrategyResult) {
	fmt.Println("=== Strategy Comparison ===")
	fmt.Printf("%-18s %12s %12s %14s %14s\n", "Strategy", "Assignments", "AvgDistance", "AvgPreference", "ExecTime")
	for _, r := range results {
		fmt.Printf("%-18s %12d %12.2f %14.2f %14s\n",
			r.Strategy, r.Assignments, r.AvgDistance, r.AvgPreference, r.ExecutionTime)
	}
}
