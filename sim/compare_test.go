package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compareFixture(t *testing.T) (*Facility, []*Vehicle) {
	t.Helper()
	f := scenarioFacility(t, 10, 5, Location{X: 0, Y: 2}, []Location{
		{X: 1, Y: 1}, {X: 2, Y: 3}, {X: 4, Y: 2}, {X: 6, Y: 1}, {X: 8, Y: 3},
	})
	vehicles := []*Vehicle{
		NewVehicle(1, VehicleStandard, 0, 60),
		NewVehicle(2, VehicleHandicap, 0, 90),
		NewVehicle(3, VehicleElectric, 0, 30),
	}
	return f, vehicles
}

// stripTimes zeroes the wall-clock measurements so runs can be compared.
func stripTimes(results []StrategyResult) []StrategyResult {
	out := append([]StrategyResult(nil), results...)
	for i := range out {
		out[i].ExecutionTime = 0
	}
	return out
}

func TestHarness_RunsAllStrategiesInOrder(t *testing.T) {
	f, vehicles := compareFixture(t)
	results := NewComparisonHarness().Run(f, vehicles)

	require.Len(t, results, 3)
	assert.Equal(t, "Greedy", results[0].Strategy)
	assert.Equal(t, "NearestAvailable", results[1].Strategy)
	assert.Equal(t, "OptimalMatching", results[2].Strategy)
	for _, r := range results {
		assert.Equal(t, len(vehicles), r.Assignments, r.Strategy)
		assert.Greater(t, r.AvgDistance, 0.0, r.Strategy)
		assert.Greater(t, r.AvgPreference, 0.0, r.Strategy)
	}
}

func TestHarness_LeavesInputStateUntouched(t *testing.T) {
	f, vehicles := compareFixture(t)

	NewComparisonHarness().Run(f, vehicles)

	assert.Equal(t, f.TotalSpots(), f.AvailableSpots())
	assert.Equal(t, 0, f.Stats.TotalVehicles)
	for _, v := range vehicles {
		assert.False(t, v.Assigned)
	}
}

func TestHarness_ParallelMatchesSerial(t *testing.T) {
	f, vehicles := compareFixture(t)

	serial := NewComparisonHarness()
	parallel := NewComparisonHarness()
	parallel.Parallel = true

	got1 := stripTimes(serial.Run(f, vehicles))
	got2 := stripTimes(parallel.Run(f, vehicles))

	assert.Equal(t, got1, got2)
}

func TestHarness_RepeatRunsAreIdentical(t *testing.T) {
	f, vehicles := compareFixture(t)
	h := NewComparisonHarness()

	got1 := stripTimes(h.Run(f, vehicles))
	got2 := stripTimes(h.Run(f, vehicles))

	assert.Equal(t, got1, got2)
}

func TestHarness_EmptyBatch(t *testing.T) {
	f, _ := compareFixture(t)
	results := NewComparisonHarness().Run(f, nil)

	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, 0, r.Assignments)
		assert.Equal(t, 0.0, r.AvgDistance)
		assert.Equal(t, 0.0, r.AvgPreference)
	}
}

func TestHarness_FullFacilityYieldsNoAssignments(t *testing.T) {
	f, vehicles := compareFixture(t)
	for i, id := range f.AvailableSpotIDs() {
		require.True(t, f.AssignTo(NewVehicle(100+i, VehicleStandard, 0, 60), id, 0))
	}

	results := NewComparisonHarness().Run(f, vehicles)

	for _, r := range results {
		assert.Equal(t, 0, r.Assignments, r.Strategy)
	}
}
