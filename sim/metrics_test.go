package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccrueRevenue(t *testing.T) {
	var s FacilityStatistics

	s.accrueRevenue(60) // one hour
	assert.InDelta(t, 2.0, s.Revenue, 1e-9)

	s.accrueRevenue(30) // half an hour on top
	assert.InDelta(t, 3.0, s.Revenue, 1e-9)

	s.accrueRevenue(0)
	assert.InDelta(t, 3.0, s.Revenue, 1e-9)
}

func TestObserveOccupancy_ConvergesTowardSteadyRate(t *testing.T) {
	var s FacilityStatistics

	s.observeOccupancy(1.0)
	assert.InDelta(t, 0.05, s.AvgOccupancyRate, 1e-9)

	// Feeding the same rate repeatedly pulls the average toward it.
	for i := 0; i < 200; i++ {
		s.observeOccupancy(1.0)
	}
	assert.InDelta(t, 1.0, s.AvgOccupancyRate, 1e-3)

	// A drop to empty decays the average rather than resetting it.
	s.observeOccupancy(0)
	assert.InDelta(t, 0.95, s.AvgOccupancyRate, 1e-3)
}
