// Tracks facility-wide running statistics: vehicles served, rolling
// occupancy, and accrued revenue.

package sim

import "fmt"

// RevenuePerHour is the billing rate applied to each occupied hour.
const RevenuePerHour = 2.0

// occupancySmoothing is the exponential weight kept from the previous
// rolling-average sample on each occupancy query.
const occupancySmoothing = 0.95

// FacilityStatistics aggregates running counters for final reporting.
// Useful for evaluating allocation behavior over a whole run.
type FacilityStatistics struct {
	TotalVehicles    int     // vehicles ever assigned a spot
	AvgOccupancyRate float64 // exponentially-weighted rolling occupancy
	Revenue          float64 // accrued currency units
}

// observeOccupancy folds one occupancy-rate sample into the rolling average.
func (s *FacilityStatistics) observeOccupancy(rate float64) {
	s.AvgOccupancyRate = s.AvgOccupancyRate*occupancySmoothing + rate*(1-occupancySmoothing)
}

// accrueRevenue bills one completed stay of the given length.
func (s *FacilityStatistics) accrueRevenue(durationMinutes float64) {
	s.Revenue += durationMinutes / 60 * RevenuePerHour
}

// Print displays the aggregated statistics at the end of a run.
func (s *FacilityStatistics) Print() {
	fmt.Println("=== Facility Statistics ===")
	fmt.Printf("Vehicles Served      : %d\n", s.TotalVehicles)
	fmt.Printf("Avg Occupancy Rate   : %.2f%%\n", s.AvgOccupancyRate*100)
	fmt.Printf("Revenue              : %.2f\n", s.Revenue)
}
