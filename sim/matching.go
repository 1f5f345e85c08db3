// OptimalMatchingStrategy solves the vehicle/spot allocation as a
// minimum-cost bipartite assignment (Kuhn-Munkres).

package sim

import (
	"math"
)

// costFloor keeps every matrix entry strictly positive; degenerate inputs
// where distance minus the preference bonus would go non-positive are clamped
// here instead of failing the solver.
const costFloor = 0.1

// OptimalMatchingStrategy builds a cost matrix over the available spots and
// solves a minimum-cost one-to-one assignment. The candidate spot set is
// capped at 2x the vehicle count to bound the matrix; when vehicles
// outnumber available spots only a prefix of vehicles (up to the spot count)
// participates and the rest stay unassigned.
//
// The produced mapping's total cost is minimal under the cost function
// dist(entrance, spot) - preferenceScore(spot, vehicle)/5, floored at
// costFloor, among all feasible one-to-one mappings over the candidate set.
type OptimalMatchingStrategy struct{}

func (OptimalMatchingStrategy) Name() string { return "OptimalMatching" }

func (OptimalMatchingStrategy) Assign(f *Facility, vehicles []*Vehicle) Assignment {
	assignments := make(Assignment)

	available := f.AvailableSpotIDs()
	if len(vehicles) == 0 || len(available) == 0 {
		return assignments
	}

	if len(vehicles) > len(available) {
		vehicles = vehicles[:len(available)]
	}
	if limit := 2 * len(vehicles); len(available) > limit {
		available = available[:limit]
	}

	start := f.DefaultStart()
	cost := make([][]float64, len(vehicles))
	for i, v := range vehicles {
		cost[i] = make([]float64, len(available))
		for j, id := range available {
			cost[i][j] = f.assignmentCost(start, v, id)
		}
	}

	for i, j := range solveAssignment(cost) {
		assignments[vehicles[i].ID] = available[j]
	}
	return assignments
}

// assignmentCost is the matrix entry for one (vehicle, spot) pair: routing
// distance from the entrance, discounted by a fifth of the preference score,
// floored to stay positive. Falls back to Manhattan distance when routing
// reports the spot unreachable.
func (f *Facility) assignmentCost(start Position, v *Vehicle, id SpotID) float64 {
	spot, _ := f.Spot(id)
	dist, _ := f.Graph.ShortestPath(start, spot.Position())
	if math.IsInf(dist, 1) {
		dist = float64(ManhattanDistance(Location{X: start.X, Y: start.Y}, spot.Location))
	}
	c := dist - f.PreferenceScore(spot, v)/5
	return math.Max(costFloor, c)
}

// solveAssignment solves the rectangular min-cost assignment problem with
// the Kuhn-Munkres potentials formulation in O(n^2 m). cost must be n x m
// with n <= m and finite entries; the result maps each row i to its matched
// column.
func solveAssignment(cost [][]float64) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}
	m := len(cost[0])

	// 1-based potentials and matching, per the standard formulation.
	u := make([]float64, n+1)
	v := make([]float64, m+1)
	match := make([]int, m+1) // match[j] = row matched to column j, 0 = free
	way := make([]int, m+1)

	for i := 1; i <= n; i++ {
		match[0] = i
		j0 := 0
		minv := make([]float64, m+1)
		used := make([]bool, m+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}

		// Grow an alternating tree from row i until a free column is found.
		for {
			used[j0] = true
			i0 := match[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= m; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= m; j++ {
				if used[j] {
					u[match[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if match[j0] == 0 {
				break
			}
		}

		// Augment along the found path.
		for j0 != 0 {
			j1 := way[j0]
			match[j0] = match[j1]
			j0 = j1
		}
	}

	result := make([]int, n)
	for j := 1; j <= m; j++ {
		if match[j] > 0 {
			result[match[j]-1] = j - 1
		}
	}
	return result
}
