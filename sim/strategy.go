// Assignment strategies map a batch of vehicles onto available spots.
// Strategies must be side-effect free on the committed facility state: any
// spot transiently reserved during computation is released before returning,
// so the same facility can be handed to another strategy for comparison.

package sim

// Assignment maps vehicle IDs to the spot each was allocated.
type Assignment map[int]SpotID

// AssignmentStrategy is the common contract for batch spot allocation.
// Assign returns a one-to-one mapping (no spot appears twice) and leaves the
// facility in the same committed state it was called with. Empty vehicle
// batches or a full facility yield an empty mapping, never an error.
type AssignmentStrategy interface {
	Name() string
	Assign(f *Facility, vehicles []*Vehicle) Assignment
}

// GreedyStrategy assigns each vehicle the next available spot in the
// facility's fixed enumeration order, ignoring distance and preferences
// entirely. Assignment count is min(|vehicles|, |available spots|).
type GreedyStrategy struct{}

func (GreedyStrategy) Name() string { return "Greedy" }

func (GreedyStrategy) Assign(f *Facility, vehicles []*Vehicle) Assignment {
	assignments := make(Assignment)
	available := f.AvailableSpotIDs()
	for _, v := range vehicles {
		if len(available) == 0 {
			break
		}
		assignments[v.ID] = available[0]
		available = available[1:]
	}
	return assignments
}

// NearestAvailableStrategy resolves each vehicle in input order through
// FindNearestAvailable, transiently reserving the chosen spot so later
// vehicles in the batch cannot claim it. All transient reservations are
// cancelled before returning; the mapping records the computed assignments
// independent of that cleanup.
type NearestAvailableStrategy struct{}

func (NearestAvailableStrategy) Name() string { return "NearestAvailable" }

func (NearestAvailableStrategy) Assign(f *Facility, vehicles []*Vehicle) Assignment {
	assignments := make(Assignment)
	start := f.DefaultStart()

	for _, v := range vehicles {
		id, ok := f.FindNearestAvailable(v, start)
		if !ok {
			continue
		}
		assignments[v.ID] = id
		if spot, ok := f.Spot(id); ok {
			spot.Reserve(0, DefaultReservationMinutes)
		}
	}

	for _, id := range assignments {
		if spot, ok := f.Spot(id); ok {
			spot.CancelReservation()
		}
	}
	return assignments
}
