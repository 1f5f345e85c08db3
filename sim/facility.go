// The Facility owns every spot, the live-vehicle index, the navigation
// graph, occupancy counters and running statistics, and exposes the
// assign/vacate/query operations the simulator drives.

package sim

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/sirupsen/logrus"
)

// topCandidates is how many of the highest-scoring available spots are
// routed before picking the nearest one.
const topCandidates = 5

// Facility models one parking structure: a grid of cells across one or more
// floors, the spots stamped onto those cells, and the vehicles currently
// inside. All mutation goes through Assign/Vacate (and the strategies'
// transient reservations); the navigation graph is immutable after build.
type Facility struct {
	Name   string
	Layout LayoutConfig
	Graph  *NavigationGraph

	spots     map[SpotID]*Spot
	spotOrder []SpotID // creation order; the fixed enumeration order for scans
	vehicles  map[int]*Vehicle

	totalSpots     int
	availableSpots int
	Stats          *FacilityStatistics
}

// NewFacility builds a facility from a validated layout. Spot types are
// stamped cell by cell from the layout's normalized type weights using the
// provided RNG, so the same seed always yields the same facility.
// Construction fails before any spot is created if the layout is invalid.
func NewFacility(name string, layout LayoutConfig, rng *rand.Rand) (*Facility, error) {
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("facility %q: %w", name, err)
	}

	f := &Facility{
		Name:     name,
		Layout:   layout,
		Graph:    NewNavigationGraph(&layout),
		spots:    make(map[SpotID]*Spot),
		vehicles: make(map[int]*Vehicle),
		Stats:    &FacilityStatistics{},
	}

	total := layout.SpotTypes.Sum()
	seq := 1
	for floor := 0; floor < layout.Floors; floor++ {
		for y := 0; y < layout.Height; y++ {
			for x := 0; x < layout.Width; x++ {
				loc := Location{X: x, Y: y}
				if layout.isBlocked(loc) {
					continue
				}
				spot := &Spot{
					ID:       SpotID{Floor: floor, Seq: seq},
					Location: loc,
					Floor:    floor,
					Type:     drawSpotType(rng, layout.SpotTypes, total),
				}
				f.spots[spot.ID] = spot
				f.spotOrder = append(f.spotOrder, spot.ID)
				seq++
			}
		}
	}

	f.totalSpots = len(f.spots)
	f.availableSpots = f.totalSpots
	logrus.Debugf("facility %q built: %d spots across %d floor(s)", name, f.totalSpots, layout.Floors)
	return f, nil
}

// drawSpotType samples a spot type from the normalized weights.
func drawSpotType(rng *rand.Rand, w SpotTypeWeights, total float64) SpotType {
	r := rng.Float64() * total
	if r < w.Standard {
		return SpotStandard
	}
	if r < w.Standard+w.Handicap {
		return SpotHandicap
	}
	return SpotElectric
}

// Spot returns the spot with the given ID.
func (f *Facility) Spot(id SpotID) (*Spot, bool) {
	s, ok := f.spots[id]
	return s, ok
}

// Vehicle returns a vehicle from the live index.
func (f *Facility) Vehicle(id int) (*Vehicle, bool) {
	v, ok := f.vehicles[id]
	return v, ok
}

// TotalSpots returns the fixed spot count.
func (f *Facility) TotalSpots() int { return f.totalSpots }

// AvailableSpots returns the current available-spot counter.
func (f *Facility) AvailableSpots() int { return f.availableSpots }

// DefaultStart is the canonical routing start: the first entrance on the
// ground floor.
func (f *Facility) DefaultStart() Position {
	e := f.Layout.Entrances[0]
	return Position{Floor: 0, X: e.X, Y: e.Y}
}

// AvailableSpotIDs returns the IDs of all available (neither occupied nor
// reserved) spots in the facility's fixed enumeration order.
func (f *Facility) AvailableSpotIDs() []SpotID {
	var ids []SpotID
	for _, id := range f.spotOrder {
		if f.spots[id].Status() == StatusAvailable {
			ids = append(ids, id)
		}
	}
	return ids
}

// PreferenceScore computes the heuristic compatibility between a spot and a
// vehicle; higher is better. The score is a pure function of the pair:
//
//	base 10
//	+20 handicap vehicle on handicap spot
//	+15 electric vehicle on electric spot
//	 +5 any vehicle on a standard spot (standard is acceptable to anyone)
//	+max(0, 5 - d) when the vehicle wants to be near an entrance, where d is
//	  the minimum Manhattan distance from the spot to any entrance cell
func (f *Facility) PreferenceScore(spot *Spot, v *Vehicle) float64 {
	score := 10.0

	if v.HasPreference(PrefNearEntrance) {
		minDist := math.MaxInt
		for _, e := range f.Layout.Entrances {
			if d := ManhattanDistance(spot.Location, e); d < minDist {
				minDist = d
			}
		}
		score += math.Max(0, 5-float64(minDist))
	}

	switch {
	case v.Type == VehicleHandicap && spot.Type == SpotHandicap:
		score += 20
	case v.Type == VehicleElectric && spot.Type == SpotElectric:
		score += 15
	case spot.Type == SpotStandard:
		score += 5
	}
	return score
}

// FindNearestAvailable picks a spot for the vehicle: score every available
// spot, keep the top candidates by score (ties kept in enumeration order),
// route to each from start, and return the one with the shortest path.
// Equal-distance ties go to the higher-scoring candidate. Returns false if
// no spot is available.
func (f *Facility) FindNearestAvailable(v *Vehicle, start Position) (SpotID, bool) {
	if f.availableSpots == 0 {
		return SpotID{}, false
	}

	type scored struct {
		id    SpotID
		score float64
	}
	var candidates []scored
	for _, id := range f.spotOrder {
		spot := f.spots[id]
		if spot.Status() != StatusAvailable {
			continue
		}
		candidates = append(candidates, scored{id: id, score: f.PreferenceScore(spot, v)})
	}
	if len(candidates) == 0 {
		return SpotID{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > topCandidates {
		candidates = candidates[:topCandidates]
	}

	best := SpotID{}
	found := false
	shortest := math.Inf(1)
	for _, c := range candidates {
		dist, _ := f.Graph.ShortestPath(start, f.spots[c.id].Position())
		if dist < shortest {
			shortest = dist
			best = c.id
			found = true
		}
	}
	return best, found
}

// Assign resolves a spot via FindNearestAvailable from the default entrance
// and occupies it for the vehicle. Returns false when no spot is available.
func (f *Facility) Assign(v *Vehicle, now float64) bool {
	id, ok := f.FindNearestAvailable(v, f.DefaultStart())
	if !ok {
		return false
	}
	return f.AssignTo(v, id, now)
}

// AssignTo occupies the given spot for the vehicle. Fails if the spot does
// not exist or is not available. On success the vehicle joins the live
// index and the served counter increments.
func (f *Facility) AssignTo(v *Vehicle, id SpotID, now float64) bool {
	spot, ok := f.spots[id]
	if !ok {
		return false
	}
	if !spot.Occupy(v.ID, now) {
		return false
	}
	v.AssignSpot(id)
	f.vehicles[v.ID] = v
	f.availableSpots--
	f.Stats.TotalVehicles++
	logrus.Debugf("vehicle %d -> spot %s at t=%.1f", v.ID, id, now)
	return true
}

// Vacate releases an occupied spot, removes its vehicle from the live index,
// and accrues revenue for the stay. Returns the occupancy duration in
// simulation minutes, or false if the spot does not exist or is not occupied.
func (f *Facility) Vacate(id SpotID, now float64) (float64, bool) {
	spot, ok := f.spots[id]
	if !ok {
		return 0, false
	}
	occupant, occupied := spot.Occupant()
	duration, ok := spot.Vacate(now)
	if !ok {
		return 0, false
	}
	if occupied {
		delete(f.vehicles, occupant)
	}
	f.availableSpots++
	f.Stats.accrueRevenue(duration)
	logrus.Debugf("spot %s vacated after %.1f min", id, duration)
	return duration, true
}

// TypeOccupancy is the per-spot-type slice of an occupancy snapshot.
type TypeOccupancy struct {
	Total    int `json:"total"`
	Occupied int `json:"occupied"`
}

// Snapshot is a read-only view of facility occupancy.
type Snapshot struct {
	TotalSpots     int                        `json:"total_spots"`
	OccupiedSpots  int                        `json:"occupied_spots"`
	AvailableSpots int                        `json:"available_spots"`
	OccupancyRate  float64                    `json:"occupancy_rate"`
	ByType         map[SpotType]TypeOccupancy `json:"by_type"`
	Statistics     FacilityStatistics         `json:"statistics"`
}

// OccupancySnapshot reports current occupancy. Querying it folds the current
// rate into the rolling occupancy average; this is the one query with a
// mutating side effect.
func (f *Facility) OccupancySnapshot() Snapshot {
	occupied := f.totalSpots - f.availableSpots
	rate := 0.0
	if f.totalSpots > 0 {
		rate = float64(occupied) / float64(f.totalSpots)
	}
	f.Stats.observeOccupancy(rate)

	byType := make(map[SpotType]TypeOccupancy)
	for _, id := range f.spotOrder {
		spot := f.spots[id]
		t := byType[spot.Type]
		t.Total++
		if spot.Status() == StatusOccupied {
			t.Occupied++
		}
		byType[spot.Type] = t
	}

	return Snapshot{
		TotalSpots:     f.totalSpots,
		OccupiedSpots:  occupied,
		AvailableSpots: f.availableSpots,
		OccupancyRate:  rate,
		ByType:         byType,
		Statistics:     *f.Stats,
	}
}

// SpotView is the per-spot record exposed to the presentation layer.
type SpotView struct {
	ID       string     `json:"id"`
	Floor    int        `json:"floor"`
	Location Location   `json:"location"`
	Type     SpotType   `json:"type"`
	Status   SpotStatus `json:"status"`
}

// FloorSpots lists every spot on a floor in enumeration order.
func (f *Facility) FloorSpots(floor int) []SpotView {
	var views []SpotView
	for _, id := range f.spotOrder {
		spot := f.spots[id]
		if spot.Floor != floor {
			continue
		}
		views = append(views, SpotView{
			ID:       spot.ID.String(),
			Floor:    spot.Floor,
			Location: spot.Location,
			Type:     spot.Type,
			Status:   spot.Status(),
		})
	}
	return views
}

// PathToSpot returns the coordinate sequence from start to the spot, or
// false if the spot does not exist or is unreachable.
func (f *Facility) PathToSpot(start Position, id SpotID) ([]Position, bool) {
	spot, ok := f.spots[id]
	if !ok {
		return nil, false
	}
	dist, path := f.Graph.ShortestPath(start, spot.Position())
	if math.IsInf(dist, 1) {
		return nil, false
	}
	return path, true
}

// Clone produces an independently owned deep copy of the facility and its
// live vehicles for strategy isolation. The navigation graph is shared: it
// is immutable after construction.
func (f *Facility) Clone() *Facility {
	cp := &Facility{
		Name:           f.Name,
		Layout:         f.Layout,
		Graph:          f.Graph,
		spots:          make(map[SpotID]*Spot, len(f.spots)),
		spotOrder:      append([]SpotID(nil), f.spotOrder...),
		vehicles:       make(map[int]*Vehicle, len(f.vehicles)),
		totalSpots:     f.totalSpots,
		availableSpots: f.availableSpots,
	}
	stats := *f.Stats
	cp.Stats = &stats
	for id, spot := range f.spots {
		sc := *spot
		cp.spots[id] = &sc
	}
	for id, v := range f.vehicles {
		cp.vehicles[id] = v.Clone()
	}
	return cp
}

// Reset restores every spot to available, clears the live-vehicle index and
// zeroes the statistics. The spot-type stamping is preserved.
func (f *Facility) Reset() {
	for _, spot := range f.spots {
		spot.occupied = false
		spot.reserved = false
		spot.occupant = 0
		spot.occupiedSince = 0
		spot.reservedUntil = 0
	}
	f.vehicles = make(map[int]*Vehicle)
	f.availableSpots = f.totalSpots
	*f.Stats = FacilityStatistics{}
}
