package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	sim "github.com/parking-sim/parking-sim/sim"
)

// Status reports the occupancy snapshot plus simulator clock state.
func (s *Server) Status(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snapshot := s.sim.Facility.OccupancySnapshot()
	resp := map[string]interface{}{
		"state":       s.sim.State(),
		"clock":       s.sim.Clock,
		"time_of_day": s.sim.FormatClock(),
		"day_of_week": s.sim.DayOfWeek,
		"balked":      s.sim.Balked,
		"occupancy":   snapshot,
	}
	s.mu.Unlock()
	writeJSON(w, resp)
}

// FloorSpots lists every spot on one floor with its location, type and
// status.
func (s *Server) FloorSpots(w http.ResponseWriter, r *http.Request) {
	floor, err := strconv.Atoi(mux.Vars(r)["floor"])
	if err != nil {
		http.Error(w, "Invalid floor", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	floors := s.sim.Facility.Layout.Floors
	spots := s.sim.Facility.FloorSpots(floor)
	s.mu.Unlock()
	if floor < 0 || floor >= floors {
		http.Error(w, "Floor not found", http.StatusNotFound)
		return
	}
	writeJSON(w, spots)
}

// Path returns the coordinate sequence from a start position to a spot.
// Query params: floor, x, y (start) and spot_floor, spot_seq (target).
func (s *Server) Path(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start := sim.Position{
		Floor: atoiDefault(q.Get("floor"), 0),
		X:     atoiDefault(q.Get("x"), 0),
		Y:     atoiDefault(q.Get("y"), 0),
	}
	spotID := sim.SpotID{
		Floor: atoiDefault(q.Get("spot_floor"), 0),
		Seq:   atoiDefault(q.Get("spot_seq"), -1),
	}

	s.mu.Lock()
	path, ok := s.sim.Facility.PathToSpot(start, spotID)
	s.mu.Unlock()
	if !ok {
		http.Error(w, "No route to spot", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]interface{}{
		"spot":     spotID.String(),
		"distance": len(path) - 1,
		"path":     path,
	})
}

// GetParams returns the operator-visible simulation parameters.
func (s *Server) GetParams(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	params := s.sim.Params()
	s.mu.Unlock()
	writeJSON(w, params)
}

// UpdateParams applies operator parameter changes. Already-queued events
// keep the parameters in effect when they were scheduled.
func (s *Server) UpdateParams(w http.ResponseWriter, r *http.Request) {
	var params sim.SimParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.sim.SetParams(params)
	applied := s.sim.Params()
	s.mu.Unlock()
	writeJSON(w, applied)
}

// Start begins (or resumes) the simulation.
func (s *Server) Start(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.sim.Start()
	state := s.sim.State()
	s.mu.Unlock()
	writeJSON(w, map[string]interface{}{"state": state})
}

// Stop halts the simulation at the next event boundary.
func (s *Server) Stop(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.sim.Stop()
	state := s.sim.State()
	s.mu.Unlock()
	writeJSON(w, map[string]interface{}{"state": state})
}

// Reset clears the event queue and restores the facility.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.sim.Reset()
	state := s.sim.State()
	s.mu.Unlock()
	writeJSON(w, map[string]interface{}{"state": state})
}

// Step manually advances the simulation. Body: {"minutes": N}; defaults to
// one minute.
func (s *Server) Step(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Minutes float64 `json:"minutes"`
	}{Minutes: 1}
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}
	if req.Minutes <= 0 {
		http.Error(w, "minutes must be positive", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.sim.Step(req.Minutes)
	clock := s.sim.Clock
	s.mu.Unlock()
	writeJSON(w, map[string]interface{}{"clock": clock})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
