// Package api exposes the simulator to an operator over HTTP: read-only
// occupancy and routing queries plus a control surface for simulation
// parameters. The core never serves HTTP itself; this package owns the
// transport and serializes all access to the single-threaded simulator.
package api

import (
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	sim "github.com/parking-sim/parking-sim/sim"
)

// tickInterval is the wall-clock pacing of the serve loop. Each tick advances
// the simulation by tickMinutes scaled by the speed multiplier.
const (
	tickInterval = time.Second
	tickMinutes  = 1.0
)

// Server wraps one Simulator behind an HTTP surface. The simulator is
// single-threaded by design, so every handler and the pacing loop take mu.
type Server struct {
	mu   sync.Mutex
	sim  *sim.Simulator
	cron *cron.Cron
	done chan struct{}
}

// NewServer creates a server around an exclusively-owned simulator.
func NewServer(s *sim.Simulator) *Server {
	return &Server{
		sim:  s,
		cron: cron.New(),
		done: make(chan struct{}),
	}
}

// Router builds the mux router for all endpoints.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	// Read-only queries
	r.HandleFunc("/api/status", s.Status).Methods("GET")
	r.HandleFunc("/api/floors/{floor}/spots", s.FloorSpots).Methods("GET")
	r.HandleFunc("/api/path", s.Path).Methods("GET")

	// Operator control surface
	r.HandleFunc("/api/params", s.GetParams).Methods("GET")
	r.HandleFunc("/api/params", s.UpdateParams).Methods("PUT")
	r.HandleFunc("/api/start", s.Start).Methods("POST")
	r.HandleFunc("/api/stop", s.Stop).Methods("POST")
	r.HandleFunc("/api/reset", s.Reset).Methods("POST")
	r.HandleFunc("/api/step", s.Step).Methods("POST")
	return r
}

// Run starts the pacing loop and the periodic occupancy log, then blocks
// until StopLoop is called. Each tick advances the simulation by one logical
// minute times the speed multiplier while the simulator is running.
func (s *Server) Run() {
	s.cron.AddFunc("@every 1m", s.logOccupancy)
	s.cron.Start()
	defer s.cron.Stop()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.sim.State() == sim.SimRunning {
				s.sim.Step(tickMinutes * s.sim.SpeedMultiplier)
			}
			s.mu.Unlock()
		}
	}
}

// StopLoop terminates Run.
func (s *Server) StopLoop() {
	close(s.done)
}

func (s *Server) logOccupancy() {
	s.mu.Lock()
	snapshot := s.sim.Facility.OccupancySnapshot()
	clock := s.sim.FormatClock()
	s.mu.Unlock()
	logrus.Infof("[%s] occupancy %d/%d (%.1f%%), revenue %.2f",
		clock, snapshot.OccupiedSpots, snapshot.TotalSpots,
		snapshot.OccupancyRate*100, snapshot.Statistics.Revenue)
}
