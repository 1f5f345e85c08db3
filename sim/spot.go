// Defines the Spot struct that models an individual parking spot in the
// facility. Tracks type, location, and the available/reserved/occupied
// state machine.

package sim

import (
	"fmt"
)

// SpotType classifies a parking spot.
type SpotType string

const (
	SpotStandard SpotType = "standard"
	SpotHandicap SpotType = "handicap"
	SpotElectric SpotType = "electric"
)

// SpotStatus is the derived lifecycle state of a spot. Exactly one status
// holds at any instant: a spot cannot be both reserved and occupied.
type SpotStatus string

const (
	StatusAvailable SpotStatus = "available"
	StatusReserved  SpotStatus = "reserved"
	StatusOccupied  SpotStatus = "occupied"
)

// DefaultReservationMinutes is the reservation horizon used when a caller
// reserves a spot without an explicit duration.
const DefaultReservationMinutes = 30.0

// Location is a cell coordinate within a single floor.
type Location struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Position is a routable coordinate in the facility: a floor plus a cell.
type Position struct {
	Floor int `json:"floor"`
	X     int `json:"x"`
	Y     int `json:"y"`
}

// SpotID identifies a spot by floor and per-facility sequence number.
type SpotID struct {
	Floor int `json:"floor"`
	Seq   int `json:"seq"`
}

func (id SpotID) String() string {
	return fmt.Sprintf("%d-%d", id.Floor, id.Seq)
}

// Spot models a single allocatable parking cell. Spots are created once at
// facility initialization and never destroyed during a run; all state changes
// go through the Occupy/Vacate/Reserve/CancelReservation transitions.
type Spot struct {
	ID       SpotID
	Location Location
	Floor    int
	Type     SpotType

	occupied      bool
	reserved      bool
	occupant      int     // vehicle ID, valid only while occupied
	occupiedSince float64 // simulation minutes, valid only while occupied
	reservedUntil float64 // simulation minutes, valid only while reserved
}

// Occupy transitions the spot to occupied for the given vehicle.
// Fails if the spot is already occupied or reserved.
func (s *Spot) Occupy(vehicleID int, now float64) bool {
	if s.occupied || s.reserved {
		return false
	}
	s.occupied = true
	s.occupant = vehicleID
	s.occupiedSince = now
	return true
}

// Vacate releases an occupied spot and returns the occupancy duration in
// simulation minutes. Fails if the spot is not occupied.
func (s *Spot) Vacate(now float64) (float64, bool) {
	if !s.occupied {
		return 0, false
	}
	duration := now - s.occupiedSince
	s.occupied = false
	s.occupant = 0
	s.occupiedSince = 0
	return duration, true
}

// Reserve holds the spot for minutes of simulation time. Fails if the spot is
// occupied or already reserved.
func (s *Spot) Reserve(now, minutes float64) bool {
	if s.occupied || s.reserved {
		return false
	}
	s.reserved = true
	s.reservedUntil = now + minutes
	return true
}

// CancelReservation clears a reservation. Fails if the spot is not reserved.
func (s *Spot) CancelReservation() bool {
	if !s.reserved {
		return false
	}
	s.reserved = false
	s.reservedUntil = 0
	return true
}

// Status derives the lifecycle state from the transition flags.
func (s *Spot) Status() SpotStatus {
	switch {
	case s.occupied:
		return StatusOccupied
	case s.reserved:
		return StatusReserved
	default:
		return StatusAvailable
	}
}

// Occupant returns the occupying vehicle ID. The second return is false when
// the spot is not occupied.
func (s *Spot) Occupant() (int, bool) {
	if !s.occupied {
		return 0, false
	}
	return s.occupant, true
}

// OccupiedSince returns the occupancy start time in simulation minutes.
func (s *Spot) OccupiedSince() (float64, bool) {
	if !s.occupied {
		return 0, false
	}
	return s.occupiedSince, true
}

// ReservedUntil returns the reservation expiry in simulation minutes.
func (s *Spot) ReservedUntil() (float64, bool) {
	if !s.reserved {
		return 0, false
	}
	return s.reservedUntil, true
}

// Position returns the spot's routable coordinate.
func (s *Spot) Position() Position {
	return Position{Floor: s.Floor, X: s.Location.X, Y: s.Location.Y}
}

func (s *Spot) String() string {
	return fmt.Sprintf("Spot %s (%s) - %s", s.ID, s.Type, s.Status())
}
