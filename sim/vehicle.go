// Defines the Vehicle struct that models a single unit of parking demand.
// Tracks arrival time, expected duration, and driver preferences.

package sim

import (
	"fmt"
)

// VehicleType classifies a vehicle. Types deliberately mirror SpotType so
// that preference scoring can match vehicles to compatible spots.
type VehicleType string

const (
	VehicleStandard VehicleType = "standard"
	VehicleHandicap VehicleType = "handicap"
	VehicleElectric VehicleType = "electric"
)

// PrefNearEntrance is the named preference flag for drivers who want to park
// close to an entrance. Flags are free-form names; this is the only one the
// scoring function interprets directly.
const PrefNearEntrance = "near_entrance"

// Vehicle models a simulated demand unit requesting a spot for a bounded
// duration. Vehicles are created by the VehicleGenerator, assigned a spot at
// most once, and dropped from the live index at departure.
type Vehicle struct {
	ID               int
	Type             VehicleType
	ArrivalTime      float64 // simulation minutes
	ExpectedDuration float64 // simulation minutes
	Preferences      map[string]bool

	AssignedSpot SpotID
	Assigned     bool
}

// NewVehicle creates a vehicle with no preferences set.
func NewVehicle(id int, vtype VehicleType, arrival, duration float64) *Vehicle {
	return &Vehicle{
		ID:               id,
		Type:             vtype,
		ArrivalTime:      arrival,
		ExpectedDuration: duration,
		Preferences:      make(map[string]bool),
	}
}

// SetPreferences replaces the vehicle's preference flags.
func (v *Vehicle) SetPreferences(prefs map[string]bool) {
	v.Preferences = prefs
}

// HasPreference reports whether the named flag is set.
func (v *Vehicle) HasPreference(name string) bool {
	return v.Preferences[name]
}

// AssignSpot records the spot allocated to this vehicle.
func (v *Vehicle) AssignSpot(id SpotID) {
	v.AssignedSpot = id
	v.Assigned = true
}

// Clone returns an independent copy of the vehicle, including its
// preference map. Used by the comparison harness for strategy isolation.
func (v *Vehicle) Clone() *Vehicle {
	cp := *v
	cp.Preferences = make(map[string]bool, len(v.Preferences))
	for k, val := range v.Preferences {
		cp.Preferences[k] = val
	}
	return &cp
}

func (v *Vehicle) String() string {
	if v.Assigned {
		return fmt.Sprintf("Vehicle %d (%s) - Spot: %s", v.ID, v.Type, v.AssignedSpot)
	}
	return fmt.Sprintf("Vehicle %d (%s) - unassigned", v.ID, v.Type)
}
