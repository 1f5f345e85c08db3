package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event carries a Timestamp (in simulation minutes) and an Execute
// method that advances simulation state when invoked.
type Event interface {
	Timestamp() float64
	Execute(*Simulator)
}

// ArrivalEvent represents a vehicle arriving at the facility.
type ArrivalEvent struct {
	time    float64  // simulation time of arrival (minutes)
	Vehicle *Vehicle // the arriving vehicle
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() float64 {
	return e.time
}

// Execute tries to park the vehicle, schedules its departure on success, and
// always schedules the next arrival. A vehicle that finds no spot balks: it
// leaves and is never retried.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	logrus.Infof("<< Arrival: vehicle %d at t=%.1f", e.Vehicle.ID, e.time)

	if sim.Facility.Assign(e.Vehicle, e.time) {
		sim.Schedule(&DepartureEvent{
			time: e.Vehicle.ArrivalTime + e.Vehicle.ExpectedDuration,
			Spot: e.Vehicle.AssignedSpot,
		})
	} else {
		sim.Balked++
		logrus.Infof("vehicle %d balked: no available spot", e.Vehicle.ID)
	}

	sim.scheduleNextArrival()
}

// DepartureEvent represents a parked vehicle leaving its spot.
type DepartureEvent struct {
	time float64 // scheduled departure time (minutes)
	Spot SpotID  // the spot being vacated
}

// Timestamp returns the scheduled time of the DepartureEvent.
func (e *DepartureEvent) Timestamp() float64 {
	return e.time
}

// Execute vacates the spot. Departures schedule nothing further.
func (e *DepartureEvent) Execute(sim *Simulator) {
	logrus.Infof("<< Departure: spot %s at t=%.1f", e.Spot, e.time)
	if _, ok := sim.Facility.Vacate(e.Spot, e.time); !ok {
		logrus.Warnf("departure for spot %s which is not occupied", e.Spot)
	}
}
