// The Simulator owns the logical clock and the time-ordered event queue, and
// drives the arrival/departure loop against its facility.

package sim

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// queuedEvent pairs an event with the monotonic sequence number assigned at
// scheduling time.
type queuedEvent struct {
	ev  Event
	seq uint64
}

// EventQueue implements heap.Interface and orders events by timestamp,
// breaking equal-timestamp ties by scheduling order (FIFO). The explicit
// tie rule keeps simultaneous arrival/departure processing deterministic.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []queuedEvent

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	ti, tj := eq[i].ev.Timestamp(), eq[j].ev.Timestamp()
	if ti != tj {
		return ti < tj
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(queuedEvent))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// SimState is the simulator lifecycle state, checked at event-processing
// boundaries.
type SimState string

const (
	SimStopped SimState = "stopped"
	SimRunning SimState = "running"
)

const minutesPerDay = 24 * 60

// Simulator is the core object that owns the logical clock, the event queue,
// and the facility it mutates. The event loop is single-threaded: all
// facility mutations are serialized through Step, so assign/vacate are atomic
// with respect to the loop. No two Simulators may share a Facility.
type Simulator struct {
	Facility  *Facility
	Generator *VehicleGenerator

	Clock     float64 // simulation minutes since Start
	TimeOfDay float64 // hours, derived from Clock after each step
	DayOfWeek int     // 0=Sunday .. 6=Saturday, derived from Clock
	Balked    int     // vehicles that found no spot and left

	// SpeedMultiplier paces serve-mode wall-clock stepping; the core loop
	// itself never consults it.
	SpeedMultiplier float64

	state  SimState
	events EventQueue
	seq    uint64
}

// NewSimulator wires a simulator to its exclusively-owned facility and
// vehicle generator.
func NewSimulator(f *Facility, gen *VehicleGenerator) *Simulator {
	return &Simulator{
		Facility:        f,
		Generator:       gen,
		SpeedMultiplier: 1,
		state:           SimStopped,
		events:          make(EventQueue, 0),
	}
}

// State returns the lifecycle state.
func (sim *Simulator) State() SimState {
	return sim.state
}

// Schedule pushes an event into the event queue, stamping it with the next
// sequence number for FIFO tie-breaking.
func (sim *Simulator) Schedule(ev Event) {
	heap.Push(&sim.events, queuedEvent{ev: ev, seq: sim.seq})
	sim.seq++
}

// PendingEvents returns the number of queued events.
func (sim *Simulator) PendingEvents() int {
	return len(sim.events)
}

// Start transitions stopped -> running, resets the logical clock to zero and
// schedules the first arrival. Starting a running simulator is a no-op.
func (sim *Simulator) Start() {
	if sim.state == SimRunning {
		return
	}
	sim.state = SimRunning
	sim.Clock = 0
	sim.updateDerivedTime()
	sim.scheduleNextArrival()
	logrus.Infof("simulation started")
}

// Stop transitions running -> stopped at the next event-processing boundary.
// The event queue and facility state are left untouched.
func (sim *Simulator) Stop() {
	if sim.state == SimStopped {
		return
	}
	sim.state = SimStopped
	logrus.Infof("[t=%07.1f] simulation stopped", sim.Clock)
}

// Reset stops the simulator, drops all queued events, zeroes the clock and
// restores the facility to its freshly-built occupancy state.
func (sim *Simulator) Reset() {
	sim.state = SimStopped
	sim.events = make(EventQueue, 0)
	sim.seq = 0
	sim.Clock = 0
	sim.Balked = 0
	sim.updateDerivedTime()
	sim.Facility.Reset()
	logrus.Infof("simulation reset")
}

// Step advances the simulation by delta minutes: every due event is popped in
// (time, sequence) order, the clock jumps to the event's time, and the event
// executes. After the due events drain, the clock lands on the target even if
// no event fell exactly there, and the derived time-of-day fields are
// recomputed. Stepping a stopped simulator does nothing.
func (sim *Simulator) Step(delta float64) {
	if sim.state != SimRunning {
		return
	}
	target := sim.Clock + delta

	for len(sim.events) > 0 && sim.events[0].ev.Timestamp() <= target {
		item := heap.Pop(&sim.events).(queuedEvent)
		sim.Clock = item.ev.Timestamp()
		logrus.Debugf("[t=%07.1f] executing %T", sim.Clock, item.ev)
		item.ev.Execute(sim)
		if sim.state != SimRunning {
			// Stop() from within an event takes effect at this boundary.
			break
		}
	}

	// Land on the target unless an event stopped the run mid-step; a stopped
	// clock stays on the last executed event so unprocessed events are not
	// left in the past.
	if sim.state == SimRunning && sim.Clock < target {
		sim.Clock = target
	}
	sim.updateDerivedTime()
}

// RunUntil steps the simulation in delta-sized increments until the clock
// reaches horizon (both in minutes).
func (sim *Simulator) RunUntil(horizon, delta float64) {
	for sim.state == SimRunning && sim.Clock < horizon {
		sim.Step(math.Min(delta, horizon-sim.Clock))
	}
}

// SetParams applies operator parameter changes. They take effect for events
// scheduled after the call; already-enqueued events keep the parameters in
// effect when they were enqueued.
func (sim *Simulator) SetParams(p SimParams) {
	cfg := sim.Generator.Config()
	cfg.ArrivalRate = p.ArrivalRate
	cfg.AvgDuration = p.AvgDuration
	cfg.TypeWeights = p.TypeWeights
	if p.PreferenceProbs != nil {
		cfg.PreferenceProbs = p.PreferenceProbs
	}
	sim.Generator.SetConfig(cfg)
	if p.SpeedMultiplier > 0 {
		sim.SpeedMultiplier = p.SpeedMultiplier
	}
	logrus.Infof("params updated: rate=%.2f/h duration=%.1fmin speed=%.1fx",
		cfg.ArrivalRate, cfg.AvgDuration, sim.SpeedMultiplier)
}

// Params returns the current operator-visible parameters.
func (sim *Simulator) Params() SimParams {
	cfg := sim.Generator.Config()
	return SimParams{
		ArrivalRate:     cfg.ArrivalRate,
		AvgDuration:     cfg.AvgDuration,
		TypeWeights:     cfg.TypeWeights,
		PreferenceProbs: cfg.PreferenceProbs,
		SpeedMultiplier: sim.SpeedMultiplier,
	}
}

// scheduleNextArrival draws the next inter-arrival gap at the current
// adjusted rate and enqueues the arrival. A zero adjusted rate schedules
// nothing: the arrival stream ends.
func (sim *Simulator) scheduleNextArrival() {
	gap, ok := sim.Generator.NextInterArrival(sim.TimeOfDay, sim.DayOfWeek)
	if !ok {
		logrus.Warnf("adjusted arrival rate is zero; no further arrivals scheduled")
		return
	}
	arrival := sim.Clock + gap
	v := sim.Generator.Next(arrival)
	sim.Schedule(&ArrivalEvent{time: arrival, Vehicle: v})
}

// updateDerivedTime recomputes time-of-day (hours) and day-of-week from the
// clock.
func (sim *Simulator) updateDerivedTime() {
	sim.TimeOfDay = math.Mod(sim.Clock, minutesPerDay) / 60
	sim.DayOfWeek = int(sim.Clock/minutesPerDay) % 7
}

// FormatClock renders the clock as a 12-hour wall time, for display only.
func (sim *Simulator) FormatClock() string {
	total := int(sim.Clock) % minutesPerDay
	hours := total / 60
	minutes := total % 60
	amPM := "AM"
	if hours >= 12 {
		amPM = "PM"
	}
	display := hours % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minutes, amPM)
}
