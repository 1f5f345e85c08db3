package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSim wires a simulator to a small scenario facility with the arrival
// stream disabled, so tests schedule events explicitly.
func newTestSim(t *testing.T, spotCells ...Location) *Simulator {
	t.Helper()
	f := scenarioFacility(t, 6, 3, Location{X: 0, Y: 1}, spotCells)
	cfg := DefaultGeneratorConfig()
	cfg.ArrivalRate = 0
	return NewSimulator(f, testGenerator(1, cfg))
}

// recordedEvent logs its execution into a shared trace.
type recordedEvent struct {
	time  float64
	label string
	trace *[]string
}

func (e *recordedEvent) Timestamp() float64 { return e.time }
func (e *recordedEvent) Execute(*Simulator) { *e.trace = append(*e.trace, e.label) }

// stopEvent stops the simulator from inside the event loop.
type stopEvent struct{ time float64 }

func (e *stopEvent) Timestamp() float64      { return e.time }
func (e *stopEvent) Execute(sim *Simulator)  { sim.Stop() }

func TestStep_ExecutesEventsInTimestampOrder(t *testing.T) {
	sim := newTestSim(t, Location{X: 1, Y: 1})
	var trace []string
	sim.Schedule(&recordedEvent{time: 30, label: "late", trace: &trace})
	sim.Schedule(&recordedEvent{time: 10, label: "early", trace: &trace})
	sim.Schedule(&recordedEvent{time: 20, label: "middle", trace: &trace})

	sim.Start()
	sim.Step(60)

	assert.Equal(t, []string{"early", "middle", "late"}, trace)
	assert.Equal(t, 60.0, sim.Clock)
	assert.Equal(t, 0, sim.PendingEvents())
}

func TestStep_EqualTimestampsRunInSchedulingOrder(t *testing.T) {
	sim := newTestSim(t, Location{X: 1, Y: 1})
	var trace []string
	for _, label := range []string{"first", "second", "third"} {
		sim.Schedule(&recordedEvent{time: 5, label: label, trace: &trace})
	}

	sim.Start()
	sim.Step(10)

	assert.Equal(t, []string{"first", "second", "third"}, trace)
}

func TestStep_LeavesFutureEventsQueued(t *testing.T) {
	sim := newTestSim(t, Location{X: 1, Y: 1})
	var trace []string
	sim.Schedule(&recordedEvent{time: 5, label: "due", trace: &trace})
	sim.Schedule(&recordedEvent{time: 50, label: "future", trace: &trace})

	sim.Start()
	sim.Step(10)

	assert.Equal(t, []string{"due"}, trace)
	assert.Equal(t, 1, sim.PendingEvents())
	assert.Equal(t, 10.0, sim.Clock)
}

func TestStep_StoppedSimulatorDoesNothing(t *testing.T) {
	sim := newTestSim(t, Location{X: 1, Y: 1})
	var trace []string
	sim.Schedule(&recordedEvent{time: 1, label: "never", trace: &trace})

	sim.Step(10)

	assert.Empty(t, trace)
	assert.Equal(t, 0.0, sim.Clock)
	assert.Equal(t, SimStopped, sim.State())
}

func TestStep_StopFromEventHaltsMidStep(t *testing.T) {
	sim := newTestSim(t, Location{X: 1, Y: 1})
	var trace []string
	sim.Schedule(&recordedEvent{time: 5, label: "before", trace: &trace})
	sim.Schedule(&stopEvent{time: 10})
	sim.Schedule(&recordedEvent{time: 15, label: "after", trace: &trace})

	sim.Start()
	sim.Step(60)

	// The event after the stop stays queued and the clock holds at the stop.
	assert.Equal(t, []string{"before"}, trace)
	assert.Equal(t, SimStopped, sim.State())
	assert.Equal(t, 10.0, sim.Clock)
	assert.Equal(t, 1, sim.PendingEvents())
}

func TestArrivalDeparture_RoundTripThroughTheLoop(t *testing.T) {
	// GIVEN one spot and an arrival at t=10 staying 60 minutes
	sim := newTestSim(t, Location{X: 1, Y: 1})
	v := NewVehicle(1, VehicleStandard, 10, 60)
	sim.Schedule(&ArrivalEvent{time: 10, Vehicle: v})

	// WHEN one step covers both the arrival and the departure
	sim.Start()
	sim.Step(100)

	// THEN the spot is free again and the hour of parking was billed
	f := sim.Facility
	assert.Equal(t, 1, f.AvailableSpots())
	assert.Equal(t, 1, f.Stats.TotalVehicles)
	assert.InDelta(t, 2.0, f.Stats.Revenue, 1e-9)
	assert.Equal(t, 0, sim.Balked)
}

func TestArrival_BalksWhenFull(t *testing.T) {
	sim := newTestSim(t, Location{X: 1, Y: 1})
	sim.Schedule(&ArrivalEvent{time: 5, Vehicle: NewVehicle(1, VehicleStandard, 5, 500)})
	sim.Schedule(&ArrivalEvent{time: 6, Vehicle: NewVehicle(2, VehicleStandard, 6, 500)})

	sim.Start()
	sim.Step(20)

	assert.Equal(t, 1, sim.Balked)
	assert.Equal(t, 0, sim.Facility.AvailableSpots())
}

func TestStart_IsIdempotentWhileRunning(t *testing.T) {
	sim := newTestSim(t, Location{X: 1, Y: 1})
	sim.Start()
	sim.Step(10)
	require.Equal(t, 10.0, sim.Clock)

	sim.Start()

	assert.Equal(t, 10.0, sim.Clock, "restarting a running simulator must not reset the clock")
}

func TestReset_ClearsQueueClockAndFacility(t *testing.T) {
	sim := newTestSim(t, Location{X: 1, Y: 1})
	sim.Schedule(&ArrivalEvent{time: 5, Vehicle: NewVehicle(1, VehicleStandard, 5, 500)})
	sim.Schedule(&ArrivalEvent{time: 6, Vehicle: NewVehicle(2, VehicleStandard, 6, 500)})
	sim.Start()
	sim.Step(20)
	require.Equal(t, 1, sim.Balked)

	sim.Reset()

	assert.Equal(t, SimStopped, sim.State())
	assert.Equal(t, 0.0, sim.Clock)
	assert.Equal(t, 0, sim.Balked)
	assert.Equal(t, 0, sim.PendingEvents())
	assert.Equal(t, 1, sim.Facility.AvailableSpots())
	assert.Equal(t, 0, sim.Facility.Stats.TotalVehicles)
}

func TestRunUntil_ReachesHorizon(t *testing.T) {
	sim := newTestSim(t, Location{X: 1, Y: 1})
	sim.Start()
	sim.RunUntil(95, 10)
	assert.Equal(t, 95.0, sim.Clock)
}

func TestDerivedTime(t *testing.T) {
	sim := newTestSim(t, Location{X: 1, Y: 1})
	sim.Start()

	// Day 8 (a Monday), 01:30.
	sim.Step(8*1440 + 90)

	assert.InDelta(t, 1.5, sim.TimeOfDay, 1e-9)
	assert.Equal(t, 1, sim.DayOfWeek)
}

func TestFormatClock(t *testing.T) {
	sim := newTestSim(t, Location{X: 1, Y: 1})
	tests := []struct {
		minutes float64
		want    string
	}{
		{0, "12:00 AM"},
		{1, "12:01 AM"},
		{9*60 + 5, "9:05 AM"},
		{12 * 60, "12:00 PM"},
		{12*60 + 34, "12:34 PM"},
		{13*60 + 30, "1:30 PM"},
		{23*60 + 59, "11:59 PM"},
		{1440 + 15, "12:15 AM"}, // wraps at midnight
	}
	for _, tc := range tests {
		sim.Clock = tc.minutes
		assert.Equal(t, tc.want, sim.FormatClock())
	}
}

func TestSetParams_RoundTripAndGuards(t *testing.T) {
	sim := newTestSim(t, Location{X: 1, Y: 1})

	p := SimParams{
		ArrivalRate:     8,
		AvgDuration:     45,
		TypeWeights:     VehicleTypeWeights{Standard: 0.5, Handicap: 0.25, Electric: 0.25},
		PreferenceProbs: map[string]float64{PrefNearEntrance: 1},
		SpeedMultiplier: 4,
	}
	sim.SetParams(p)
	assert.Equal(t, p, sim.Params())

	// A non-positive multiplier is ignored; a nil preference map keeps the
	// previous probabilities.
	sim.SetParams(SimParams{ArrivalRate: 8, AvgDuration: 45, TypeWeights: p.TypeWeights})
	got := sim.Params()
	assert.Equal(t, 4.0, got.SpeedMultiplier)
	assert.Equal(t, p.PreferenceProbs, got.PreferenceProbs)
}

func TestSeededRun_IsReproducible(t *testing.T) {
	run := func() (int, FacilityStatistics, float64) {
		prng := NewPartitionedRNG(NewSimulationKey(42))
		f, err := NewFacility("lot", DefaultLayout(), prng.ForSubsystem(SubsystemLayout))
		require.NoError(t, err)
		gen := NewVehicleGenerator(DefaultGeneratorConfig(), prng.ForSubsystem(SubsystemWorkload), prng.Source(SubsystemWorkload))
		sim := NewSimulator(f, gen)
		sim.Start()
		sim.RunUntil(1440, 1)
		return sim.Balked, *f.Stats, sim.Clock
	}

	balked1, stats1, clock1 := run()
	balked2, stats2, clock2 := run()

	assert.Equal(t, balked1, balked2)
	assert.Equal(t, stats1, stats2)
	assert.Equal(t, clock1, clock2)
	assert.Equal(t, 1440.0, clock1)
}
