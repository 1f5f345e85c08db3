// Package sim provides the core discrete-event simulation engine for the
// parking allocator.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - spot.go / vehicle.go: entity state machines (available → reserved/occupied)
//   - event.go: event types that drive the simulation (Arrival, Departure)
//   - simulator.go: the event loop, logical clock, and step execution
//
// # Architecture
//
// A Facility owns every Spot, the live-vehicle index, and the immutable
// NavigationGraph built from its LayoutConfig. The Simulator drains a
// time-ordered EventQueue, mutating the Facility through Assign/Vacate.
// Vehicle demand comes from a seeded VehicleGenerator.
//
// # Key Interfaces
//
// AssignmentStrategy is the extension point for batch spot allocation; three
// implementations ship with the package (Greedy, NearestAvailable,
// OptimalMatching) and are benchmarked head-to-head by ComparisonHarness on
// isolated clones of the same facility state.
package sim
