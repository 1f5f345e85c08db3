package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/parking-sim/parking-sim/sim"
)

var (
	// CLI flags shared by the subcommands
	seed         int64  // master seed for all randomness
	logLevel     string // log verbosity level
	layoutFile   string // path to a layout YAML; empty = use --layout-preset
	layoutPreset string // built-in layout name when no file is given

	// CLI flags for the live simulation
	horizon      float64 // total simulated minutes
	stepMinutes  float64 // minutes advanced per Step call
	arrivalRate  float64 // base vehicle arrivals per hour
	avgDuration  float64 // mean parking duration in minutes
	weightStd    float64 // vehicle type weight: standard
	weightHcp    float64 // vehicle type weight: handicap
	weightElec   float64 // vehicle type weight: electric
	facilityName string  // display name of the facility
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "parking-sim",
	Short: "Discrete-event simulator for parking spot allocation",
}

// setupLogging applies the --log-level flag.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// loadLayout reads --layout, or resolves --layout-preset when no file is
// given. --layout wins when both are set.
func loadLayout() sim.LayoutConfig {
	if layoutFile != "" {
		layout, err := sim.LoadLayoutConfig(layoutFile)
		if err != nil {
			logrus.Fatalf("unable to read layout config: %v", err)
		}
		return layout
	}
	layout, err := sim.LayoutPreset(layoutPreset)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	return layout
}

// buildSimulator assembles the facility, generator and simulator from the
// CLI flags and the master seed.
func buildSimulator() *sim.Simulator {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed))

	facility, err := sim.NewFacility(facilityName, loadLayout(), rng.ForSubsystem(sim.SubsystemLayout))
	if err != nil {
		logrus.Fatalf("facility construction failed: %v", err)
	}

	cfg := sim.DefaultGeneratorConfig()
	cfg.ArrivalRate = arrivalRate
	cfg.AvgDuration = avgDuration
	cfg.TypeWeights = sim.VehicleTypeWeights{Standard: weightStd, Handicap: weightHcp, Electric: weightElec}
	gen := sim.NewVehicleGenerator(cfg,
		rng.ForSubsystem(sim.SubsystemWorkload),
		rng.Source(sim.SubsystemWorkload))

	return sim.NewSimulator(facility, gen)
}

// runCmd executes the live simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the parking simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		s := buildSimulator()
		logrus.Infof("Starting simulation: horizon=%.0fmin step=%.0fmin rate=%.1f/h seed=%d",
			horizon, stepMinutes, arrivalRate, seed)

		s.Start()
		s.RunUntil(horizon, stepMinutes)
		s.Stop()

		snapshot := s.Facility.OccupancySnapshot()
		s.Facility.Stats.Print()
		logrus.Infof("clock %s | occupancy %d/%d (%.1f%%) | balked %d",
			s.FormatClock(), snapshot.OccupiedSpots, snapshot.TotalSpots,
			snapshot.OccupancyRate*100, s.Balked)
	},
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Master seed for all randomness")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&layoutFile, "layout", "", "Path to a facility layout YAML (overrides --layout-preset)")
	rootCmd.PersistentFlags().StringVar(&layoutPreset, "layout-preset", "default", "Built-in layout preset (default, compact, garage)")
	rootCmd.PersistentFlags().StringVar(&facilityName, "name", "Smart Parking Facility", "Facility display name")
	rootCmd.PersistentFlags().Float64Var(&arrivalRate, "arrival-rate", 5, "Base vehicle arrivals per hour")
	rootCmd.PersistentFlags().Float64Var(&avgDuration, "avg-duration", 120, "Mean parking duration in minutes")
	rootCmd.PersistentFlags().Float64Var(&weightStd, "weight-standard", 0.8, "Vehicle type weight: standard")
	rootCmd.PersistentFlags().Float64Var(&weightHcp, "weight-handicap", 0.1, "Vehicle type weight: handicap")
	rootCmd.PersistentFlags().Float64Var(&weightElec, "weight-electric", 0.1, "Vehicle type weight: electric")

	runCmd.Flags().Float64Var(&horizon, "horizon", 24*60, "Total simulated minutes")
	runCmd.Flags().Float64Var(&stepMinutes, "step", 1, "Minutes advanced per simulation step")

	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
